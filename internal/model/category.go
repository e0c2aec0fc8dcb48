// Package model holds the data types shared by the budget allocator and the
// Stop-Start-Continue worksheet.
package model

import "fmt"

// Category is a reference budget line with a recommended percent-of-salary range.
type Category struct {
	Name       string
	Example    string // Help text shown next to the input
	MinPercent int
	MaxPercent int
}

// RangeLabel renders the recommended range, e.g. "10-20%".
func (c Category) RangeLabel() string {
	return fmt.Sprintf("%d-%d%%", c.MinPercent, c.MaxPercent)
}

// Midpoint returns the middle of the recommended range in percent.
func (c Category) Midpoint() float64 {
	return float64(c.MinPercent+c.MaxPercent) / 2
}

var defaultCategories = []Category{
	{
		Name:       "Investasi atau tabungan untuk masa depan",
		Example:    "Dana yang rutin disisihkan setiap bulan untuk beli LM, nabung, saham, dll. Bila tidak menentu masukan rata-rata setahun berapa dan bagilah dengan 12",
		MinPercent: 10,
		MaxPercent: 20,
	},
	{
		Name:       "Cicilan, pinjaman, Asuransi, arisan, dll",
		Example:    "Cicilan motor, KPR, premi asuransi, arisan, kartu kredit dlsb. yang biasa di keluarkan per bulan saat ini",
		MinPercent: 15,
		MaxPercent: 25,
	},
	{
		Name:       "Pengeluaran Rumah Tangga",
		Example:    "Listrik, air, iuran RT/lingkungan, operasional rumah tangga, ART, Makan, transport sekeluarga, dlsb. setiap bulannya",
		MinPercent: 30,
		MaxPercent: 40,
	},
	{
		Name:       `Penguatan Dana "Keranjang Aman"`,
		Example:    `Uang jaga-jaga, tabungan yang disediakan secara khusus untuk menghadapi situasi darurat atau yang tidak biasanya. Bedakan dengan tabungan yang umumnya memang untuk "dihabiskan" misal tabungan motor/mobil, haji, liburan dlsb`,
		MinPercent: 5,
		MaxPercent: 10,
	},
	{
		Name:       "Zakat dan biaya sosial",
		Example:    "Zakat/perpuluhan, sumbangan, dll",
		MinPercent: 5,
		MaxPercent: 10,
	},
	{
		Name:       "Biaya pendidikan anak",
		Example:    "Uang sekolah/kuliah/SKS, les/bimba, kursus dll",
		MinPercent: 10,
		MaxPercent: 20,
	},
	{
		Name:       "Hidup Gaya",
		Example:    "Nongkrong di kafe, beli barang mewah, hobby dlsb",
		MinPercent: 5,
		MaxPercent: 10,
	},
}

// DefaultCategories returns the seven reference categories in display order.
// The returned slice is a copy; callers may not alter the shared table.
func DefaultCategories() []Category {
	out := make([]Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}
