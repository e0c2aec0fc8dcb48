package narrative

import (
	"fmt"
	"strings"

	"github.com/Veraticus/arkas/internal/budget"
	"github.com/Veraticus/arkas/internal/currency"
)

// Recommendations are appended to every local explanation.
var Recommendations = []string{
	"Jika Anda memiliki cicilan yang besar, pertimbangkan untuk mengurangi pengeluaran gaya hidup",
	`Pastikan dana "Keranjang Aman" mencukupi untuk 3-6 bulan pengeluaran`,
	"Investasi jangka panjang sangat penting untuk masa depan finansial Anda",
}

// Disclaimer accompanies any generated answer.
const Disclaimer = "Sistem ini menggunakan AI-LLM dan dapat menghasilkan jawaban yang tidak selalu akurat. " +
	"Mohon verifikasi informasi penting dengan sumber terpercaya, seperti perencana keuangan, dan profesional lainnya."

// Fallback explains an analysis without any external call. The result only
// depends on a.
func Fallback(a budget.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Berdasarkan gaji bulanan Anda sebesar %s dan insentif/lembur sebesar %s, berikut adalah analisis keuangan Anda:\n\n",
		currency.Rupiah(a.Salary), currency.Rupiah(a.Bonus))
	fmt.Fprintf(&b, "1. Total pendapatan: %s\n", currency.Rupiah(a.TotalIncome))
	fmt.Fprintf(&b, "2. Total pengeluaran: %s\n", currency.Rupiah(a.TotalSpend))

	if a.OverBudget {
		fmt.Fprintf(&b, "\nTotal pengeluaran Anda melebihi gaji bulanan sebesar %s. "+
			"Sebaiknya kurangi beberapa pengeluaran atau gunakan insentif/lembur untuk menutupi kekurangan.\n",
			currency.Rupiah(a.Delta))
	} else {
		fmt.Fprintf(&b, "\nAnda memiliki sisa gaji sebesar %s yang dapat dialokasikan untuk tabungan tambahan atau kebutuhan lain.\n",
			currency.Rupiah(-a.Delta))
	}

	writeExceeding(&b, a)
	if len(a.Exceeding) > 0 {
		b.WriteString("\nSebaiknya Anda mengurangi alokasi untuk item-item tersebut dan menyesuaikannya dengan rentang yang direkomendasikan.\n")
	}
	writeUnderAllocated(&b, a)
	if len(a.UnderAllocated) > 0 {
		b.WriteString("\nSebaiknya Anda meningkatkan alokasi untuk item-item tersebut agar sesuai dengan rentang yang direkomendasikan.\n")
	}

	b.WriteString("\nRekomendasi:\n")
	for _, r := range Recommendations {
		fmt.Fprintf(&b, "- %s\n", r)
	}

	fmt.Fprintf(&b, "\nDengan insentif/lembur sebesar %s%% dari gaji, Anda dapat mengalokasikan tambahan ini "+
		"untuk mempercepat pembayaran hutang atau meningkatkan investasi.\n", budget.FormatPercent(a.BonusPercent))

	return b.String()
}

// ChatFallback answers a follow-up question with generic guidance.
func ChatFallback(question string) string {
	return fmt.Sprintf("Untuk pertanyaan '%s': Untuk mengelola keuangan dengan lebih baik, "+
		"pertimbangkan untuk membuat anggaran bulanan yang detail dan melacak semua pengeluaran Anda. "+
		"Prioritaskan pembayaran hutang dan tabungan darurat sebelum meningkatkan pengeluaran gaya hidup.",
		strings.TrimSpace(question))
}
