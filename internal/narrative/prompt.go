// Package narrative turns an allocation analysis into a written explanation,
// either from a text-generation service or from a local template.
package narrative

import (
	"fmt"
	"strings"

	"github.com/Veraticus/arkas/internal/budget"
	"github.com/Veraticus/arkas/internal/currency"
)

// AnalysisPrompt builds the request sent to the text-generation service for
// a fresh analysis.
func AnalysisPrompt(a budget.Analysis) string {
	var b strings.Builder

	b.WriteString("Analisis keuangan berdasarkan data berikut:\n\n")
	fmt.Fprintf(&b, "Gaji bulanan: %s\n", currency.Rupiah(a.Salary))
	fmt.Fprintf(&b, "Insentif/lembur: %s (%s%% dari gaji)\n", currency.Rupiah(a.Bonus), budget.FormatPercent(a.BonusPercent))
	fmt.Fprintf(&b, "Total pendapatan: %s\n\n", currency.Rupiah(a.TotalIncome))

	b.WriteString("Alokasi dana berdasarkan input pengguna:\n")
	for _, line := range a.Lines {
		fmt.Fprintf(&b, "- %s: %s (%s%% dari gaji, rujukan: %s)\n",
			line.Category.Name, currency.Rupiah(line.Spend), budget.FormatPercent(line.Percent), line.Category.RangeLabel())
	}

	writeFlags(&b, a)

	if a.OverBudget {
		fmt.Fprintf(&b, "\nTotal pengeluaran (%s) melebihi gaji bulanan (%s).\n",
			currency.Rupiah(a.TotalSpend), currency.Rupiah(a.Salary))
	}

	b.WriteString("\nBerikan analisis singkat tentang alokasi keuangan ini dan saran untuk perbaikan.\n")
	b.WriteString("Fokus pada item yang melebihi atau di bawah rentang rujukan jika ada.\n")
	b.WriteString("Berikan juga saran pemanfaatan insentif/lembur yang optimal.\n")
	b.WriteString("Berikan jawaban dalam Bahasa Indonesia.\n")

	return b.String()
}

// ChatPrompt builds a follow-up question request carrying the session's
// current figures.
func ChatPrompt(s *budget.Session, question string) string {
	a := s.Analyze()

	var b strings.Builder
	b.WriteString("Berdasarkan data keuangan berikut:\n\n")
	fmt.Fprintf(&b, "Gaji bulanan: %s\n", currency.Rupiah(a.Salary))
	fmt.Fprintf(&b, "Insentif/lembur: %s\n\n", currency.Rupiah(a.Bonus))

	b.WriteString("Alokasi dana pengguna:\n")
	for _, line := range a.Lines {
		fmt.Fprintf(&b, "- %s: %s%% (%s)\n", line.Category.Name, budget.FormatPercent(line.Percent), currency.Rupiah(line.Spend))
	}

	fmt.Fprintf(&b, "\nPertanyaan pengguna: %s\n\n", strings.TrimSpace(question))
	b.WriteString("Berikan jawaban yang informatif dan bermanfaat dalam Bahasa Indonesia:\n")

	return b.String()
}

func writeFlags(b *strings.Builder, a budget.Analysis) {
	writeExceeding(b, a)
	writeUnderAllocated(b, a)
}

func writeExceeding(b *strings.Builder, a budget.Analysis) {
	if len(a.Exceeding) > 0 {
		b.WriteString("\nItem yang melebihi rentang rujukan:\n")
		for _, f := range a.Exceeding {
			fmt.Fprintf(b, "- %s: %s%% (melebihi batas atas %d%%)\n", f.Category.Name, budget.FormatPercent(f.Percent), f.Limit)
		}
	}
}

func writeUnderAllocated(b *strings.Builder, a budget.Analysis) {
	if len(a.UnderAllocated) > 0 {
		b.WriteString("\nItem yang di bawah rentang rujukan:\n")
		for _, f := range a.UnderAllocated {
			fmt.Fprintf(b, "- %s: %s%% (di bawah batas bawah %d%%)\n", f.Category.Name, budget.FormatPercent(f.Percent), f.Limit)
		}
	}
}
