package budget

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/arkas/internal/currency"
)

// SummaryHeader is the column order of the allocation summary table.
var SummaryHeader = []string{"No", "Item", "Besar Pengeluaran (Rp)", "Rujukan (%)", "Hasil Simulasi (%)"}

// SummaryRow is one display line of the allocation summary.
type SummaryRow struct {
	No        string
	Item      string
	Spend     string
	Reference string
	Result    string
	Exceeding bool
	Under     bool
}

// Values returns the row in SummaryHeader order.
func (r SummaryRow) Values() []string {
	return []string{r.No, r.Item, r.Spend, r.Reference, r.Result}
}

// SummaryRows renders every line of a for display.
func (a Analysis) SummaryRows() []SummaryRow {
	rows := make([]SummaryRow, len(a.Lines))
	for i, line := range a.Lines {
		rows[i] = SummaryRow{
			No:        strconv.Itoa(i + 1),
			Item:      line.Category.Name,
			Spend:     currency.Rupiah(line.Spend),
			Reference: line.Category.RangeLabel(),
			Result:    FormatPercent(line.Percent) + "%",
			Exceeding: a.isExceeding(line),
			Under:     a.isUnder(line),
		}
	}
	return rows
}

func (a Analysis) isExceeding(line Line) bool {
	for _, f := range a.Exceeding {
		if f.Category.Name == line.Category.Name {
			return true
		}
	}
	return false
}

func (a Analysis) isUnder(line Line) bool {
	for _, f := range a.UnderAllocated {
		if f.Category.Name == line.Category.Name {
			return true
		}
	}
	return false
}

// BonusSentence states the bonus as a share of salary.
func (a Analysis) BonusSentence() string {
	return fmt.Sprintf("Insentif/lembur sebesar %s adalah %s%% dari gaji bulanan.",
		currency.Rupiah(a.Bonus), FormatPercent(a.BonusPercent))
}

// OverBudgetWarning returns the warning shown when spending exceeds salary,
// or "" when it does not.
func (a Analysis) OverBudgetWarning() string {
	if !a.OverBudget {
		return ""
	}
	return fmt.Sprintf("Total pengeluaran (%s) melebihi gaji bulanan (%s). Pertimbangkan untuk mengurangi beberapa pengeluaran.",
		currency.Rupiah(a.TotalSpend), currency.Rupiah(a.Salary))
}

// Metric is a headline figure with its change against the reference.
type Metric struct {
	Label string
	Value string
	Delta string
	Bad   bool // the delta moves the wrong way
}

// Metrics returns total salary, total spend against salary and total percent
// against 100%.
func (a Analysis) Metrics() []Metric {
	return []Metric{
		{Label: "Total Gaji", Value: currency.Rupiah(a.Salary)},
		{
			Label: "Total Pengeluaran",
			Value: currency.Rupiah(a.TotalSpend),
			Delta: currency.Rupiah(a.Delta),
			Bad:   a.Delta > 0,
		},
		{
			Label: "Total Persentase",
			Value: FormatPercent(a.TotalPercent) + "%",
			Delta: FormatPercent(a.DeltaPercent) + "%",
			Bad:   a.DeltaPercent.IsPositive(),
		},
	}
}
