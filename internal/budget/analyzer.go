// Package budget compares a monthly allocation against the recommended
// percent-of-salary ranges of each category.
package budget

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/arkas/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Line is one category's share of the salary.
type Line struct {
	Category model.Category
	Percent  decimal.Decimal
	Spend    int64
}

// Flag marks a category outside its recommended range. Limit is the bound
// that was crossed: MaxPercent for exceeding lines, MinPercent for
// under-allocated ones.
type Flag struct {
	Category model.Category
	Percent  decimal.Decimal
	Limit    int
}

// Analysis is the derived view of one allocation. It is recomputed on every
// request and never stored.
type Analysis struct {
	BonusPercent   decimal.Decimal
	TotalPercent   decimal.Decimal
	DeltaPercent   decimal.Decimal
	Lines          []Line
	Exceeding      []Flag
	UnderAllocated []Flag
	Salary         int64
	Bonus          int64
	TotalIncome    int64 // saturates at math.MaxInt64
	TotalSpend     int64 // saturates at math.MaxInt64
	Delta          int64 // TotalSpend - Salary
	OverBudget     bool
}

// Analyze computes per-category percentages of salary and flags lines that
// are strictly above or below their range. A zero salary yields 0% everywhere.
//
// spends align positionally with categories; missing entries count as zero
// and extra entries are ignored. Negative amounts are treated as zero.
func Analyze(salary, bonus int64, spends []int64, categories []model.Category) Analysis {
	salary = nonNegative(salary)
	bonus = nonNegative(bonus)

	a := Analysis{
		Salary:       salary,
		Bonus:        bonus,
		TotalIncome:  addSaturated(salary, bonus),
		BonusPercent: PercentOf(bonus, salary),
		TotalPercent: decimal.Zero,
		Lines:        make([]Line, 0, len(categories)),
	}

	for i, cat := range categories {
		var spend int64
		if i < len(spends) {
			spend = nonNegative(spends[i])
		}
		pct := PercentOf(spend, salary)

		a.Lines = append(a.Lines, Line{Category: cat, Spend: spend, Percent: pct})
		a.TotalSpend = addSaturated(a.TotalSpend, spend)
		a.TotalPercent = a.TotalPercent.Add(pct)

		if pct.GreaterThan(decimal.NewFromInt(int64(cat.MaxPercent))) {
			a.Exceeding = append(a.Exceeding, Flag{Category: cat, Percent: pct, Limit: cat.MaxPercent})
		} else if pct.LessThan(decimal.NewFromInt(int64(cat.MinPercent))) {
			a.UnderAllocated = append(a.UnderAllocated, Flag{Category: cat, Percent: pct, Limit: cat.MinPercent})
		}
	}

	a.Delta = a.TotalSpend - salary
	a.DeltaPercent = a.TotalPercent.Sub(hundred)
	a.OverBudget = a.TotalSpend > salary

	return a
}

// PercentOf returns part/whole*100, or 0 when whole is not positive.
func PercentOf(part, whole int64) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(whole))
}

// FormatPercent renders a percentage with two decimals and no sign, e.g. "20.00".
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(2)
}

// DefaultSpends prefills each category with the midpoint of its range.
func DefaultSpends(salary int64, categories []model.Category) []int64 {
	salary = nonNegative(salary)
	spends := make([]int64, len(categories))
	for i, cat := range categories {
		spends[i] = decimal.NewFromInt(salary).
			Mul(decimal.NewFromInt(int64(cat.MinPercent + cat.MaxPercent))).
			Div(decimal.NewFromInt(200)).
			IntPart()
	}
	return spends
}

// addSaturated adds two non-negative amounts, clamping at math.MaxInt64.
func addSaturated(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
