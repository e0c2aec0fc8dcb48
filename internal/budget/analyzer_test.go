package budget

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/arkas/internal/currency"
	"github.com/Veraticus/arkas/internal/model"
)

func singleCategory(minPct, maxPct int) []model.Category {
	return []model.Category{{Name: "Tabungan", MinPercent: minPct, MaxPercent: maxPct}}
}

func TestAnalyze_PercentOfSalary(t *testing.T) {
	a := Analyze(5000000, 0, []int64{1000000}, singleCategory(10, 20))

	require.Len(t, a.Lines, 1)
	assert.True(t, a.Lines[0].Percent.Equal(decimal.NewFromInt(20)), "got %s", a.Lines[0].Percent)
	assert.Equal(t, "20.00", FormatPercent(a.Lines[0].Percent))
	assert.Empty(t, a.Exceeding)
	assert.Empty(t, a.UnderAllocated)
}

func TestAnalyze_Boundaries(t *testing.T) {
	tests := []struct {
		name          string
		spend         int64
		wantExceeding bool
		wantUnder     bool
	}{
		{name: "exactly at maximum", spend: 2000},
		{name: "just above maximum", spend: 2001, wantExceeding: true},
		{name: "exactly at minimum", spend: 1000},
		{name: "just below minimum", spend: 999, wantUnder: true},
		{name: "inside range", spend: 1500},
		{name: "nothing allocated", spend: 0, wantUnder: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(10000, 0, []int64{tt.spend}, singleCategory(10, 20))

			assert.Equal(t, tt.wantExceeding, len(a.Exceeding) == 1)
			assert.Equal(t, tt.wantUnder, len(a.UnderAllocated) == 1)
			if tt.wantExceeding {
				assert.Equal(t, 20, a.Exceeding[0].Limit)
				assert.Equal(t, "20.01", FormatPercent(a.Exceeding[0].Percent))
			}
			if tt.wantUnder && tt.spend > 0 {
				assert.Equal(t, 10, a.UnderAllocated[0].Limit)
				assert.Equal(t, "9.99", FormatPercent(a.UnderAllocated[0].Percent))
			}
		})
	}
}

func TestAnalyze_ZeroSalary(t *testing.T) {
	cats := model.DefaultCategories()
	a := Analyze(0, 750000, []int64{100, 200, 300, 400, 500, 600, 700}, cats)

	assert.True(t, a.BonusPercent.IsZero())
	for _, line := range a.Lines {
		assert.True(t, line.Percent.IsZero(), line.Category.Name)
	}
	assert.True(t, a.TotalPercent.IsZero())
	assert.Equal(t, int64(2800), a.TotalSpend)
	assert.True(t, a.OverBudget)
	// Every category is below its minimum at 0%.
	assert.Len(t, a.UnderAllocated, len(cats))
	assert.Empty(t, a.Exceeding)
}

func TestAnalyze_Totals(t *testing.T) {
	cats := model.DefaultCategories()
	spends := []int64{1000000, 1000000, 2000000, 500000, 500000, 500000, 500000}
	a := Analyze(5000000, 1000000, spends, cats)

	assert.Equal(t, int64(6000000), a.TotalSpend)
	assert.Equal(t, int64(6000000), a.TotalIncome)
	assert.True(t, a.OverBudget)
	assert.Equal(t, int64(1000000), a.Delta)
	assert.Equal(t, "1.000.000", currency.Format(a.Delta))
	assert.Equal(t, "120.00", FormatPercent(a.TotalPercent))
	assert.Equal(t, "20.00", FormatPercent(a.DeltaPercent))
	assert.Equal(t, "20.00", FormatPercent(a.BonusPercent))

	// 2.000.000 of 5.000.000 is 40%, the top of the household range.
	assert.Equal(t, "40.00", FormatPercent(a.Lines[2].Percent))
	// Every line sits inside or on the edge of its range.
	assert.Empty(t, a.Exceeding)
	assert.Empty(t, a.UnderAllocated)
}

func TestAnalyze_UnderBudget(t *testing.T) {
	a := Analyze(5000000, 0, []int64{500000}, singleCategory(10, 20))
	assert.False(t, a.OverBudget)
	assert.Equal(t, int64(-4500000), a.Delta)
	assert.Equal(t, "-90.00", FormatPercent(a.DeltaPercent))
}

func TestAnalyze_SpendAlignment(t *testing.T) {
	cats := model.DefaultCategories()

	short := Analyze(1000, 0, []int64{100}, cats)
	require.Len(t, short.Lines, len(cats))
	assert.Equal(t, int64(100), short.Lines[0].Spend)
	assert.Equal(t, int64(0), short.Lines[6].Spend)

	long := Analyze(1000, 0, []int64{1, 1, 1, 1, 1, 1, 1, 500}, cats)
	assert.Equal(t, int64(7), long.TotalSpend)

	negative := Analyze(-5, -5, []int64{-100}, singleCategory(0, 100))
	assert.Equal(t, int64(0), negative.Salary)
	assert.Equal(t, int64(0), negative.Lines[0].Spend)
}

func TestAnalyze_IsDeterministic(t *testing.T) {
	cats := model.DefaultCategories()
	spends := []int64{700000, 900000, 1800000, 300000, 250000, 600000, 400000}

	first := Analyze(5000000, 250000, spends, cats)
	second := Analyze(5000000, 250000, spends, cats)
	assert.Equal(t, first, second)
}

func TestDefaultSpends(t *testing.T) {
	cats := model.DefaultCategories()
	spends := DefaultSpends(5000000, cats)

	assert.Equal(t, []int64{750000, 1000000, 1750000, 375000, 375000, 750000, 375000}, spends)
	assert.Equal(t, []int64{0, 0, 0, 0, 0, 0, 0}, DefaultSpends(0, cats))
}

func TestAnalyze_HugeAmountsSaturate(t *testing.T) {
	cats := model.DefaultCategories()

	a := Analyze(5_000_000, 0, []int64{9e18, 9e18}, cats)
	assert.Equal(t, int64(math.MaxInt64), a.TotalSpend)
	assert.True(t, a.OverBudget)
	assert.Positive(t, a.Delta)
	assert.True(t, a.TotalPercent.Equal(decimal.NewFromInt(360_000_000_000_000)))

	a = Analyze(math.MaxInt64, math.MaxInt64, nil, cats)
	assert.Equal(t, int64(math.MaxInt64), a.TotalIncome)
	assert.False(t, a.OverBudget)
}
