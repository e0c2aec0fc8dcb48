package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/arkas/internal/model"
)

func TestAnalysis_SummaryRows(t *testing.T) {
	spends := []int64{1500000, 750000, 1750000, 250000, 250000, 500000, 100000}
	a := Analyze(5000000, 0, spends, model.DefaultCategories())

	rows := a.SummaryRows()
	require.Len(t, rows, 7)

	assert.Equal(t,
		[]string{"1", "Investasi atau tabungan untuk masa depan", "Rp 1.500.000", "10-20%", "30.00%"},
		rows[0].Values())
	assert.True(t, rows[0].Exceeding)
	assert.False(t, rows[1].Exceeding)
	assert.False(t, rows[1].Under)
	assert.True(t, rows[6].Under)
	assert.Equal(t, "2.00%", rows[6].Result)
	assert.Len(t, SummaryHeader, len(rows[0].Values()))
}

func TestAnalysis_BonusSentence(t *testing.T) {
	a := Analyze(5000000, 750000, nil, model.DefaultCategories())
	assert.Equal(t, "Insentif/lembur sebesar Rp 750.000 adalah 15.00% dari gaji bulanan.", a.BonusSentence())

	a = Analyze(0, 750000, nil, model.DefaultCategories())
	assert.Contains(t, a.BonusSentence(), "adalah 0.00% dari gaji bulanan")
}

func TestAnalysis_OverBudgetWarning(t *testing.T) {
	a := Analyze(5000000, 0, []int64{6000000}, model.DefaultCategories())
	assert.Equal(t,
		"Total pengeluaran (Rp 6.000.000) melebihi gaji bulanan (Rp 5.000.000). Pertimbangkan untuk mengurangi beberapa pengeluaran.",
		a.OverBudgetWarning())

	a = Analyze(5000000, 0, []int64{5000000}, model.DefaultCategories())
	assert.Empty(t, a.OverBudgetWarning())
}

func TestAnalysis_Metrics(t *testing.T) {
	a := Analyze(5000000, 0, []int64{6000000}, model.DefaultCategories())

	m := a.Metrics()
	require.Len(t, m, 3)
	assert.Equal(t, Metric{Label: "Total Gaji", Value: "Rp 5.000.000"}, m[0])
	assert.Equal(t, "Rp 1.000.000", m[1].Delta)
	assert.True(t, m[1].Bad)
	assert.Equal(t, "120.00%", m[2].Value)
	assert.Equal(t, "20.00%", m[2].Delta)
	assert.True(t, m[2].Bad)

	a = Analyze(5000000, 0, []int64{4000000}, model.DefaultCategories())
	m = a.Metrics()
	assert.Equal(t, "Rp -1.000.000", m[1].Delta)
	assert.False(t, m[1].Bad)
	assert.Equal(t, "-20.00%", m[2].Delta)
	assert.False(t, m[2].Bad)
}
