package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/arkas/internal/budget"
	"github.com/Veraticus/arkas/internal/model"
)

func TestApplyBudgetFlags(t *testing.T) {
	tests := []struct {
		name       string
		salary     string
		bonus      string
		spends     []string
		wantSalary int64
		wantBonus  int64
		wantFirst  int64
		wantErr    bool
	}{
		{
			name:       "defaults keep midpoints",
			wantSalary: budget.DefaultSalary,
			wantFirst:  750000,
		},
		{
			name:       "salary rescales unspecified spends",
			salary:     "10.000.000",
			bonus:      "1.000.000",
			wantSalary: 10000000,
			wantBonus:  1000000,
			wantFirst:  1500000,
		},
		{
			name:       "explicit spend wins",
			spends:     []string{"2.000.000"},
			wantSalary: budget.DefaultSalary,
			wantFirst:  2000000,
		},
		{
			name:       "unparseable spend is zero",
			spends:     []string{"banyak"},
			wantSalary: budget.DefaultSalary,
			wantFirst:  0,
		},
		{
			name:    "too many spends",
			spends:  []string{"1", "2", "3", "4", "5", "6", "7", "8"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := budget.NewSession(model.DefaultCategories())
			err := applyBudgetFlags(sess, tt.salary, tt.bonus, tt.spends)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSalary, sess.Salary)
			assert.Equal(t, tt.wantBonus, sess.Bonus)
			assert.Equal(t, tt.wantFirst, sess.Spends[0])
			assert.Len(t, sess.Spends, 7)
		})
	}
}

func TestPrintAnalysis_Fallback(t *testing.T) {
	sess := budget.NewSession(model.DefaultCategories())
	require.NoError(t, applyBudgetFlags(sess, "5.000.000", "500.000", []string{"1.000.000"}))

	var out bytes.Buffer
	printAnalysis(context.Background(), &out, sess, newGenerator(true))

	text := out.String()
	assert.Contains(t, text, "Hasil Simulasi")
	assert.Contains(t, text, "Layanan AI tidak tersedia")
	assert.Contains(t, text, "Total pendapatan: Rp 5.500.000")
	assert.Contains(t, text, "melebihi gaji bulanan")

	require.True(t, sess.HasAnalyzed())
	assert.True(t, sess.NarrativeFallback)
}
