package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/arkas/internal/model"
)

func TestNewSession(t *testing.T) {
	s := NewSession(model.DefaultCategories())

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, DefaultSalary, s.Salary)
	assert.Equal(t, int64(0), s.Bonus)
	assert.Len(t, s.Spends, 7)
	assert.False(t, s.HasAnalyzed())

	other := NewSession(model.DefaultCategories())
	assert.NotEqual(t, s.ID, other.ID)
}

func TestSession_UpdateAndRecord(t *testing.T) {
	s := NewSession(model.DefaultCategories())
	s.Update(4000000, -1, []int64{400000, -3})

	assert.Equal(t, int64(4000000), s.Salary)
	assert.Equal(t, int64(0), s.Bonus)
	require.Len(t, s.Spends, 7)
	assert.Equal(t, int64(400000), s.Spends[0])
	assert.Equal(t, int64(0), s.Spends[1])
	assert.Equal(t, int64(0), s.Spends[6])

	a := s.Analyze()
	s.Record(a, "narasi", true)
	require.True(t, s.HasAnalyzed())
	assert.Equal(t, int64(400000), s.Analysis.TotalSpend)
	assert.Equal(t, "narasi", s.Narrative)
	assert.True(t, s.NarrativeFallback)

	// Editing the form keeps the last analysis visible.
	s.Update(1, 0, nil)
	assert.True(t, s.HasAnalyzed())
	assert.Equal(t, int64(4000000), s.Analysis.Salary)
}

func TestSession_AddExchange(t *testing.T) {
	s := NewSession(model.DefaultCategories())
	s.AddExchange(Exchange{Question: "Apa itu dana darurat?", Answer: "..."})
	s.AddExchange(Exchange{Question: "Berapa idealnya?", Answer: "...", Fallback: true})

	require.Len(t, s.History, 2)
	assert.Equal(t, "Berapa idealnya?", s.History[1].Question)
	assert.True(t, s.History[1].Fallback)
}
