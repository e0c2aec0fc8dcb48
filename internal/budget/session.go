package budget

import (
	"github.com/google/uuid"

	"github.com/Veraticus/arkas/internal/model"
)

// DefaultSalary is the salary a new session starts with.
const DefaultSalary int64 = 5000000

// Exchange is one follow-up question and the answer given.
type Exchange struct {
	Question string
	Answer   string
	Fallback bool
}

// Session holds everything one user has entered so far. Handlers receive it
// explicitly; nothing about a session lives in package state.
type Session struct {
	Analysis          *Analysis
	ID                string
	Narrative         string
	Categories        []model.Category
	Spends            []int64
	History           []Exchange
	Salary            int64
	Bonus             int64
	NarrativeFallback bool
}

// NewSession starts a session with the default salary and midpoint spends.
func NewSession(categories []model.Category) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Categories: categories,
		Salary:     DefaultSalary,
		Spends:     DefaultSpends(DefaultSalary, categories),
	}
}

// Update replaces the form inputs. A previous analysis is kept until the
// next Record so it can still be displayed.
func (s *Session) Update(salary, bonus int64, spends []int64) {
	s.Salary = nonNegative(salary)
	s.Bonus = nonNegative(bonus)
	s.Spends = make([]int64, len(s.Categories))
	for i := range s.Spends {
		if i < len(spends) {
			s.Spends[i] = nonNegative(spends[i])
		}
	}
}

// Analyze runs the analyzer on the current inputs without recording it.
func (s *Session) Analyze() Analysis {
	return Analyze(s.Salary, s.Bonus, s.Spends, s.Categories)
}

// Record stores the latest analysis and its narrative.
func (s *Session) Record(a Analysis, narrative string, fallback bool) {
	s.Analysis = &a
	s.Narrative = narrative
	s.NarrativeFallback = fallback
}

// HasAnalyzed reports whether an analysis has been recorded.
func (s *Session) HasAnalyzed() bool {
	return s.Analysis != nil
}

// AddExchange appends a chat exchange to the history.
func (s *Session) AddExchange(e Exchange) {
	s.History = append(s.History, e)
}
