package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Veraticus/arkas/internal/budget"
	"github.com/Veraticus/arkas/internal/currency"
	"github.com/Veraticus/arkas/internal/narrative"
)

type categoryField struct {
	Name    string
	Example string
	Range   string
	Value   string
	Index   int
}

type budgetPage struct {
	Title             string
	Salary            string
	Bonus             string
	Warning           string
	BonusSentence     string
	Narrative         string
	Disclaimer        string
	Fields            []categoryField
	Header            []string
	Rows              []budget.SummaryRow
	Metrics           []budget.Metric
	History           []budget.Exchange
	Analyzed          bool
	NarrativeFallback bool
}

func spendField(i int) string {
	return "spend_" + strconv.Itoa(i)
}

// handleBudget shows the form and, once analyzed, the stored analysis and
// narrative without recomputing them.
func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r, s.categories)

	page := budgetPage{
		Title:      "Simulasi Alokasi Gaji",
		Salary:     currency.Format(sess.Salary),
		Bonus:      currency.Format(sess.Bonus),
		Header:     budget.SummaryHeader,
		History:    sess.History,
		Disclaimer: narrative.Disclaimer,
	}
	for i, cat := range sess.Categories {
		var spend int64
		if i < len(sess.Spends) {
			spend = sess.Spends[i]
		}
		page.Fields = append(page.Fields, categoryField{
			Index:   i,
			Name:    cat.Name,
			Example: cat.Example,
			Range:   cat.RangeLabel(),
			Value:   currency.Format(spend),
		})
	}

	if sess.HasAnalyzed() {
		a := *sess.Analysis
		page.Analyzed = true
		page.Rows = a.SummaryRows()
		page.Metrics = a.Metrics()
		page.Warning = a.OverBudgetWarning()
		page.BonusSentence = a.BonusSentence()
		page.Narrative = sess.Narrative
		page.NarrativeFallback = sess.NarrativeFallback
	}

	s.render(w, http.StatusOK, "budget", page)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sess := s.sessions.session(w, r, s.categories)

	spends := make([]int64, len(sess.Categories))
	for i := range spends {
		spends[i] = currency.Parse(r.PostForm.Get(spendField(i)))
	}
	sess.Update(currency.Parse(r.PostForm.Get("salary")), currency.Parse(r.PostForm.Get("bonus")), spends)

	a := sess.Analyze()
	result := s.generator.Explain(r.Context(), a)
	sess.Record(a, result.Text, result.Fallback)

	http.Redirect(w, r, "/budget#hasil", http.StatusSeeOther)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sess := s.sessions.session(w, r, s.categories)
	if !sess.HasAnalyzed() {
		http.Redirect(w, r, "/budget", http.StatusSeeOther)
		return
	}

	if _, err := s.generator.Ask(r.Context(), sess, r.PostForm.Get("question")); err != nil && !errors.Is(err, narrative.ErrEmptyQuestion) {
		s.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/budget#konsultasi", http.StatusSeeOther)
}
