package testutil

import (
	"strings"

	"github.com/Veraticus/arkas/internal/model"
)

// DefaultDate is the date given to built submissions unless overridden.
const DefaultDate = "2025-03-04"

// SubmissionBuilder assembles valid worksheet submissions.
type SubmissionBuilder struct {
	sub model.Submission
}

// NewSubmission starts a valid submission for name with a derived email.
func NewSubmission(name string) *SubmissionBuilder {
	return &SubmissionBuilder{sub: model.Submission{
		Name:  name,
		Date:  DefaultDate,
		Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.co.id",
	}}
}

// WithEmail overrides the email address.
func (b *SubmissionBuilder) WithEmail(email string) *SubmissionBuilder {
	b.sub.Email = email
	return b
}

// WithDate overrides the date.
func (b *SubmissionBuilder) WithDate(date string) *SubmissionBuilder {
	b.sub.Date = date
	return b
}

// WithItem fills slot idx (0-based) of a section. Out-of-range slots are
// ignored.
func (b *SubmissionBuilder) WithItem(section model.Section, idx int, activity, parameter string) *SubmissionBuilder {
	_ = b.sub.SetItem(section, idx, model.Item{Activity: activity, Parameter: parameter})
	return b
}

// Build returns the submission.
func (b *SubmissionBuilder) Build() model.Submission {
	return b.sub
}

// SampleSubmissions returns two filled-in worksheets.
func SampleSubmissions() []model.Submission {
	return []model.Submission{
		NewSubmission("Sari").
			WithItem(model.SectionStop, 0, "Begadang", "setiap malam").
			WithItem(model.SectionStart, 0, "Olahraga", "3x seminggu").
			Build(),
		NewSubmission("Budi").
			WithDate("2025-03-05").
			WithItem(model.SectionContinue, 1, "Membaca", "30 menit").
			Build(),
	}
}
