package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ItemsPerSection is the fixed number of slots in each worksheet section.
const ItemsPerSection = 3

// DateLayout is the on-disk and on-form layout of Submission.Date.
const DateLayout = "2006-01-02"

// Section names one of the three worksheet lists.
type Section string

const (
	// SectionStop lists behaviors to stop.
	SectionStop Section = "Stop"
	// SectionStart lists behaviors to start.
	SectionStart Section = "Start"
	// SectionContinue lists behaviors to keep doing.
	SectionContinue Section = "Continue"
)

// Sections returns the worksheet sections in display and export order.
func Sections() []Section {
	return []Section{SectionStop, SectionStart, SectionContinue}
}

// Item is one worksheet line: what to do and when or how long.
type Item struct {
	Activity  string `json:"activity"`
	Parameter string `json:"parameter"`
}

// Submission is one completed Stop-Start-Continue worksheet.
type Submission struct {
	Name     string                `json:"name"`
	Date     string                `json:"date"`
	Email    string                `json:"email"`
	Stop     [ItemsPerSection]Item `json:"stop"`
	Start    [ItemsPerSection]Item `json:"start"`
	Continue [ItemsPerSection]Item `json:"continue"`
}

// Items returns the slots of the given section.
func (s *Submission) Items(section Section) [ItemsPerSection]Item {
	switch section {
	case SectionStop:
		return s.Stop
	case SectionStart:
		return s.Start
	case SectionContinue:
		return s.Continue
	default:
		return [ItemsPerSection]Item{}
	}
}

// SetItem stores an item at position idx (0-based) of a section.
func (s *Submission) SetItem(section Section, idx int, item Item) error {
	if idx < 0 || idx >= ItemsPerSection {
		return fmt.Errorf("item index %d out of range for section %s", idx, section)
	}
	switch section {
	case SectionStop:
		s.Stop[idx] = item
	case SectionStart:
		s.Start[idx] = item
	case SectionContinue:
		s.Continue[idx] = item
	default:
		return fmt.Errorf("unknown section %q", section)
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s has the shape local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every problem found in a submission.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Field+": "+p.Message)
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

// Has reports whether field has a recorded problem.
func (e *ValidationError) Has(field string) bool {
	for _, p := range e.Problems {
		if p.Field == field {
			return true
		}
	}
	return false
}

// Normalize trims surrounding whitespace from every text field.
func (s *Submission) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Date = strings.TrimSpace(s.Date)
	s.Email = strings.TrimSpace(s.Email)
	for _, section := range []*[ItemsPerSection]Item{&s.Stop, &s.Start, &s.Continue} {
		for i := range section {
			section[i].Activity = strings.TrimSpace(section[i].Activity)
			section[i].Parameter = strings.TrimSpace(section[i].Parameter)
		}
	}
}

// Validate checks the fields required before a submission may be stored.
// It returns a *ValidationError listing every problem, or nil.
func (s *Submission) Validate() error {
	var problems []FieldError

	if strings.TrimSpace(s.Name) == "" {
		problems = append(problems, FieldError{Field: "name", Message: "name is required"})
	}

	email := strings.TrimSpace(s.Email)
	switch {
	case email == "":
		problems = append(problems, FieldError{Field: "email", Message: "email is required"})
	case !ValidEmail(email):
		problems = append(problems, FieldError{Field: "email", Message: "email address is not valid"})
	}

	date := strings.TrimSpace(s.Date)
	if date == "" {
		problems = append(problems, FieldError{Field: "date", Message: "date is required"})
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		problems = append(problems, FieldError{Field: "date", Message: "date must use YYYY-MM-DD"})
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
