package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/huh"

	"github.com/Veraticus/arkas/internal/budget"
	"github.com/Veraticus/arkas/internal/currency"
	"github.com/Veraticus/arkas/internal/model"
)

// ErrAmountFormat is returned by ValidateAmount for text that is not a
// thousands-separated whole number.
var ErrAmountFormat = errors.New("use digits, optionally grouped with '.', e.g. 1.000.000")

// ValidateAmount accepts empty text or digits with "." separators.
func ValidateAmount(s string) error {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' && !unicode.IsSpace(r) {
			return ErrAmountFormat
		}
	}
	return nil
}

// BudgetInput holds the raw text of the budget form.
type BudgetInput struct {
	Salary string
	Bonus  string
	Spends []string
}

// NewBudgetInput prefills the form from a session.
func NewBudgetInput(s *budget.Session) *BudgetInput {
	in := &BudgetInput{
		Salary: currency.Format(s.Salary),
		Bonus:  currency.Format(s.Bonus),
		Spends: make([]string, len(s.Categories)),
	}
	for i := range in.Spends {
		if i < len(s.Spends) {
			in.Spends[i] = currency.Format(s.Spends[i])
		}
	}
	return in
}

// Amounts parses the form text. Unparseable fields count as zero.
func (in *BudgetInput) Amounts() (salary, bonus int64, spends []int64) {
	spends = make([]int64, len(in.Spends))
	for i, s := range in.Spends {
		spends[i] = currency.Parse(s)
	}
	return currency.Parse(in.Salary), currency.Parse(in.Bonus), spends
}

// NewBudgetForm builds the interactive allocation form over in.
func NewBudgetForm(in *BudgetInput, categories []model.Category) *huh.Form {
	income := huh.NewGroup(
		huh.NewInput().
			Title("Besar Gaji per Bulan (Rp)").
			Description("Masukkan angka tanpa titik atau gunakan format 1.000.000").
			Value(&in.Salary).
			Validate(ValidateAmount),
		huh.NewInput().
			Title("Insentif/Lembur Rata-rata (Rp)").
			Description("Masukkan angka tanpa titik atau gunakan format 1.000.000").
			Value(&in.Bonus).
			Validate(ValidateAmount),
	).Title("Pendapatan")

	fields := make([]huh.Field, 0, len(categories))
	for i, cat := range categories {
		if i >= len(in.Spends) {
			break
		}
		fields = append(fields, huh.NewInput().
			Title(fmt.Sprintf("%d. %s (rujukan %s)", i+1, cat.Name, cat.RangeLabel())).
			Description(cat.Example).
			Value(&in.Spends[i]).
			Validate(ValidateAmount))
	}
	spending := huh.NewGroup(fields...).Title("Alokasi Dana per Kategori")

	return huh.NewForm(income, spending)
}

// NewWorksheetForm builds the Stop-Start-Continue form bound to sub.
func NewWorksheetForm(sub *model.Submission) *huh.Form {
	if sub.Date == "" {
		sub.Date = time.Now().Format(model.DateLayout)
	}

	identity := huh.NewGroup(
		huh.NewInput().Title("Nama").Value(&sub.Name).Validate(required("nama")),
		huh.NewInput().Title("Tanggal (YYYY-MM-DD)").Value(&sub.Date).Validate(ValidateDate),
		huh.NewInput().Title("Email").Value(&sub.Email).Validate(ValidateEmail),
	).Title("Stop-Start-Continue")

	groups := []*huh.Group{identity}
	for _, section := range model.Sections() {
		items := sectionSlots(sub, section)
		fields := make([]huh.Field, 0, 2*len(items))
		for i := range items {
			fields = append(fields,
				huh.NewInput().Title(fmt.Sprintf("%s %d: aktivitas", section, i+1)).Value(&items[i].Activity),
				huh.NewInput().Title(fmt.Sprintf("%s %d: waktu/parameter", section, i+1)).Value(&items[i].Parameter),
			)
		}
		groups = append(groups, huh.NewGroup(fields...).Title(string(section)))
	}

	return huh.NewForm(groups...)
}

func sectionSlots(sub *model.Submission, section model.Section) []model.Item {
	switch section {
	case model.SectionStop:
		return sub.Stop[:]
	case model.SectionStart:
		return sub.Start[:]
	default:
		return sub.Continue[:]
	}
}

// NewPasswordForm asks for the admin password.
func NewPasswordForm(password *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Admin password").
			EchoMode(huh.EchoModePassword).
			Value(password),
	))
}

// NewConfirmForm asks a yes/no question.
func NewConfirmForm(title string, answer *bool) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Affirmative("Ya").Negative("Tidak").Value(answer),
	))
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s wajib diisi", field)
		}
		return nil
	}
}

// ValidateEmail rejects empty or malformed addresses.
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("email wajib diisi")
	}
	if !model.ValidEmail(s) {
		return errors.New("format email tidak valid")
	}
	return nil
}

// ValidateDate requires a YYYY-MM-DD date.
func ValidateDate(s string) error {
	if _, err := time.Parse(model.DateLayout, strings.TrimSpace(s)); err != nil {
		return errors.New("gunakan format YYYY-MM-DD")
	}
	return nil
}
