// Package export flattens worksheet submissions into a row-per-item table.
package export

import (
	"strconv"
	"time"

	"github.com/Veraticus/arkas/internal/model"
)

// Header is the fixed column order of every export.
var Header = []string{"Name", "Date", "Email", "Category", "No", "Activity", "Parameter"}

// RowsPerSubmission is the number of rows each submission expands to.
const RowsPerSubmission = 3 * model.ItemsPerSection

// Row is one worksheet item together with its submission's identity.
type Row struct {
	Name      string
	Date      string
	Email     string
	Category  model.Section
	Activity  string
	Parameter string
	No        int
}

// Values returns the row in Header order.
func (r Row) Values() []string {
	return []string{r.Name, r.Date, r.Email, string(r.Category), strconv.Itoa(r.No), r.Activity, r.Parameter}
}

// Rows expands submissions into Stop, Start and Continue rows in that order.
// Empty items still produce a row so every submission has the same shape.
func Rows(submissions []model.Submission) []Row {
	rows := make([]Row, 0, len(submissions)*RowsPerSubmission)
	for i := range submissions {
		sub := &submissions[i]
		for _, section := range model.Sections() {
			for idx, item := range sub.Items(section) {
				rows = append(rows, Row{
					Name:      sub.Name,
					Date:      sub.Date,
					Email:     sub.Email,
					Category:  section,
					No:        idx + 1,
					Activity:  item.Activity,
					Parameter: item.Parameter,
				})
			}
		}
	}
	return rows
}

// Values converts rows for writers that take plain strings.
func Values(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Values()
	}
	return out
}

// Filename names an export made at now.
func Filename(now time.Time) string {
	return "stop-start-continue-" + now.Format("20060102") + ".xlsx"
}
