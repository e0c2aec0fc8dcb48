package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Veraticus/arkas/internal/model"
)

type itemField struct {
	ActivityName  string
	ParameterName string
	Item          model.Item
	No            int
}

type sectionFields struct {
	Section model.Section
	Items   []itemField
}

type worksheetPage struct {
	Title     string
	Problems  map[string]string
	Sections  []sectionFields
	Form      model.Submission
	Saved     bool
	Submitted bool
}

func itemFieldName(section model.Section, i int, part string) string {
	return strings.ToLower(string(section)) + "_" + strconv.Itoa(i) + "_" + part
}

func worksheetSections(sub *model.Submission) []sectionFields {
	sections := make([]sectionFields, 0, len(model.Sections()))
	for _, section := range model.Sections() {
		items := sub.Items(section)
		fs := sectionFields{Section: section}
		for i, item := range items {
			fs.Items = append(fs.Items, itemField{
				No:            i + 1,
				ActivityName:  itemFieldName(section, i, "activity"),
				ParameterName: itemFieldName(section, i, "parameter"),
				Item:          item,
			})
		}
		sections = append(sections, fs)
	}
	return sections
}

func (s *Server) handleWorksheet(w http.ResponseWriter, r *http.Request) {
	sub := model.Submission{Date: s.now().Format(model.DateLayout)}
	s.render(w, http.StatusOK, "worksheet", worksheetPage{
		Title:    "Stop-Start-Continue",
		Form:     sub,
		Sections: worksheetSections(&sub),
		Saved:    r.URL.Query().Get("saved") == "1",
	})
}

func submissionFromForm(r *http.Request) model.Submission {
	sub := model.Submission{
		Name:  r.PostForm.Get("name"),
		Date:  r.PostForm.Get("date"),
		Email: r.PostForm.Get("email"),
	}
	for _, section := range model.Sections() {
		for i := 0; i < model.ItemsPerSection; i++ {
			_ = sub.SetItem(section, i, model.Item{
				Activity:  r.PostForm.Get(itemFieldName(section, i, "activity")),
				Parameter: r.PostForm.Get(itemFieldName(section, i, "parameter")),
			})
		}
	}
	return sub
}

func (s *Server) handleWorksheetSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sub := submissionFromForm(r)
	err := s.store.Append(r.Context(), sub)

	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		problems := make(map[string]string, len(verr.Problems))
		for _, p := range verr.Problems {
			problems[p.Field] = p.Message
		}
		s.render(w, http.StatusUnprocessableEntity, "worksheet", worksheetPage{
			Title:     "Stop-Start-Continue",
			Form:      sub,
			Sections:  worksheetSections(&sub),
			Problems:  problems,
			Submitted: true,
		})
	case err != nil:
		s.serverError(w, err)
	default:
		s.logger.Info("worksheet saved", "name", strings.TrimSpace(sub.Name))
		http.Redirect(w, r, "/worksheet?saved=1", http.StatusSeeOther)
	}
}
