package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Veraticus/arkas/internal/common"
	"github.com/Veraticus/arkas/internal/config"
	"github.com/Veraticus/arkas/internal/export"
	"github.com/Veraticus/arkas/internal/model"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type submissionView struct {
	Submission model.Submission
	Index      int
}

type adminPage struct {
	Title       string
	Error       string
	Submissions []submissionView
	Disabled    bool
}

func (s *Server) isAdmin(r *http.Request) bool {
	c, err := r.Cookie(adminCookie)
	return err == nil && s.admins.valid(c.Value)
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminPassword == "" || !s.isAdmin(r) {
			http.Error(w, common.ErrUnauthorized.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	if s.adminPassword == "" {
		s.render(w, http.StatusForbidden, "login", adminPage{Title: "Admin", Disabled: true})
		return
	}
	if !s.isAdmin(r) {
		s.render(w, http.StatusOK, "login", adminPage{Title: "Admin"})
		return
	}

	submissions, err := s.store.Load(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}

	page := adminPage{Title: "Data Worksheet"}
	for i, sub := range submissions {
		page.Submissions = append(page.Submissions, submissionView{Index: i, Submission: sub})
	}
	s.render(w, http.StatusOK, "admin", page)
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if s.adminPassword == "" {
		s.render(w, http.StatusForbidden, "login", adminPage{Title: "Admin", Disabled: true})
		return
	}
	if !config.CheckAdminPassword(s.adminPassword, r.PostForm.Get("password")) {
		s.logger.Warn("admin login rejected")
		s.render(w, http.StatusUnauthorized, "login", adminPage{Title: "Admin", Error: "Password salah"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     adminCookie,
		Value:    s.admins.issue(),
		Path:     "/admin",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(adminCookie); err == nil {
		s.admins.revoke(c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: adminCookie, Value: "", Path: "/admin", MaxAge: -1})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	err = s.store.Delete(r.Context(), index)
	switch {
	case errors.Is(err, common.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		s.serverError(w, err)
	default:
		s.logger.Info("worksheet deleted", "index", index)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	}
}

func (s *Server) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	submissions, err := s.store.Load(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, export.Rows(submissions)); err != nil {
		s.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(s.now())))
	_, _ = buf.WriteTo(w)
}
