// Package web serves the budget allocator and the worksheet over HTTP.
package web

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Veraticus/arkas/internal/model"
	"github.com/Veraticus/arkas/internal/narrative"
	"github.com/Veraticus/arkas/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Store         service.SubmissionStore
	Generator     *narrative.Generator
	Logger        *slog.Logger
	Now           func() time.Time
	AdminPassword string
	Categories    []model.Category
}

// Server holds the HTTP handlers and their per-browser state.
type Server struct {
	store         service.SubmissionStore
	generator     *narrative.Generator
	logger        *slog.Logger
	now           func() time.Time
	pages         map[string]*template.Template
	sessions      *sessionStore
	admins        *tokenStore
	router        chi.Router
	adminPassword string
	categories    []model.Category
}

// NewServer builds a server. A nil Generator answers from the local
// templates only.
func NewServer(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("web server requires a submission store")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Generator == nil {
		opts.Generator = narrative.NewGenerator(nil, opts.Logger)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.Categories) == 0 {
		opts.Categories = model.DefaultCategories()
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		store:         opts.Store,
		generator:     opts.Generator,
		logger:        opts.Logger,
		now:           opts.Now,
		pages:         pages,
		sessions:      newSessionStore(opts.Now, sessionIdleTTL, maxSessions),
		admins:        newTokenStore(),
		adminPassword: opts.AdminPassword,
		categories:    opts.Categories,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/budget", http.StatusSeeOther)
	})

	r.Get("/budget", s.handleBudget)
	r.Post("/budget/analyze", s.handleAnalyze)
	r.Post("/budget/chat", s.handleChat)

	r.Get("/worksheet", s.handleWorksheet)
	r.Post("/worksheet", s.handleWorksheetSubmit)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/", s.handleAdmin)
		r.Post("/login", s.handleAdminLogin)
		r.Post("/logout", s.handleAdminLogout)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Post("/submissions/{index}/delete", s.handleAdminDelete)
			r.Get("/export.xlsx", s.handleAdminExport)
		})
	})

	r.Get("/api/health", handleHealth)

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully. A non-nil tlsConfig serves HTTPS.
func (s *Server) ListenAndServe(ctx context.Context, addr string, tlsConfig *tls.Config) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		TLSConfig:         tlsConfig,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if tlsConfig != nil {
			s.logger.Info("server listening", "addr", addr, "tls", true)
			errCh <- srv.ListenAndServeTLS("", "")
			return
		}
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
