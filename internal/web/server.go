package web

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bookcatalog/internal/httpapi"
	"bookcatalog/internal/page"
)

// Server serves the catalog page to a browser. The page state lives here;
// every browser action is a form post or a GET that runs one page handler.
type Server struct {
	page   *page.Page
	genres []string
	logger *log.Logger
}

func New(p *page.Page, genres []string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{page: p, genres: genres, logger: logger}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/books", s.handleSubmit)
	r.Post("/books/{id}/delete", s.handleDelete)
	r.Get("/search", s.handleSearch)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true}` + "\n"))
	})

	return httpapi.AccessLog(s.logger, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// A failed list is already logged by the page, which keeps its previous rows.
	_ = s.page.Load(r.Context())
	s.renderShell(r.Context(), w, http.StatusOK)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	err := s.page.Submit(r.Context(), page.Form{
		Title:           r.PostFormValue("title"),
		Author:          r.PostFormValue("author"),
		PublicationYear: r.PostFormValue("publicationYear"),
		Genre:           r.PostFormValue("genre"),
	})

	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
	}
	s.renderShell(r.Context(), w, status)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	status := http.StatusOK
	if err := s.page.Delete(r.Context(), id); errors.Is(err, page.ErrUnboundControl) {
		s.logger.Printf("delete: %v", err)
		status = http.StatusNotFound
	}
	s.renderShell(r.Context(), w, status)
}

// pathParam returns the decoded value of a route param. chi routes on
// RawPath when the request has one, and on the already decoded Path otherwise.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.page.Filter(r.URL.Query().Get("q"))
	s.renderShell(r.Context(), w, http.StatusOK)
}

type shellData struct {
	View      page.View
	Genres    []string
	TableBody template.HTML
}

func (s *Server) renderShell(ctx context.Context, w http.ResponseWriter, status int) {
	view := s.page.View()
	data := shellData{
		View:   view,
		Genres: s.genres,
		// Rows were escaped cell by cell when rendered.
		TableBody: template.HTML(view.TableBody),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := shell.Execute(w, data); err != nil {
		s.logger.Printf("render shell request_id=%s: %v", middleware.GetReqID(ctx), err)
	}
}
