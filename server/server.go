// Package server exposes furigana annotation and the news/notes store over
// HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/rs/cors"

	"jpnews/furigana"
	"jpnews/model"
	"jpnews/store"
)

// Repository is the persistence the handlers need. *store.Store satisfies it.
type Repository interface {
	CreateNews(ctx context.Context, in store.NewsInput) (*model.News, error)
	UpdateNews(ctx context.Context, id int64, in store.NewsInput) (*model.News, error)
	GetNews(ctx context.Context, id int64) (*model.News, error)
	ListNews(ctx context.Context) ([]model.News, error)
	SearchNews(ctx context.Context, keyword string) ([]model.News, error)
	DeleteNews(ctx context.Context, id int64) error

	CreateNote(ctx context.Context, newsID int64, in store.NoteInput) (*model.Note, error)
	UpdateNote(ctx context.Context, id int64, in store.NoteInput) (*model.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	SearchNotes(ctx context.Context, keyword string) ([]model.Note, error)
}

// Handler holds HTTP handlers for the jpnews API.
type Handler struct {
	annotator *furigana.Annotator
	repo      Repository
	logger    *slog.Logger
	timeout   time.Duration
	version   string
}

// Options configures a Handler.
type Options struct {
	// RequestTimeout bounds the work done for one request. Zero means none.
	RequestTimeout time.Duration

	// Version is reported by /health.
	Version string
}

// NewHandler creates a Handler. repo may be nil, in which case only the
// furigana and health routes are registered.
func NewHandler(a *furigana.Annotator, repo Repository, logger *slog.Logger, opts Options) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if a == nil {
		a = furigana.NewAnnotator(nil, furigana.WithLogger(logger))
	}
	return &Handler{
		annotator: a,
		repo:      repo,
		logger:    logger,
		timeout:   opts.RequestTimeout,
		version:   opts.Version,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)

	// Furigana.
	mux.HandleFunc("POST /furigana", h.handleFurigana)
	mux.HandleFunc("POST /furigana/generate", h.handleGenerate)

	if h.repo == nil {
		return
	}

	// News.
	mux.HandleFunc("GET /news", h.handleListNews)
	mux.HandleFunc("POST /news", h.handleCreateNews)
	mux.HandleFunc("GET /news/search", h.handleSearchNews)
	mux.HandleFunc("GET /news/{id}", h.handleGetNews)
	mux.HandleFunc("PUT /news/{id}", h.handleUpdateNews)
	mux.HandleFunc("DELETE /news/{id}", h.handleDeleteNews)

	// Notes.
	mux.HandleFunc("POST /news/{id}/notes", h.handleCreateNote)
	mux.HandleFunc("PUT /notes/{id}", h.handleUpdateNote)
	mux.HandleFunc("DELETE /notes/{id}", h.handleDeleteNote)
	mux.HandleFunc("GET /search/notes", h.handleSearchNotes)
}

// WithCORS wraps next with a CORS policy allowing origins. An empty list or
// an origin of "*" allows every origin without credentials; credentials are
// allowed only for an explicit origin list.
func WithCORS(next http.Handler, origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: len(origins) > 0 && !slices.Contains(origins, "*"),
	})
	return c.Handler(next)
}

// NewHTTPServer returns an http.Server for handler with conservative timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// requestContext derives the per-request context, bounded by the handler
// timeout when one is set.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": h.version,
	})
}
