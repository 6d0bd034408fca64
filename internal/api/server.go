// Package api serves stored articles and fixtures over a read-only JSON API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"club_harvester/internal/config"
	"club_harvester/internal/domain"
	"club_harvester/internal/metrics"
	"club_harvester/internal/storage/postgres"
)

const (
	defaultArticleLimit = 20
	defaultMatchLimit   = 50
	maxMatchLimit       = 400
	defaultHomeLimit    = 6
)

type ArticleReader interface {
	List(ctx context.Context, f postgres.ArticleFilter) ([]domain.Article, error)
	GetByURL(ctx context.Context, url string) (*domain.Article, error)
	Latest(ctx context.Context, limit int) ([]domain.Article, error)
}

type FixtureReader interface {
	List(ctx context.Context, f postgres.FixtureFilter) ([]domain.Fixture, error)
	Upcoming(ctx context.Context, limit int) ([]domain.Fixture, error)
	Played(ctx context.Context, limit int) ([]domain.Fixture, error)
}

// Server wires HTTP handlers to the stores.
type Server struct {
	router          chi.Router
	articles        ArticleReader
	fixtures        FixtureReader
	logger          *slog.Logger
	maxArticleLimit int
}

func NewServer(articles ArticleReader, fixtures FixtureReader, cfg config.APIConfig, logger *slog.Logger) *Server {
	s := &Server{
		articles:        articles,
		fixtures:        fixtures,
		logger:          logger.With("component", "api"),
		maxArticleLimit: cfg.MaxPageLimit,
	}
	if s.maxArticleLimit <= 0 {
		s.maxArticleLimit = 200
	}

	r := chi.NewRouter()
	r.Use(s.recoverMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(timeoutMiddleware(30 * time.Second))

	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", s.listArticles)
		r.Get("/by-url", s.articleByURL)
		r.Get("/latest", s.latestArticle)
	})
	r.Route("/matches", func(r chi.Router) {
		r.Get("/", s.listMatches)
		r.Get("/next", s.nextMatch)
		r.Get("/last", s.lastMatch)
	})
	r.Get("/home", s.home)

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type page[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type single[T any] struct {
	Found bool `json:"found"`
	Item  *T   `json:"item"`
}

func first[T any](items []T) single[T] {
	if len(items) == 0 {
		return single[T]{}
	}
	return single[T]{Found: true, Item: &items[0]}
}

func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q.Get("limit"), defaultArticleLimit, 1, s.maxArticleLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit: "+err.Error())
		return
	}
	offset, err := intParam(q.Get("offset"), 0, 0, -1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "offset: "+err.Error())
		return
	}
	variant := q.Get("variant")
	if variant == "" {
		variant = q.Get("type")
	}

	items, err := s.articles.List(r.Context(), postgres.ArticleFilter{
		Query:   strings.TrimSpace(q.Get("q")),
		Variant: variant,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		s.internalError(w, "list articles", err)
		return
	}
	writeJSON(w, http.StatusOK, page[domain.Article]{Items: items, Limit: limit, Offset: offset})
}

func (s *Server) articleByURL(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	if url == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	article, err := s.articles.GetByURL(r.Context(), url)
	if errors.Is(err, postgres.ErrNotFound) {
		writeJSON(w, http.StatusOK, single[domain.Article]{})
		return
	}
	if err != nil {
		s.internalError(w, "get article", err)
		return
	}
	writeJSON(w, http.StatusOK, single[domain.Article]{Found: true, Item: article})
}

func (s *Server) latestArticle(w http.ResponseWriter, r *http.Request) {
	items, err := s.articles.Latest(r.Context(), 1)
	if err != nil {
		s.internalError(w, "latest article", err)
		return
	}
	writeJSON(w, http.StatusOK, first(items))
}

func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")
	if status != "" && status != string(domain.StatusUpcoming) && status != string(domain.StatusPlayed) {
		writeError(w, http.StatusBadRequest, "status must be upcoming or played")
		return
	}
	limit, err := intParam(q.Get("limit"), defaultMatchLimit, 1, maxMatchLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit: "+err.Error())
		return
	}
	offset, err := intParam(q.Get("offset"), 0, 0, -1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "offset: "+err.Error())
		return
	}

	items, err := s.fixtures.List(r.Context(), postgres.FixtureFilter{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		s.internalError(w, "list matches", err)
		return
	}
	writeJSON(w, http.StatusOK, page[domain.Fixture]{Items: items, Limit: limit, Offset: offset})
}

func (s *Server) nextMatch(w http.ResponseWriter, r *http.Request) {
	items, err := s.fixtures.Upcoming(r.Context(), 1)
	if err != nil {
		s.internalError(w, "next match", err)
		return
	}
	writeJSON(w, http.StatusOK, first(items))
}

func (s *Server) lastMatch(w http.ResponseWriter, r *http.Request) {
	items, err := s.fixtures.Played(r.Context(), 1)
	if err != nil {
		s.internalError(w, "last match", err)
		return
	}
	writeJSON(w, http.StatusOK, first(items))
}

type homePayload struct {
	LatestArticle   *domain.Article  `json:"latest_article"`
	LatestArticles  []domain.Article `json:"latest_articles"`
	NextMatch       *domain.Fixture  `json:"next_match"`
	LastMatch       *domain.Fixture  `json:"last_match"`
	UpcomingMatches []domain.Fixture `json:"upcoming_matches"`
	PlayedMatches   []domain.Fixture `json:"played_matches"`
}

// home aggregates everything a landing page needs in one response.
func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	articlesLimit, err := intParam(q.Get("articles_limit"), defaultHomeLimit, 1, 30)
	if err != nil {
		writeError(w, http.StatusBadRequest, "articles_limit: "+err.Error())
		return
	}
	upcomingLimit, err := intParam(q.Get("upcoming_limit"), defaultHomeLimit, 1, 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, "upcoming_limit: "+err.Error())
		return
	}
	playedLimit, err := intParam(q.Get("played_limit"), defaultHomeLimit, 1, 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, "played_limit: "+err.Error())
		return
	}

	ctx := r.Context()
	articles, err := s.articles.Latest(ctx, articlesLimit)
	if err != nil {
		s.internalError(w, "home articles", err)
		return
	}
	upcoming, err := s.fixtures.Upcoming(ctx, upcomingLimit)
	if err != nil {
		s.internalError(w, "home upcoming", err)
		return
	}
	played, err := s.fixtures.Played(ctx, playedLimit)
	if err != nil {
		s.internalError(w, "home played", err)
		return
	}

	writeJSON(w, http.StatusOK, homePayload{
		LatestArticle:   first(articles).Item,
		LatestArticles:  articles,
		NextMatch:       first(upcoming).Item,
		LastMatch:       first(played).Item,
		UpcomingMatches: upcoming,
		PlayedMatches:   played,
	})
}

// intParam parses an optional integer within [lo, hi]; hi < 0 means unbounded.
func intParam(raw string, def, lo, hi int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	if v < lo || (hi >= 0 && v > hi) {
		if hi < 0 {
			return 0, fmt.Errorf("must be >= %d", lo)
		}
		return 0, fmt.Errorf("must be between %d and %d", lo, hi)
	}
	return v, nil
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unknown"
		}
		metrics.ObserveAPIRequest(route, ww.status)

		s.logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "error", rec)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Default().Error("write JSON failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
