// Package server exposes the practice engine as a small local JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/abhisek/sparky/internal/contentgen"
	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/metrics"
	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/progress"
)

// Server routes HTTP requests to a practice.Service. Session mutations
// are serialized.
type Server struct {
	svc     *practice.Service
	metrics *metrics.Metrics
	logger  zerolog.Logger
	router  chi.Router

	mu sync.Mutex
}

// New builds the router. m may be nil, in which case /metrics is not served.
func New(svc *practice.Service, m *metrics.Metrics, logger zerolog.Logger) *Server {
	s := &Server{svc: svc, metrics: m, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.health)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/profile", s.getProfile)
		r.Put("/profile/grade", s.putGrade)
		r.Get("/profile/summary", s.getSummary)
		r.Get("/achievements", s.listAchievements)
		r.Get("/history", s.listHistory)

		r.Post("/sessions", s.startSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.abandonSession)
			r.Post("/answers", s.submitAnswer)
			r.Post("/advance", s.advance)
			r.Post("/tutor", s.tutor)
		})

		r.Post("/creative", s.startCreative)
		r.Post("/creative/answers", s.submitCreative)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info().Str("addr", addr).Msg("http server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := s.logger.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
		r = r.WithContext(logging.IntoContext(r.Context(), logger))
		next.ServeHTTP(ww, r)

		ev := logger.Info()
		switch {
		case ww.Status() >= 500:
			ev = logger.Error()
		case ww.Status() >= 400:
			ev = logger.Warn()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeServiceError maps engine errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var fetch *contentgen.FetchError
	switch {
	case errors.Is(err, progress.ErrInvalidGrade),
		errors.Is(err, practice.ErrEmptyAnswer),
		errors.Is(err, practice.ErrOpenEnded):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, practice.ErrUnknownSession):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, practice.ErrGradeNotSet),
		errors.Is(err, practice.ErrNoPool),
		errors.Is(err, practice.ErrNoQuestions),
		errors.Is(err, practice.ErrDailyDone),
		errors.Is(err, practice.ErrSessionRunning):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &fetch):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
