package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/internal/logging"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/observability"
	"github.com/aretw0/sail/pkg/ports"
	"github.com/aretw0/sail/pkg/session"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxRequestBody caps every request body. JSON escaping can grow a source
// several times over, so the cap is well above domain.MaxSourceSize.
const maxRequestBody = 8 * domain.MaxSourceSize

// Server hosts playground sessions over HTTP.
type Server struct {
	Sessions *session.Manager
	Library  ports.ExampleLibrary
	Streams  *StreamManager
	Metrics  *observability.Metrics

	spec          *openapi3.T
	validate      bool
	initialSource string
	logger        *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithLibrary serves snippets under /examples.
func WithLibrary(lib ports.ExampleLibrary) Option {
	return func(s *Server) {
		s.Library = lib
	}
}

// WithMetrics exposes the registry under /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithRequestValidation toggles contract validation of incoming requests.
func WithRequestValidation(enabled bool) Option {
	return func(s *Server) {
		s.validate = enabled
	}
}

// WithInitialSource sets the document of sessions created without one.
func WithInitialSource(source string) Option {
	return func(s *Server) {
		s.initialSource = source
	}
}

// NewHandler creates the HTTP handler for the playground.
func NewHandler(sessions *session.Manager, opts ...Option) (http.Handler, error) {
	s := &Server{
		Sessions: sessions,
		validate: true,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)

	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	s.spec = spec

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(middleware.RequestSize(maxRequestBody))
	if s.validate {
		mw, err := validateRequests(spec, s.logger)
		if err != nil {
			return nil, err
		}
		r.Use(mw)
	}

	r.Get("/", s.Page)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler())
	}

	r.Post("/sessions", s.CreateSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", s.GetSession)
		r.Delete("/", s.DeleteSession)
		r.Put("/source", s.EditSource)
		r.Post("/input", s.FieldInput)
		r.Post("/submit", s.Submit)
		r.Post("/reset", s.Reset)
		r.Get("/history", s.GetHistory)
	})
	r.Get("/functions", s.ListFunctions)
	r.Get("/examples", s.ListExamples)
	r.Get("/examples/{id}", s.GetExample)
	r.Get("/events", s.SubscribeEvents)

	return r, nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec != nil && s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "sail-http",
		"version":     sail.Version,
		"api_version": apiVersion,
	})
}

// -- Helpers --

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "err", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrExampleNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnboundField):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrValueTooLarge), errors.Is(err, domain.ErrInvalidUTF8):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return 499
	}
	return http.StatusInternalServerError
}
