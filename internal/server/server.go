// Package server exposes the validation workflow over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/venture-check/internal/model"
	"github.com/sells-group/venture-check/internal/workflow"
)

// Idea length bounds enforced at the boundary; the workflow never sees
// out-of-range input.
const (
	minIdeaLen = 5
	maxIdeaLen = 500
)

// Runner is the workflow surface the HTTP layer depends on.
type Runner interface {
	Run(ctx context.Context, req workflow.Request) *model.ValidationResult
	RunQuick(ctx context.Context, req workflow.Request) *model.QuickResult
	RunBatch(ctx context.Context, req workflow.BatchRequest) ([]*model.ValidationResult, error)
	ServiceStatus() map[string]bool
}

// Server routes validation requests to the workflow engine.
type Server struct {
	engine Runner
	router chi.Router
}

// New builds the server and its route tree.
func New(engine Runner, allowedOrigins []string) *Server {
	s := &Server{engine: engine}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/validate/quick", s.handleValidateQuick)
		r.Post("/validate/batch", s.handleValidateBatch)
	})

	s.router = r
	return s
}

// Handler returns the root handler for mounting in an http.Server.
func (s *Server) Handler() http.Handler { return s.router }

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
