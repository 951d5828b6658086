// Package server wires the driftfs HTTP API: routing, middleware, and the
// metrics and health endpoints.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/driftfs/driftfs/backends"
	"github.com/driftfs/driftfs/config"
	"github.com/driftfs/driftfs/metrics"
	"github.com/driftfs/driftfs/server/handlers"
	driftfsMiddleware "github.com/driftfs/driftfs/server/middleware"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	fs backends.Filesystem,
	backendType string,
	cfg *config.AppConfig,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Logging and metrics middleware
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

			next.ServeHTTP(ww, req)

			duration := time.Since(start)

			metrics.HTTPRequestsTotal.WithLabelValues(
				req.Method,
				req.URL.Path,
				http.StatusText(ww.Status()),
			).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(
				req.Method,
				req.URL.Path,
			).Observe(duration.Seconds())

			logger.Info("HTTP request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", duration),
				zap.String("remote_addr", req.RemoteAddr))
		})
	})

	// Health check endpoint (no auth required)
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			logger.Error("Failed to write health check response", zap.Error(err))
		}
	})

	// Metrics endpoint (no auth required)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes with authentication and rate limiting
	r.Route("/v1", func(r chi.Router) {
		r.Use(driftfsMiddleware.APIKeyMiddleware(cfg.Auth.APIKeys, logger))

		limiter := rate.NewLimiter(rate.Limit(cfg.Server.RequestsPerSecond), cfg.Server.RequestBurst)
		r.Use(driftfsMiddleware.RateLimitMiddleware(limiter, logger))

		r.Route("/files", func(r chi.Router) {
			r.Get("/*", handlers.GetFile(fs, backendType, &cfg.Server, logger))
			r.Head("/*", handlers.HeadFile(fs, backendType, &cfg.Server, logger))
			r.Put("/*", handlers.PutFile(fs, backendType, &cfg.Server, logger))
			r.Post("/*", handlers.PostFile(fs, backendType, &cfg.Server, logger))
			r.Delete("/*", handlers.DeleteFile(fs, backendType, &cfg.Server, logger))
		})

		r.Route("/directories", func(r chi.Router) {
			r.Post("/*", handlers.CreateDirectory(fs, backendType, &cfg.Server, logger))
		})
	})

	logger.Info("HTTP router configured successfully")

	return r
}
