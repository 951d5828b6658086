package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/driftfs/driftfs/backends"
	"github.com/driftfs/driftfs/config"
	"github.com/driftfs/driftfs/metrics"
)

// CreateDirectory handles POST /v1/directories/* requests.
func CreateDirectory(fs backends.Filesystem, backendType string, cfg *config.ServerConfig, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			metrics.ObserveBackendOp(backendType, "createdir", time.Since(start).Seconds())
		}()

		ctx, cancel := context.WithTimeout(r.Context(), cfg.FileOpTimeout)
		defer cancel()

		path := chi.URLParam(r, "*")

		entry, err := fs.CreateDir(ctx, path, &backends.Config{})
		if err != nil {
			SendErrorResponse(w, logger, err, http.StatusInternalServerError)
			return
		}

		logger.Info("Directory created",
			zap.String("path", path),
			zap.String("backend", backendType))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		SendJSONResponse(w, logger, entry)
	}
}
