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

// DeleteFile handles DELETE /v1/files/* requests for files and directories.
func DeleteFile(fs backends.Filesystem, backendType string, cfg *config.ServerConfig, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			metrics.ObserveBackendOp(backendType, "delete", time.Since(start).Seconds())
		}()

		ctx, cancel := context.WithTimeout(r.Context(), cfg.FileOpTimeout)
		defer cancel()

		path := chi.URLParam(r, "*")

		entry, err := fs.Metadata(ctx, path)
		if err != nil {
			SendErrorResponse(w, logger, err, http.StatusInternalServerError)
			return
		}

		if entry.Type == backends.TypeDir {
			err = fs.DeleteDir(ctx, path)
		} else {
			err = fs.Delete(ctx, path)
		}
		if err != nil {
			SendErrorResponse(w, logger, err, http.StatusInternalServerError)
			return
		}

		logger.Info("Path deleted",
			zap.String("path", path),
			zap.String("type", entry.Type),
			zap.String("backend", backendType))

		w.WriteHeader(http.StatusNoContent)
	}
}
