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

// PutFile handles PUT /v1/files/* requests. By default an existing file is
// refused; ?overwrite=true replaces it.
func PutFile(fs backends.Filesystem, backendType string, cfg *config.ServerConfig, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			metrics.ObserveBackendOp(backendType, "write", time.Since(start).Seconds())
		}()

		ctx, cancel := context.WithTimeout(r.Context(), cfg.FileOpTimeout)
		defer cancel()

		path := chi.URLParam(r, "*")
		writeCfg := &backends.Config{
			Mimetype: r.Header.Get("Content-Type"),
		}

		var entry *backends.Entry
		var err error
		if r.URL.Query().Get("overwrite") == "true" {
			entry, err = fs.UpdateStream(ctx, path, r.Body, writeCfg)
		} else {
			entry, err = fs.WriteStream(ctx, path, r.Body, writeCfg)
		}
		if err != nil {
			SendErrorResponse(w, logger, err, http.StatusInternalServerError)
			return
		}

		logger.Info("File written",
			zap.String("path", path),
			zap.String("backend", backendType),
			zap.Int64("size", entry.Size))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		SendJSONResponse(w, logger, entry)
	}
}
