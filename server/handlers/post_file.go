package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/driftfs/driftfs/backends"
	"github.com/driftfs/driftfs/config"
	"github.com/driftfs/driftfs/metrics"
)

// FileOpRequest is the body of a POST /v1/files/* request.
type FileOpRequest struct {
	Op          string `json:"op"` // "rename" or "copy"
	Destination string `json:"destination"`
}

// PostFile handles POST /v1/files/* requests carrying a rename or copy
// operation against the path in the URL.
func PostFile(fs backends.Filesystem, backendType string, cfg *config.ServerConfig, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx, cancel := context.WithTimeout(r.Context(), cfg.FileOpTimeout)
		defer cancel()

		path := chi.URLParam(r, "*")

		var req FileOpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			SendErrorResponse(w, logger, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
			return
		}
		if req.Destination == "" {
			SendErrorResponse(w, logger, fmt.Errorf("destination is required"), http.StatusBadRequest)
			return
		}

		var err error
		switch req.Op {
		case "rename":
			err = fs.Rename(ctx, path, req.Destination)
		case "copy":
			err = fs.Copy(ctx, path, req.Destination)
		default:
			SendErrorResponse(w, logger, fmt.Errorf("unknown op %q", req.Op), http.StatusBadRequest)
			return
		}

		metrics.ObserveBackendOp(backendType, req.Op, time.Since(start).Seconds())

		if err != nil {
			SendErrorResponse(w, logger, err, http.StatusInternalServerError)
			return
		}

		logger.Info("File operation completed",
			zap.String("op", req.Op),
			zap.String("path", path),
			zap.String("destination", req.Destination))

		w.WriteHeader(http.StatusNoContent)
	}
}
