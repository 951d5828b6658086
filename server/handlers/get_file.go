package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/driftfs/driftfs/backends"
	"github.com/driftfs/driftfs/config"
	"github.com/driftfs/driftfs/metrics"
)

// GetFile handles GET /v1/files/* requests. Files are streamed as their
// mimetype; directories return a JSON listing (recursive with ?recursive=true).
func GetFile(fs backends.Filesystem, backendType string, cfg *config.ServerConfig, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			metrics.ObserveBackendOp(backendType, "read", time.Since(start).Seconds())
		}()

		ctx, cancel := context.WithTimeout(r.Context(), cfg.FileOpTimeout)
		defer cancel()

		path := chi.URLParam(r, "*")
		if path == "" {
			path = "/"
		}

		entry, err := fs.Metadata(ctx, path)
		if err != nil {
			SendErrorResponse(w, logger, err, http.StatusInternalServerError)
			return
		}

		if entry.Type == backends.TypeDir {
			recursive := r.URL.Query().Get("recursive") == "true"
			entries, err := fs.ListContents(ctx, path, recursive)
			if err != nil {
				SendErrorResponse(w, logger, err, http.StatusInternalServerError)
				return
			}
			SendJSONResponse(w, logger, entries)
			return
		}

		streamed, err := fs.ReadStream(ctx, path)
		if err != nil {
			SendErrorResponse(w, logger, err, http.StatusInternalServerError)
			return
		}
		defer streamed.Stream.Close()

		contentType := streamed.Mimetype
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		if streamed.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(streamed.Size, 10))
		}
		if streamed.Timestamp > 0 {
			w.Header().Set("Last-Modified", time.Unix(streamed.Timestamp, 0).UTC().Format(http.TimeFormat))
		}

		if _, err := io.Copy(w, streamed.Stream); err != nil {
			// Headers are already written; log and bail out
			logger.Error("Failed to stream file content",
				zap.String("path", path),
				zap.Error(err))
		}
	}
}

// HeadFile handles HEAD /v1/files/* requests, returning entry metadata as
// headers without a body.
func HeadFile(fs backends.Filesystem, backendType string, cfg *config.ServerConfig, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			metrics.ObserveBackendOp(backendType, "stat", time.Since(start).Seconds())
		}()

		ctx, cancel := context.WithTimeout(r.Context(), cfg.FileOpTimeout)
		defer cancel()

		path := chi.URLParam(r, "*")
		entry, err := fs.Metadata(ctx, path)
		if err != nil {
			SendErrorResponse(w, logger, err, http.StatusInternalServerError)
			return
		}

		w.Header().Set("X-Driftfs-Type", entry.Type)
		w.Header().Set("X-Driftfs-Size", fmt.Sprintf("%d", entry.Size))
		if entry.Mimetype != "" {
			w.Header().Set("Content-Type", entry.Mimetype)
		}
		if entry.Timestamp > 0 {
			w.Header().Set("Last-Modified", time.Unix(entry.Timestamp, 0).UTC().Format(http.TimeFormat))
		}
		w.WriteHeader(http.StatusOK)
	}
}
