// Package handlers implements the HTTP handlers for the driftfs file API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/driftfs/driftfs/backends"
	"github.com/driftfs/driftfs/metrics"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendErrorResponse sends a standardized JSON error response, mapping
// backend sentinel errors onto HTTP status codes.
func SendErrorResponse(w http.ResponseWriter, logger *zap.Logger, err error, defaultStatusCode int) {
	w.Header().Set("Content-Type", "application/json")

	var statusCode int
	var errorCode string

	switch {
	case errors.Is(err, backends.ErrNotFound):
		statusCode = http.StatusNotFound
		errorCode = "PATH_NOT_FOUND"
	case errors.Is(err, backends.ErrAlreadyExists):
		statusCode = http.StatusConflict
		errorCode = "PATH_ALREADY_EXISTS"
	case errors.Is(err, backends.ErrForbidden):
		statusCode = http.StatusForbidden
		errorCode = "PATH_FORBIDDEN"
	case errors.Is(err, backends.ErrNotSupported):
		statusCode = http.StatusNotImplemented
		errorCode = "NOT_SUPPORTED"
	case errors.Is(err, backends.ErrOperationFailed):
		statusCode = http.StatusUnprocessableEntity
		errorCode = "OPERATION_FAILED"
	default:
		statusCode = defaultStatusCode
		errorCode = "INTERNAL_ERROR"
	}

	metrics.ErrorsTotal.WithLabelValues("server", errorCode).Inc()
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Code:    errorCode,
		Message: err.Error(),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode error response", zap.Error(err))
		fmt.Fprint(w, "Internal error occurred")
	}

	logger.Info("Error response sent",
		zap.String("error_code", errorCode),
		zap.Int("status_code", statusCode),
		zap.Error(err))
}

// SendJSONResponse sends a JSON response with any data structure
func SendJSONResponse(w http.ResponseWriter, logger *zap.Logger, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}
