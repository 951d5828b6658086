// Package middleware provides HTTP middleware for the driftfs server.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// APIKeyMiddleware authenticates requests with a bearer API key from the
// configured set.
func APIKeyMiddleware(apiKeys []string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if key == "" || !keyAllowed(apiKeys, key) {
				logger.Warn("Request rejected: invalid API key",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				if _, err := w.Write([]byte(`{"code":"AUTHENTICATION_FAILED","message":"Invalid or missing API key"}`)); err != nil {
					logger.Error("Failed to write auth error response", zap.Error(err))
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func keyAllowed(apiKeys []string, key string) bool {
	for _, candidate := range apiKeys {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(key)) == 1 {
			return true
		}
	}
	return false
}
