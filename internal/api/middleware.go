package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"
)

// BasicAuthMiddleware gates requests behind the single configured credential
// pair. Requests without credentials get 401, wrong credentials get 403. If
// the configured credentials themselves are missing the check cannot run and
// the failure is surfaced as a server error, making it explicit that the
// problem is on our side.
func BasicAuthMiddleware(username, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok {
				jsonError(w, "missing credentials", http.StatusUnauthorized)
				return
			}
			if username == "" || password == "" {
				jsonError(w, "Cannot check credential correctness.", http.StatusInternalServerError)
				return
			}
			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
			if !userOK || !passOK {
				jsonError(w, "invalid credentials", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs incoming requests.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: 200}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
