package middleware

import (
	"net/http"
	"time"
)

// DefaultTimeout is used when Timeout is given a non-positive duration.
const DefaultTimeout = 30 * time.Second

const (
	timeoutBody        = `{"error":"request timed out"}`
	timeoutContentType = "application/json"
)

// Timeout bounds request handling. The request context carries the deadline,
// so upstream fetches are cancelled with it. A handler that overruns gets a
// 503 with a JSON error body.
func Timeout(duration time.Duration) Middleware {
	if duration <= 0 {
		duration = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		timeout := http.TimeoutHandler(next, duration, timeoutBody)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timeout.ServeHTTP(&timeoutWriter{ResponseWriter: w}, r)
		})
	}
}

// timeoutWriter labels the timeout body as JSON. A 503 from the wrapped
// handler keeps the content type that handler set.
type timeoutWriter struct {
	http.ResponseWriter
}

func (w *timeoutWriter) WriteHeader(code int) {
	if code == http.StatusServiceUnavailable && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", timeoutContentType)
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *timeoutWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
