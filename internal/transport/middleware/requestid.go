package middleware

import (
	"net/http"

	"github.com/cropmaint/machine-maintenance/pkg/logger"

	"github.com/google/uuid"
)

// RequestID propagates an incoming X-Trace-ID or mints a fresh one, and
// stashes it on the context logger so every log line downstream carries it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
