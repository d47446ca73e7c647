package middleware

import (
	"net/http"

	"github.com/youchat/youchat-api/internal/api/shared"
)

// TraceMiddleware assigns each request a trace ID, stores it in the request
// context, and echoes it in the X-Trace-ID response header.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, traceID := shared.SetTraceID(r.Context())
		w.Header().Set("X-Trace-ID", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
