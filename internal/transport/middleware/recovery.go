package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/regatta-backend/pkg/ctxutil"
)

const panicBody = `{"error":"internal server error"}`

// Recovery returns middleware that recovers from panics, logs the panic value
// with a stack trace and the request ID, and answers 500 with a JSON error.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				// RequestID usually runs inside Recovery, so its context value is
				// not visible here; the response header is.
				reqID := ctxutil.RequestIDFromCtx(r.Context())
				if reqID == "" {
					reqID = w.Header().Get(RequestIDHeader)
				}
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", reqID),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(panicBody))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
