package ctxutil

import "context"

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	adminKey     ctxKey = "admin"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithAdmin marks the request as carrying a valid admin token.
func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminKey, true)
}

// IsAdminCtx reports whether the request carries a valid admin token.
func IsAdminCtx(ctx context.Context) bool {
	ok, _ := ctx.Value(adminKey).(bool)
	return ok
}
