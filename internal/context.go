package internal

import (
	"context"
	"time"
)

type ctxKey string

// ContextUserKey carries the authenticated user's ID, set by the identity
// middleware and read by request logging.
const ContextUserKey ctxKey = "userID"

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextUserKey, userID)
}

// UserIDFromContext returns the authenticated user ID, or "" for
// anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	userID, _ := ctx.Value(ContextUserKey).(string)
	return userID
}

// WithTimeout bounds a context, falling back to 5s when the caller passes
// a non-positive duration.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
