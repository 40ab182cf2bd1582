package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextChatKey ctxKey = "chatID"

func ChatIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if chatID, ok := ctx.Value(ContextChatKey).(int64); ok {
		return chatID
	}
	return 0
}

func ContextWithChatID(ctx context.Context, chatID int64) context.Context {
	return context.WithValue(ctx, ContextChatKey, chatID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
