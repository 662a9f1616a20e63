package contextutil

import "context"

type contextKey string

const TraceIDKey contextKey = "traceID"
const Token contextKey = "token"

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return "unknown-trace-id"
	}
	return traceID
}

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, Token, token)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(Token).(string)
	return token
}
