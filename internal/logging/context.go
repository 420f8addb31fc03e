package logging

import (
	"context"

	"go.uber.org/zap"
)

type inputCtxKey struct{}

// WithInput returns a context carrying the input file being processed.
func WithInput(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, inputCtxKey{}, path)
}

// InputFromContext returns the input file stored by WithInput.
func InputFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(inputCtxKey{}).(string); ok {
		return v
	}
	return ""
}

// ContextFields extracts correlation data from context.
func ContextFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	if input := InputFromContext(ctx); input != "" {
		return []zap.Field{zap.String("input", input)}
	}
	return nil
}
