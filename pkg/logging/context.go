package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

// loggerKey is the context key for the logger.
const loggerKey contextKey = iota

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// Ctx returns a logger from the context or the default logger.
// This is a shorter alias for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithPublisher adds publisher context to the logger.
func WithPublisher(ctx context.Context, publisher string) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Str("publisher", publisher).Logger()
	return WithLogger(ctx, &newLogger)
}

// WithState adds state subdivision context to the logger.
func WithState(ctx context.Context, stateCode string) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Str("state", stateCode).Logger()
	return WithLogger(ctx, &newLogger)
}
