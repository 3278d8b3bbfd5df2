package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// WithContext returns a context carrying the given logger.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or the base logger if none
// is present.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		l := Base()
		return &l
	}
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		b := Base()
		return &b
	}
	return l
}
