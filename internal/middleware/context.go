package middleware

import (
	"context"

	"github.com/Abhinavgupta8977/dietitian-website/internal/theme"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyIsHTMX   ctxKey = "is_htmx"
	ctxKeySession  ctxKey = "session"
	ctxKeyLocaleFB ctxKey = "locale_fallback"
	ctxKeyTheme    ctxKey = "theme"
)

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// WithTheme stores the resolved theme mode.
func WithTheme(ctx context.Context, m theme.Mode) context.Context {
	return context.WithValue(ctx, ctxKeyTheme, m)
}

// ThemeFromContext returns the resolved mode, light when unset.
func ThemeFromContext(ctx context.Context) theme.Mode {
	if m, ok := ctx.Value(ctxKeyTheme).(theme.Mode); ok && m != "" {
		return m
	}
	return theme.Light
}
