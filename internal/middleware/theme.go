package middleware

import (
	"net/http"

	"github.com/Abhinavgupta8977/dietitian-website/internal/theme"
)

// Theme resolves the light/dark preference for the request and asks the
// browser to send its color scheme hint on later requests.
func Theme(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", theme.HintHeader)
		w.Header().Add("Vary", theme.HintHeader+", Cookie")
		ctx := WithTheme(r.Context(), theme.FromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ThemeMode returns the mode resolved for r.
func ThemeMode(r *http.Request) theme.Mode { return ThemeFromContext(r.Context()) }
