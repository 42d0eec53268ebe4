package middleware

import (
	"encoding/json"
	"net/http"
)

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithHTMX(r.Context(), isHTMXRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// Trigger sets HX-Trigger to a JSON event map, e.g. {"theme:changed":{"dark":true}}.
func Trigger(w http.ResponseWriter, events map[string]any) {
	if len(events) == 0 {
		return
	}
	if raw, err := json.Marshal(events); err == nil {
		w.Header().Set("HX-Trigger", string(raw))
	}
}

// PushURL asks htmx to record url in the browser history.
func PushURL(w http.ResponseWriter, url string) {
	w.Header().Set("HX-Push-Url", url)
}
