// Package theme resolves and toggles the light/dark presentation preference.
package theme

import (
	"net/http"
	"strings"
	"time"
)

// Mode is the persisted theme value.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

const (
	// CookieName is the persisted key-value entry.
	CookieName = "theme"
	// HintHeader is the client hint carrying the OS color scheme.
	HintHeader = "Sec-CH-Prefers-Color-Scheme"

	cookieMaxAge = 365 * 24 * time.Hour
)

// Parse validates a stored or hinted value.
func Parse(v string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(strings.Trim(v, `"`)))) {
	case Dark:
		return Dark, true
	case Light:
		return Light, true
	}
	return "", false
}

// Resolve picks the effective mode. Any stored value decides on its own:
// dark only when it says dark. The environment hint applies only when
// nothing is stored.
func Resolve(stored, hint string) Mode {
	if strings.TrimSpace(stored) != "" {
		if m, _ := Parse(stored); m == Dark {
			return Dark
		}
		return Light
	}
	if m, ok := Parse(hint); ok {
		return m
	}
	return Light
}

// Toggle flips the mode. Toggling twice is the identity.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether the dark presentation flag is set.
func (m Mode) IsDark() bool { return m == Dark }

func (m Mode) String() string { return string(m) }

// FromRequest resolves the mode from the theme cookie and client hint.
func FromRequest(r *http.Request) Mode {
	stored := ""
	if c, err := r.Cookie(CookieName); err == nil {
		stored = c.Value
	}
	return Resolve(stored, r.Header.Get(HintHeader))
}

// Cookie builds the cookie persisting m.
func Cookie(m Mode, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    string(m),
		Path:     "/",
		MaxAge:   int(cookieMaxAge / time.Second),
		Expires:  time.Now().Add(cookieMaxAge),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
