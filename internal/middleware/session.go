package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const sessionCookieName = "NUTRIGLOW_SESSION"

type SessionData struct {
	ID         string    `json:"id"`
	Locale     string    `json:"locale,omitempty"`
	CSRFToken  string    `json:"csrf,omitempty"`
	Newsletter string    `json:"nl,omitempty"` // subscribed address
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// internal dirty flag; not serialized
	dirty bool
}

var sessionSignKey []byte
var sessionSecure bool

// ConfigureSession sets the cookie signing key and Secure flag. An empty key
// generates a process-ephemeral one, which is only suitable for development.
func ConfigureSession(key string, secure bool, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionSecure = secure
	if strings.TrimSpace(key) != "" {
		sessionSignKey = []byte(key)
		return
	}
	sessionSignKey = make([]byte, 32)
	if _, err := rand.Read(sessionSignKey); err != nil {
		logger.Error("session: failed to generate signing key", zap.Error(err))
		sessionSignKey = []byte("insecure-dev-key-please-set-NUTRIGLOW_SESSION__SIGNING_KEY")
	}
	logger.Warn("session: using ephemeral signing key; set NUTRIGLOW_SESSION__SIGNING_KEY for production")
}

// SecureCookies reports whether cookies carry the Secure attribute.
func SecureCookies() bool { return sessionSecure }

// Session loads or initializes a session and stores it in request context.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(sessionSignKey) == 0 {
			ConfigureSession("", sessionSecure, nil)
		}
		sd, fromCookie := readSessionCookie(r)
		if sd.ID == "" {
			sd.ID = randID()
			sd.CreatedAt = time.Now().UTC()
			sd.UpdatedAt = sd.CreatedAt
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}
		ctx := context.WithValue(r.Context(), ctxKeySession, sd)
		rw := NewResponseRecorder(w)
		// ensure cookie is set just before first write if needed
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				writeSessionCookie(w, sd)
			}
		})
		next.ServeHTTP(rw, r.WithContext(ctx))
		// If nothing was written yet (e.g., HEAD), persist cookie now
		if !rw.Wrote() && (sd.dirty || !fromCookie) {
			writeSessionCookie(w, sd)
		}
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// readSessionCookie parses and verifies the session cookie
func readSessionCookie(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return &SessionData{}, false
	}
	payloadB, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return &SessionData{}, false
	}
	sigB, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return &SessionData{}, false
	}
	if !hmac.Equal(sigB, sign(payloadB)) {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := json.Unmarshal(payloadB, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

func sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, sessionSignKey)
	mac.Write(payload)
	return mac.Sum(nil)
}

func encodeSession(sd *SessionData) string {
	b, _ := json.Marshal(sd)
	return base64.RawURLEncoding.EncodeToString(b) + "." + base64.RawURLEncoding.EncodeToString(sign(b))
}

func writeSessionCookie(w http.ResponseWriter, sd *SessionData) {
	// httpOnly to prevent JS access
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encodeSession(sd),
		Path:     "/",
		HttpOnly: true,
		Secure:   sessionSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
