package main

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Abhinavgupta8977/dietitian-website/internal/chat"
	mw "github.com/Abhinavgupta8977/dietitian-website/internal/middleware"
	"github.com/Abhinavgupta8977/dietitian-website/internal/observability"
)

// ChatMessagesFrag renders the session's chat log.
func ChatMessagesFrag(w http.ResponseWriter, r *http.Request) {
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	entry, ok := sessionState(w, r)
	if !ok {
		return
	}
	renderTemplate(w, r, "frag_chat_log", buildChatView(r, entry.Chat(), site.Chat.QuickQuestions))
}

// ChatSendHandler appends the visitor's message; the scripted reply follows
// after the reply delay.
func ChatSendHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	entry, ok := sessionState(w, r)
	if !ok {
		return
	}
	t := entry.Chat()
	_, err := t.Send(r.PostForm.Get("message"))
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		// Nothing to send; the log is unchanged.
	case err != nil:
		observability.FromContext(r.Context()).Warn("chat send failed", zap.Error(err))
		mw.WriteError(w, r, http.StatusServiceUnavailable, "chat unavailable")
		return
	}
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, backTo(r), http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "frag_chat_log", buildChatView(r, t, site.Chat.QuickQuestions))
}

const socketWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type chatRequest struct {
	Text string `json:"text"`
}

type chatEvent struct {
	Type  string      `json:"type"`
	Entry *chat.Entry `json:"entry,omitempty"`
	Error string      `json:"error,omitempty"`
}

// ChatSocketHandler serves one transcript per connection. Entries are
// pushed as they are appended; the transcript closes with the socket.
func ChatSocketHandler(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("chat: websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	t, err := newTranscript()
	if err != nil {
		logger.Error("chat: transcript", zap.Error(err))
		return
	}
	defer t.Close()

	// One writer goroutine; gorilla connections allow a single concurrent writer.
	out := make(chan chatEvent, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range out {
			_ = conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				logger.Debug("chat: websocket write", zap.Error(err))
				return
			}
		}
	}()
	var (
		mu      sync.Mutex
		closing bool
	)
	send := func(ev chatEvent) {
		mu.Lock()
		defer mu.Unlock()
		if closing {
			return
		}
		select {
		case out <- ev:
		default:
			logger.Debug("chat: dropping event for slow client")
		}
	}
	defer func() {
		mu.Lock()
		closing = true
		close(out)
		mu.Unlock()
		<-done
	}()

	for _, e := range t.Entries() {
		send(chatEvent{Type: "entry", Entry: &e})
	}
	unsubscribe := t.Subscribe(func(e chat.Entry) {
		send(chatEvent{Type: "entry", Entry: &e})
	})
	defer unsubscribe()

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("chat: websocket read", zap.Error(err))
			}
			return
		}
		if _, err := t.Send(req.Text); err != nil {
			send(chatEvent{Type: "error", Error: err.Error()})
		}
	}
}

// backTo returns the same-site referring path, or "/".
func backTo(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return "/"
	}
	base := strings.TrimRight(appConfig.Site.BaseURL, "/")
	if strings.HasPrefix(ref, base+"/") {
		return strings.TrimPrefix(ref, base)
	}
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return ref
	}
	if host := r.Host; host != "" {
		for _, scheme := range []string{"http://", "https://"} {
			if strings.HasPrefix(ref, scheme+host+"/") {
				return strings.TrimPrefix(ref, scheme+host)
			}
		}
	}
	return "/"
}
