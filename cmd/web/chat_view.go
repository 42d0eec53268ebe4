package main

import (
	"net/http"
	"time"

	"github.com/Abhinavgupta8977/dietitian-website/internal/chat"
	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
	mw "github.com/Abhinavgupta8977/dietitian-website/internal/middleware"
)

// ChatView feeds the floating chat widget and its message log fragment.
type ChatView struct {
	Entries        []chat.Entry
	Typing         bool
	QuickQuestions []string
	// PollAfter is the htmx delay before the log fetches the pending reply.
	PollAfter string
	Error     string
	CSRFToken string
	Draft     string
}

func buildChatView(r *http.Request, t *chat.Transcript, questions []string) ChatView {
	return ChatView{
		Entries:        t.Entries(),
		Typing:         t.Typing(),
		QuickQuestions: questions,
		PollAfter:      htmxDelay(chatPollDelay()),
		CSRFToken:      mw.CSRFToken(r),
	}
}

func chatPollDelay() time.Duration {
	if d := appConfig.Chat.ReplyDelay; d > 0 {
		return d
	}
	return chat.DefaultReplyDelay
}

// buildChatWidget returns the widget state for the session, or an empty
// widget when no state is available.
func buildChatWidget(r *http.Request, site *content.Site) ChatView {
	entry, err := viewStore.Get(mw.GetSession(r).ID)
	if err != nil {
		return ChatView{QuickQuestions: site.Chat.QuickQuestions, CSRFToken: mw.CSRFToken(r)}
	}
	return buildChatView(r, entry.Chat(), site.Chat.QuickQuestions)
}
