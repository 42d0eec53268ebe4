// Package chat implements the scripted support chat: the visitor's message
// is echoed at once and one canned reply follows after a fixed delay.
package chat

import (
	"errors"
	"html"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"

	"github.com/Abhinavgupta8977/dietitian-website/internal/sched"
)

// DefaultReplyDelay is how long the assistant "types" before answering.
const DefaultReplyDelay = time.Second

const maxMessageLength = 1000

var (
	// ErrEmptyMessage is returned when the trimmed text is empty.
	ErrEmptyMessage = errors.New("chat: empty message")
	// ErrClosed is returned by Send after Close.
	ErrClosed = errors.New("chat: transcript closed")
)

var plainText = bluemonday.StrictPolicy()

// Sender identifies who wrote an entry.
type Sender string

const (
	User      Sender = "user"
	Assistant Sender = "bot"
)

// Entry is one chat message.
type Entry struct {
	ID     string    `json:"id"`
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// FromUser reports whether the visitor wrote the entry.
func (e Entry) FromUser() bool { return e.Sender == User }

// Deps configures a Transcript. Greeting and Replies are required.
type Deps struct {
	Greeting string
	Replies  []string
	Delay    time.Duration
	Clock    sched.Clock
	// Pick returns an index in [0, n). Defaults to a uniform random choice.
	Pick  func(n int) int
	NewID func() string
}

// Transcript is an append-only conversation owned by one visitor session or
// one websocket connection.
type Transcript struct {
	replies []string
	delay   time.Duration
	group   *sched.Group
	pick    func(int) int
	newID   func() string

	mu      sync.Mutex
	entries []Entry
	closed  bool
	subs    map[int]func(Entry)
	nextSub int
}

// New creates a transcript seeded with the greeting.
func New(deps Deps) (*Transcript, error) {
	if strings.TrimSpace(deps.Greeting) == "" {
		return nil, errors.New("chat: greeting is required")
	}
	if len(deps.Replies) == 0 {
		return nil, errors.New("chat: at least one reply is required")
	}
	t := &Transcript{
		replies: append([]string(nil), deps.Replies...),
		delay:   deps.Delay,
		group:   sched.NewGroup(deps.Clock),
		pick:    deps.Pick,
		newID:   deps.NewID,
		subs:    map[int]func(Entry){},
	}
	if t.delay <= 0 {
		t.delay = DefaultReplyDelay
	}
	if t.pick == nil {
		t.pick = rand.Intn
	}
	if t.newID == nil {
		t.newID = func() string { return ulid.Make().String() }
	}
	t.entries = []Entry{t.entry(Assistant, deps.Greeting)}
	return t, nil
}

func (t *Transcript) entry(sender Sender, text string) Entry {
	return Entry{ID: t.newID(), Sender: sender, Text: text, At: t.group.Clock().Now()}
}

// Sanitize strips markup and surrounding space from visitor input. The
// result is plain text; templates escape it on output.
func Sanitize(text string) string {
	text = strings.TrimSpace(html.UnescapeString(plainText.Sanitize(text)))
	if r := []rune(text); len(r) > maxMessageLength {
		text = string(r[:maxMessageLength])
	}
	return text
}

// Send appends the visitor's message and schedules exactly one reply.
func (t *Transcript) Send(text string) (Entry, error) {
	text = Sanitize(text)
	if text == "" {
		return Entry{}, ErrEmptyMessage
	}
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return Entry{}, ErrClosed
	}
	e := t.entry(User, text)
	t.entries = append(t.entries, e)
	subs := t.subscribers()
	t.mu.Unlock()
	// Schedule before notifying so a subscriber observing the user entry
	// also observes the pending reply.
	t.group.After(t.delay, t.reply)
	notify(subs, e)
	return e, nil
}

func (t *Transcript) reply() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	e := t.entry(Assistant, t.replies[t.pick(len(t.replies))])
	t.entries = append(t.entries, e)
	subs := t.subscribers()
	t.mu.Unlock()
	notify(subs, e)
}

func (t *Transcript) subscribers() []func(Entry) {
	out := make([]func(Entry), 0, len(t.subs))
	for _, fn := range t.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Entry), e Entry) {
	for _, fn := range subs {
		fn(e)
	}
}

// Subscribe registers fn for every entry appended from now on. fn runs on the
// goroutine that appended the entry and must not block.
func (t *Transcript) Subscribe(fn func(Entry)) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// Entries returns a copy of the conversation in order.
func (t *Transcript) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Entry(nil), t.entries...)
}

// Len is the number of entries.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Typing reports whether a reply is still pending.
func (t *Transcript) Typing() bool { return t.group.Pending() > 0 }

// Close cancels pending replies. No entry is appended after Close returns.
func (t *Transcript) Close() {
	t.mu.Lock()
	t.closed = true
	t.subs = map[int]func(Entry){}
	t.mu.Unlock()
	t.group.Close()
}
