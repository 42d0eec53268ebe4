package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Abhinavgupta8977/dietitian-website/internal/sched"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var start = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func newTranscript(t *testing.T, clock sched.Clock, pick func(int) int) *Transcript {
	t.Helper()
	n := 0
	tr, err := New(Deps{
		Greeting: "Hi! How can I help?",
		Replies:  []string{"first", "second", "third"},
		Delay:    time.Second,
		Clock:    clock,
		Pick:     pick,
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	require.NoError(t, err)
	t.Cleanup(tr.Close)
	return tr
}

func TestNewSeedsGreeting(t *testing.T) {
	tr := newTranscript(t, sched.NewManualClock(start), nil)
	entries := tr.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, Assistant, entries[0].Sender)
	require.Equal(t, "Hi! How can I help?", entries[0].Text)
	require.Equal(t, start, entries[0].At)
}

func TestNewRequiresReplies(t *testing.T) {
	_, err := New(Deps{Greeting: "hi"})
	require.Error(t, err)
	_, err = New(Deps{Replies: []string{"x"}})
	require.Error(t, err)
}

func TestSendRejectsBlankText(t *testing.T) {
	clock := sched.NewManualClock(start)
	tr := newTranscript(t, clock, nil)
	for _, text := range []string{"", "   ", "\n\t", "<b></b>"} {
		_, err := tr.Send(text)
		require.ErrorIs(t, err, ErrEmptyMessage)
	}
	require.Equal(t, 1, tr.Len())
	require.Zero(t, clock.Waiting())
}

func TestSendAppendsNowAndRepliesAfterDelay(t *testing.T) {
	clock := sched.NewManualClock(start)
	tr := newTranscript(t, clock, func(n int) int { return n - 1 })

	e, err := tr.Send("  What are your consultation fees?  ")
	require.NoError(t, err)
	require.Equal(t, User, e.Sender)
	require.Equal(t, "What are your consultation fees?", e.Text)
	require.Equal(t, 2, tr.Len())
	require.True(t, tr.Typing())

	clock.Advance(999 * time.Millisecond)
	require.Equal(t, 2, tr.Len(), "no reply before the delay")

	clock.Advance(time.Millisecond)
	entries := tr.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, Assistant, entries[2].Sender)
	require.Equal(t, "third", entries[2].Text)
	require.Equal(t, start.Add(time.Second), entries[2].At)
	require.False(t, tr.Typing())

	clock.Advance(time.Hour)
	require.Equal(t, 3, tr.Len(), "exactly one reply per message")
}

func TestRepliesComeFromCannedSet(t *testing.T) {
	clock := sched.NewManualClock(start)
	tr := newTranscript(t, clock, nil)
	for i := 0; i < 20; i++ {
		_, err := tr.Send("hello")
		require.NoError(t, err)
	}
	clock.Advance(time.Second)
	for _, e := range tr.Entries()[1:] {
		if e.Sender == Assistant {
			require.Contains(t, []string{"first", "second", "third"}, e.Text)
		}
	}
	require.Equal(t, 41, tr.Len())
}

func TestCloseCancelsPendingReply(t *testing.T) {
	clock := sched.NewManualClock(start)
	tr := newTranscript(t, clock, nil)
	_, err := tr.Send("hello")
	require.NoError(t, err)

	tr.Close()
	clock.Advance(time.Minute)
	require.Equal(t, 2, tr.Len())

	_, err = tr.Send("again")
	require.ErrorIs(t, err, ErrClosed)
}

func TestSubscribeReceivesBothEntries(t *testing.T) {
	clock := sched.NewManualClock(start)
	tr := newTranscript(t, clock, func(int) int { return 0 })
	var got []Entry
	unsubscribe := tr.Subscribe(func(e Entry) { got = append(got, e) })

	_, err := tr.Send("hi")
	require.NoError(t, err)
	clock.Advance(time.Second)
	require.Len(t, got, 2)
	require.Equal(t, User, got[0].Sender)
	require.Equal(t, "first", got[1].Text)

	unsubscribe()
	_, err = tr.Send("more")
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestSanitizeStripsMarkup(t *testing.T) {
	require.Equal(t, "hello & bye", Sanitize(" <script>x</script><b>hello</b> &amp; bye "))
}

func TestRealClockReply(t *testing.T) {
	tr, err := New(Deps{Greeting: "hi", Replies: []string{"ok"}, Delay: 10 * time.Millisecond})
	require.NoError(t, err)
	defer tr.Close()

	done := make(chan Entry, 2)
	tr.Subscribe(func(e Entry) { done <- e })
	_, err = tr.Send("ping")
	require.NoError(t, err)
	require.Equal(t, User, (<-done).Sender)
	select {
	case e := <-done:
		require.Equal(t, "ok", e.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("reply did not arrive")
	}
}

func TestSubscriberSeesReplyPendingOnUserEntry(t *testing.T) {
	clock := sched.NewManualClock(start)
	tr := newTranscript(t, clock, func(int) int { return 0 })

	var typing []bool
	unsubscribe := tr.Subscribe(func(e Entry) {
		if e.FromUser() {
			typing = append(typing, tr.Typing())
		}
	})
	defer unsubscribe()

	_, err := tr.Send("hello")
	require.NoError(t, err)
	require.Equal(t, []bool{true}, typing)
	require.Equal(t, 1, clock.Waiting())
}
