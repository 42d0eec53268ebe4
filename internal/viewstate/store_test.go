package viewstate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Abhinavgupta8977/dietitian-website/internal/chat"
	"github.com/Abhinavgupta8977/dietitian-website/internal/contact"
	"github.com/Abhinavgupta8977/dietitian-website/internal/sched"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newStore(clock *sched.ManualClock, ttl time.Duration) *Store {
	return New(Factory{
		Chat: func() (*chat.Transcript, error) {
			return chat.New(chat.Deps{Greeting: "hi", Replies: []string{"ok"}, Delay: time.Second, Clock: clock})
		},
		Contact: func() *contact.State { return contact.NewState(clock, 3*time.Second) },
	}, ttl, clock)
}

func TestGetReusesSessionState(t *testing.T) {
	clock := sched.NewManualClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	s := newStore(clock, 30*time.Minute)
	defer s.Close()

	a, err := s.Get("sess-a")
	require.NoError(t, err)
	again, err := s.Get("sess-a")
	require.NoError(t, err)
	require.Same(t, a, again)

	b, err := s.Get("sess-b")
	require.NoError(t, err)
	require.NotSame(t, a, b)
	require.Equal(t, 2, s.Len())
}

func TestSweepEvictsIdleAndCancelsTimers(t *testing.T) {
	clock := sched.NewManualClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	s := newStore(clock, 500*time.Millisecond)
	defer s.Close()

	idle, err := s.Get("idle")
	require.NoError(t, err)
	_, err = idle.Chat().Send("hello")
	require.NoError(t, err)
	_, err = s.Get("busy")
	require.NoError(t, err)
	require.Zero(t, s.Sweep())
	require.Equal(t, 1, clock.Waiting())

	clock.Advance(600 * time.Millisecond)
	_, err = s.Get("busy")
	require.NoError(t, err)

	require.Equal(t, 1, s.Sweep())
	require.Equal(t, 1, s.Len())
	require.Zero(t, clock.Waiting())

	clock.Advance(time.Minute)
	require.Equal(t, 2, idle.Chat().Len(), "no reply after eviction")
}

func TestCloseRejectsFurtherUse(t *testing.T) {
	clock := sched.NewManualClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	s := newStore(clock, 30*time.Minute)
	e, err := s.Get("x")
	require.NoError(t, err)
	e.Contact().Submit(contact.Form{Name: "Jane", Urgency: "normal"})

	s.Close()
	require.Zero(t, clock.Waiting())
	_, err = s.Get("x")
	require.Error(t, err)
}
