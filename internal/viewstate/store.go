// Package viewstate keeps the page-local state of each visitor session: the
// chat transcript and the contact form. Idle entries expire and are closed,
// which cancels their pending timers.
package viewstate

import (
	"errors"
	"sync"
	"time"

	"github.com/Abhinavgupta8977/dietitian-website/internal/chat"
	"github.com/Abhinavgupta8977/dietitian-website/internal/contact"
	"github.com/Abhinavgupta8977/dietitian-website/internal/sched"
)

var errStoreClosed = errors.New("viewstate: store closed")

// DefaultTTL is how long an untouched session keeps its state.
const DefaultTTL = 30 * time.Minute

// Factory builds fresh state for a session.
type Factory struct {
	Chat    func() (*chat.Transcript, error)
	Contact func() *contact.State
}

// Entry is the state owned by one session.
type Entry struct {
	chat    *chat.Transcript
	contact *contact.State
	seen    time.Time
}

// Chat returns the session transcript.
func (e *Entry) Chat() *chat.Transcript { return e.chat }

// Contact returns the session contact form.
func (e *Entry) Contact() *contact.State { return e.contact }

func (e *Entry) close() {
	e.chat.Close()
	e.contact.Close()
}

// Store maps session ids to their state.
type Store struct {
	factory Factory
	ttl     time.Duration
	clock   sched.Clock

	mu      sync.Mutex
	entries map[string]*Entry
	closed  bool
}

// New creates a store. A nil clock means real time.
func New(factory Factory, ttl time.Duration, clock sched.Clock) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = sched.RealClock()
	}
	return &Store{factory: factory, ttl: ttl, clock: clock, entries: map[string]*Entry{}}
}

// Get returns the state of session id, creating it on first use, and marks
// it as seen.
func (s *Store) Get(id string) (*Entry, error) {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errStoreClosed
	}
	if e, ok := s.entries[id]; ok {
		e.seen = now
		return e, nil
	}
	tr, err := s.factory.Chat()
	if err != nil {
		return nil, err
	}
	e := &Entry{chat: tr, contact: s.factory.Contact(), seen: now}
	s.entries[id] = e
	return e, nil
}

// Len is the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Store) Sweep() int {
	cutoff := s.clock.Now().Add(-s.ttl)
	s.mu.Lock()
	var evicted []*Entry
	for id, e := range s.entries {
		if e.seen.Before(cutoff) {
			evicted = append(evicted, e)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()
	for _, e := range evicted {
		e.close()
	}
	return len(evicted)
}

// Close releases every session. Get fails afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	entries := s.entries
	s.entries = map[string]*Entry{}
	s.closed = true
	s.mu.Unlock()
	for _, e := range entries {
		e.close()
	}
}
