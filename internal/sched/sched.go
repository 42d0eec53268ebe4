// Package sched runs delayed callbacks that belong to a view and stops them
// when the view goes away.
package sched

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Real time is used in production; tests use ManualClock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealClock returns a Clock backed by the runtime timers.
func RealClock() Clock { return realClock{} }

// Group owns the pending tasks of a single view. Closing the group cancels
// every pending task and guarantees none of them runs afterwards.
type Group struct {
	clock Clock

	// run is held while a callback executes so Close can wait it out.
	run sync.Mutex

	mu     sync.Mutex
	closed bool
	nextID uint64
	tasks  map[uint64]Timer
}

// NewGroup creates a group on the given clock. A nil clock means real time.
func NewGroup(clock Clock) *Group {
	if clock == nil {
		clock = RealClock()
	}
	return &Group{clock: clock, tasks: map[uint64]Timer{}}
}

// Clock exposes the clock the group schedules on.
func (g *Group) Clock() Clock { return g.clock }

// After runs fn once d has elapsed, unless the task or the group is cancelled
// first. The returned func cancels just this task. Scheduling on a closed
// group is a no-op.
func (g *Group) After(d time.Duration, fn func()) (cancel func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return func() {}
	}
	g.nextID++
	id := g.nextID
	g.tasks[id] = g.clock.AfterFunc(d, func() {
		g.run.Lock()
		defer g.run.Unlock()
		g.mu.Lock()
		_, live := g.tasks[id]
		if live {
			delete(g.tasks, id)
		}
		closed := g.closed
		g.mu.Unlock()
		if !live || closed {
			return
		}
		fn()
	})
	return func() { g.cancel(id) }
}

func (g *Group) cancel(id uint64) {
	g.mu.Lock()
	t, ok := g.tasks[id]
	delete(g.tasks, id)
	g.mu.Unlock()
	if ok {
		t.Stop()
	}
}

// Pending reports how many tasks are still waiting to fire.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.tasks)
}

// Close stops every pending task and waits for a callback that is already
// running. It is safe to call more than once but must not be called from
// inside a callback of the same group.
func (g *Group) Close() {
	g.run.Lock()
	defer g.run.Unlock()
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	tasks := g.tasks
	g.tasks = map[uint64]Timer{}
	g.mu.Unlock()
	for _, t := range tasks {
		t.Stop()
	}
}

// Closed reports whether Close has been called.
func (g *Group) Closed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}
