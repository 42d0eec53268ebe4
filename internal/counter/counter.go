// Package counter computes the discrete frames of the animated statistics.
package counter

import (
	"strconv"
	"strings"
	"time"
)

// Animation parameters for the two counter sections.
const (
	HomeSteps     = 50
	HomeInterval  = 40 * time.Millisecond
	AboutSteps    = 50
	AboutInterval = 30 * time.Millisecond
)

// Frames returns steps values climbing from floor(target/steps) to target.
// Frame i is floor(target*i/steps); the last frame is exactly target.
func Frames(target, steps int) []int {
	if steps <= 0 {
		return []int{target}
	}
	out := make([]int, steps)
	for i := 1; i <= steps; i++ {
		out[i-1] = target * i / steps
	}
	return out
}

// Counter is the view model for one animated number.
type Counter struct {
	Label    string
	Target   int
	Suffix   string
	Frames   []int
	Interval time.Duration
}

// New builds a counter animation.
func New(label string, target int, suffix string, steps int, interval time.Duration) Counter {
	return Counter{
		Label:    label,
		Target:   target,
		Suffix:   suffix,
		Frames:   Frames(target, steps),
		Interval: interval,
	}
}

// FramesAttr encodes the frames for a data-counter-frames attribute.
func (c Counter) FramesAttr() string {
	parts := make([]string, len(c.Frames))
	for i, f := range c.Frames {
		parts[i] = strconv.Itoa(f)
	}
	return strings.Join(parts, ",")
}

// IntervalMillis is the frame interval in milliseconds.
func (c Counter) IntervalMillis() int64 { return c.Interval.Milliseconds() }
