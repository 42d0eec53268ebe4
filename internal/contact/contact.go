// Package contact holds the consultation request form: its fields, their
// validation and the submitted state that resets itself after a delay.
package contact

import (
	"html"
	"net/mail"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Abhinavgupta8977/dietitian-website/internal/sched"
)

// DefaultResetDelay is how long the thank-you state stays up.
const DefaultResetDelay = 3 * time.Second

// DefaultUrgency is the urgency preselected on a fresh form.
const DefaultUrgency = "normal"

const maxMessageLength = 4000

var plainText = bluemonday.StrictPolicy()

// Form is the flat consultation request record.
type Form struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Service       string `json:"service"`
	Message       string `json:"message"`
	PreferredTime string `json:"preferredTime"`
	Urgency       string `json:"urgency"`
}

// Blank returns a form with every field at its default.
func Blank() Form {
	return Form{Urgency: DefaultUrgency}
}

// FromValues reads a submitted form. Text is stripped of markup.
func FromValues(v url.Values) Form {
	f := Form{
		Name:          clean(v.Get("name"), 200),
		Email:         strings.ToLower(clean(v.Get("email"), 254)),
		Phone:         clean(v.Get("phone"), 40),
		Service:       clean(v.Get("service"), 200),
		Message:       clean(v.Get("message"), maxMessageLength),
		PreferredTime: clean(v.Get("preferredTime"), 40),
		Urgency:       clean(v.Get("urgency"), 40),
	}
	if f.Urgency == "" {
		f.Urgency = DefaultUrgency
	}
	return f
}

func clean(s string, limit int) string {
	s = strings.TrimSpace(html.UnescapeString(plainText.Sanitize(s)))
	if r := []rune(s); len(r) > limit {
		s = string(r[:limit])
	}
	return s
}

// Values is the form as a field map, for re-rendering inputs.
func (f Form) Values() map[string]string {
	return map[string]string{
		"name":          f.Name,
		"email":         f.Email,
		"phone":         f.Phone,
		"service":       f.Service,
		"message":       f.Message,
		"preferredTime": f.PreferredTime,
		"urgency":       f.Urgency,
	}
}

// Translator returns the message for key, or def when none is defined.
type Translator func(key, def string) string

// Options constrains the select fields. Empty lists accept any value.
type Options struct {
	Services       []string
	PreferredTimes []string
	Urgencies      []string
}

// Validate returns field errors keyed by input name. Name, email and service
// are required.
func Validate(f Form, opts Options, t Translator) map[string]string {
	if t == nil {
		t = func(_, def string) string { return def }
	}
	errors := map[string]string{}
	if f.Name == "" {
		errors["name"] = t("contact.error.name", "Please enter your full name.")
	}
	if f.Email == "" {
		errors["email"] = t("contact.error.email", "Please enter your email address.")
	} else if addr, err := mail.ParseAddress(f.Email); err != nil || addr.Address != f.Email {
		errors["email"] = t("contact.error.email_invalid", "Please enter a valid email address.")
	}
	if f.Service == "" {
		errors["service"] = t("contact.error.service", "Please choose a service.")
	} else if !allowed(opts.Services, f.Service) {
		errors["service"] = t("contact.error.service_unknown", "Please choose one of the listed services.")
	}
	if f.PreferredTime != "" && !allowed(opts.PreferredTimes, f.PreferredTime) {
		errors["preferredTime"] = t("contact.error.time", "Please choose a listed time.")
	}
	if !allowed(opts.Urgencies, f.Urgency) {
		errors["urgency"] = t("contact.error.urgency", "Please choose a listed urgency.")
	}
	return errors
}

func allowed(list []string, v string) bool {
	if len(list) == 0 {
		return true
	}
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// State is one visitor's form: the current values and whether the
// thank-you message is showing.
type State struct {
	delay time.Duration
	group *sched.Group

	mu        sync.Mutex
	form      Form
	submitted bool
	cancel    func()
	// gen counts submits; a reset scheduled by an older submit is stale.
	gen uint64
}

// NewState returns a blank, unsubmitted form state.
func NewState(clock sched.Clock, delay time.Duration) *State {
	if delay <= 0 {
		delay = DefaultResetDelay
	}
	return &State{delay: delay, group: sched.NewGroup(clock), form: Blank()}
}

// Snapshot returns the current values and submitted flag.
func (s *State) Snapshot() (Form, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form, s.submitted
}

// Submitted reports whether the thank-you state is showing.
func (s *State) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// Edit stores in-progress values without submitting, e.g. after a failed
// delivery so the visitor can retry.
func (s *State) Edit(f Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

// Submit flips to the submitted state at once and schedules Reset after the
// delay. A second submit restarts the delay.
func (s *State) Submit(f Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
	s.submitted = true
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	s.cancel = s.group.After(s.delay, func() { s.expire(gen) })
}

// expire resets the form unless a later submit superseded gen. A timer that
// fired while Submit held the lock cannot be cancelled, so it is skipped here.
func (s *State) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.reset()
}

// Reset clears every field to its default and leaves the submitted state.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *State) reset() {
	s.form = Blank()
	s.submitted = false
	s.cancel = nil
}

// ResetDelay is how long the submitted state lasts.
func (s *State) ResetDelay() time.Duration { return s.delay }

// Close cancels a pending reset.
func (s *State) Close() { s.group.Close() }
