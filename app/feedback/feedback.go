// Package feedback holds the single transient status message shown after a
// user action.
package feedback

import (
	"sync"
	"time"
)

// Kind tags a message for styling.
type Kind string

const (
	Success Kind = "success"
	Danger  Kind = "danger"
)

// DefaultDelay is how long a message stays visible.
const DefaultDelay = time.Second

// Message is the content of the slot. The zero value is an empty slot.
type Message struct {
	Text string `json:"text"`
	Kind Kind   `json:"kind"`
}

// Empty reports whether nothing is shown.
func (m Message) Empty() bool { return m.Text == "" }

// Slot is a single message slot that clears itself after a delay. Each Show
// cancels the clear scheduled by the previous one.
type Slot struct {
	delay time.Duration

	mu    sync.Mutex
	msg   Message
	timer *time.Timer
	gen   uint64
}

// NewSlot returns an empty slot clearing after delay (DefaultDelay if <= 0).
func NewSlot(delay time.Duration) *Slot {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Slot{delay: delay}
}

// Show replaces the current message and restarts the clear timer.
func (s *Slot) Show(text string, kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.msg = Message{Text: text, Kind: kind}
	s.timer = time.AfterFunc(s.delay, func() { s.clear(gen) })
}

// clear empties the slot unless a newer Show has happened since gen. A timer
// that already fired before Stop was called ends up here with a stale gen.
func (s *Slot) clear(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.msg = Message{}
	s.timer = nil
}

// Current returns what is shown right now.
func (s *Slot) Current() Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}

// Stop cancels any pending clear. The current message is left as is.
func (s *Slot) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}
