package state

import (
	"time"
)

// Notification levels.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notification is one transient user-visible message.
type Notification struct {
	Level Level
	Text  string
	At    time.Time
}

// Notifier is the sink for transient user feedback. The UI drains a
// Queue; tests substitute a recorder.
type Notifier interface {
	Success(text string)
	Error(text string)
}

// DefaultToastTTL is how long a toast stays visible.
const DefaultToastTTL = 4 * time.Second

// maxQueued bounds the queue so a burst of failures can't grow it
// without limit.
const maxQueued = 16

// Queue is a bounded FIFO of notifications with age-based expiry. It is
// plain values all the way down, so the core stays testable without a
// UI runtime.
type Queue struct {
	items []Notification
	now   func() time.Time
}

// NewQueue returns an empty queue using the wall clock.
func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

// Success enqueues a success toast.
func (q *Queue) Success(text string) {
	q.push(LevelSuccess, text)
}

// Error enqueues a failure toast.
func (q *Queue) Error(text string) {
	q.push(LevelError, text)
}

func (q *Queue) push(level Level, text string) {
	q.items = append(q.items, Notification{Level: level, Text: text, At: q.now()})
	if len(q.items) > maxQueued {
		q.items = q.items[len(q.items)-maxQueued:]
	}
}

// Active drops expired notifications and returns the rest, oldest first.
func (q *Queue) Active(ttl time.Duration) []Notification {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}

	cutoff := q.now().Add(-ttl)
	keep := q.items[:0]
	for _, n := range q.items {
		if n.At.After(cutoff) {
			keep = append(keep, n)
		}
	}
	q.items = keep

	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}
