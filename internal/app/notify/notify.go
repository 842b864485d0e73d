/*
Package notify holds the single transient notification a tab shows.

A new notification replaces whatever is showing, including an in-flight loading
notification, so a failure always surfaces as exactly one message.
*/
package notify

import (
	"sync"
	"time"

	"gatherly/internal/pkg/randx"
)

// Kind classifies a notification.
type Kind string

const (
	KindLoading Kind = "loading"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is one transient message. Loading notifications have no expiry.
type Notification struct {
	ID        string     `json:"id"`
	Kind      Kind       `json:"kind"`
	Message   string     `json:"message"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Notifier is what the meeting workflow reports through.
type Notifier interface {
	Loading(message string) string
	Success(message string)
	Error(message string)
	Dismiss(id string)
}

// Center is a single-slot Notifier.
type Center struct {
	mu       sync.Mutex
	current  *Notification
	duration time.Duration
	now      func() time.Time
}

// NewCenter creates a Center whose success and error notifications last duration.
func NewCenter(duration time.Duration) *Center {
	return &Center{duration: duration, now: time.Now}
}

func (c *Center) show(kind Kind, message string, expires bool) string {
	n := &Notification{ID: randx.NotificationID(), Kind: kind, Message: message}
	if expires {
		at := c.now().Add(c.duration)
		n.ExpiresAt = &at
	}

	c.mu.Lock()
	c.current = n
	c.mu.Unlock()

	return n.ID
}

// Loading shows a persistent loading notification and returns its id.
func (c *Center) Loading(message string) string {
	return c.show(KindLoading, message, false)
}

// Success shows a success notification.
func (c *Center) Success(message string) {
	c.show(KindSuccess, message, true)
}

// Error shows an error notification.
func (c *Center) Error(message string) {
	c.show(KindError, message, true)
}

// Dismiss removes the current notification only if its id matches.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.current.ID == id {
		c.current = nil
	}
}

// Current returns a copy of the live notification, or nil.
func (c *Center) Current() *Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return nil
	}
	if c.current.ExpiresAt != nil && c.now().After(*c.current.ExpiresAt) {
		c.current = nil
		return nil
	}

	n := *c.current
	return &n
}
