package core

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/bazaar/internal/models"
)

// Notifier keeps the transient notification feed shown to the user. Each
// notification with a positive duration arms an auto-dismiss timer; Close
// stops every pending timer so none fires against torn-down state.
type Notifier struct {
	mu            sync.Mutex
	notifications []models.Notification
	timers        map[string]*time.Timer
	closed        bool
}

// NewNotifier constructs an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{timers: make(map[string]*time.Timer)}
}

// Add appends a notification and returns its id. A positive duration
// schedules automatic removal; zero or negative means the notification stays
// until removed explicitly.
func (n *Notifier) Add(message, kind string, duration time.Duration) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return ""
	}

	id := uuid.NewString()
	n.notifications = append(n.notifications, models.Notification{
		ID:      id,
		Message: message,
		Type:    kind,
	})

	if duration > 0 {
		n.timers[id] = time.AfterFunc(duration, func() {
			n.Remove(id)
		})
	}
	return id
}

// Remove deletes the notification with the given id, cancelling its pending
// dismiss timer if any. Removing an unknown id is a no-op.
func (n *Notifier) Remove(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if t, ok := n.timers[id]; ok {
		t.Stop()
		delete(n.timers, id)
	}
	for i := range n.notifications {
		if n.notifications[i].ID == id {
			n.notifications = append(n.notifications[:i], n.notifications[i+1:]...)
			return
		}
	}
}

// List returns the current notifications in arrival order.
func (n *Notifier) List() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]models.Notification, len(n.notifications))
	copy(out, n.notifications)
	return out
}

// Close stops all pending timers and rejects further additions.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
	n.notifications = nil
}
