// Package notify keeps the recent toast notifications shown after a form
// is accepted.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/floww/pkg/metrics"
)

// Notification is a transient toast.
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Notifier publishes and looks up notifications.
type Notifier interface {
	Push(ctx context.Context, title, description string) Notification
	// Get returns the notification with id while it is still retained.
	Get(ctx context.Context, id string) (Notification, bool)
	// Take is Get for a toast that is displayed once. Later calls with the
	// same id report false while Recent keeps listing it.
	Take(ctx context.Context, id string) (Notification, bool)
	// Recent returns up to n notifications, newest first.
	Recent(ctx context.Context, n int) []Notification
	Len() int
}

// Ring is a fixed-size Notifier; the oldest entry is overwritten when full.
type Ring struct {
	mu       sync.RWMutex
	items    []Notification
	shown    []bool
	next     int
	count    int
	capacity int
	now      func() time.Time
}

var _ Notifier = (*Ring)(nil)

// NewRing creates a notification ring.
func NewRing(opts ...Option) *Ring {
	r := &Ring{capacity: 64, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	r.items = make([]Notification, r.capacity)
	r.shown = make([]bool, r.capacity)
	return r
}

// Push stores a new notification and returns it.
func (r *Ring) Push(_ context.Context, title, description string) Notification {
	n := Notification{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   r.now(),
	}

	r.mu.Lock()
	r.items[r.next] = n
	r.shown[r.next] = false
	r.next = (r.next + 1) % r.capacity
	if r.count < r.capacity {
		r.count++
	}
	r.mu.Unlock()

	metrics.RecordNotification()
	return n
}

// Get finds a retained notification by id.
func (r *Ring) Get(_ context.Context, id string) (Notification, bool) {
	if id == "" {
		return Notification{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := 0; i < r.count; i++ {
		if n := r.items[r.index(i)]; n.ID == id {
			return n, true
		}
	}
	return Notification{}, false
}

// Take finds a retained notification by id and marks it shown.
func (r *Ring) Take(_ context.Context, id string) (Notification, bool) {
	if id == "" {
		return Notification{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < r.count; i++ {
		idx := r.index(i)
		if r.items[idx].ID != id {
			continue
		}
		if r.shown[idx] {
			return Notification{}, false
		}
		r.shown[idx] = true
		return r.items[idx], true
	}
	return Notification{}, false
}

// Recent returns up to n notifications, newest first. n <= 0 returns all.
func (r *Ring) Recent(_ context.Context, n int) []Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 || n > r.count {
		n = r.count
	}
	out := make([]Notification, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.items[r.index(i)])
	}
	return out
}

// Len returns the number of retained notifications.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// index returns the slot of the i-th newest entry. Must be called with r.mu held.
func (r *Ring) index(i int) int {
	return (r.next - 1 - i + r.capacity) % r.capacity
}
