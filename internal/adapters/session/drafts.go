// Package session keeps create-team wizard drafts between requests.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/floww/internal/domain/forms"
	"github.com/okian/floww/pkg/metrics"
)

// Drafts stores wizard state keyed by an opaque id carried in the form.
type Drafts interface {
	// Put stores w under id. An empty or unknown id allocates a new one.
	// Returns the id the draft is stored under.
	Put(ctx context.Context, id string, w forms.Wizard) string
	// Get returns the draft for id if it exists and has not expired.
	Get(ctx context.Context, id string) (forms.Wizard, bool)
	// Delete drops the draft for id.
	Delete(ctx context.Context, id string)
	// Sweep drops expired drafts and returns how many were removed.
	Sweep(ctx context.Context) int
	Len() int64
}

// node is one draft in the list, newest at head.
type node struct {
	id      string
	wizard  forms.Wizard
	expires time.Time
	next    *node
}

func (n *node) reset() {
	*n = node{}
}

// inMemoryDrafts keeps drafts in a map plus a singly linked list ordered by
// creation, so the oldest draft is at the tail and evicted first.
type inMemoryDrafts struct {
	mu       sync.Mutex
	byID     map[string]*node
	head     *node
	maxSize  int
	ttl      time.Duration
	now      func() time.Time
	size     atomic.Int64
	nodePool sync.Pool
}

// NewInMemoryDrafts creates a bounded draft store.
func NewInMemoryDrafts(opts ...Option) Drafts {
	d := &inMemoryDrafts{
		maxSize: 256,
		ttl:     30 * time.Minute,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.byID = make(map[string]*node, d.maxSize)
	d.nodePool = sync.Pool{
		New: func() any {
			return &node{}
		},
	}
	return d
}

// Put stores a copy of w.
func (d *inMemoryDrafts) Put(_ context.Context, id string, w forms.Wizard) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	w = cloneWizard(w)
	expires := d.now().Add(d.ttl)

	if n, ok := d.byID[id]; ok {
		n.wizard = w
		n.expires = expires
		return id
	}
	// unknown ids are never adopted from the client
	id = uuid.NewString()

	if len(d.byID) >= d.maxSize {
		d.evictOldest()
	}

	n := d.nodePool.Get().(*node)
	n.id = id
	n.wizard = w
	n.expires = expires
	n.next = d.head
	d.head = n
	d.byID[id] = n

	metrics.UpdateDraftCount(int(d.size.Add(1)))
	return id
}

// Get returns a copy of the stored draft.
func (d *inMemoryDrafts) Get(_ context.Context, id string) (forms.Wizard, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, ok := d.byID[id]
	if !ok {
		return forms.Wizard{}, false
	}
	if !d.now().Before(n.expires) {
		d.remove(n)
		return forms.Wizard{}, false
	}
	return cloneWizard(n.wizard), true
}

// Delete drops the draft for id.
func (d *inMemoryDrafts) Delete(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n, ok := d.byID[id]; ok {
		d.remove(n)
	}
}

// Sweep drops every expired draft.
func (d *inMemoryDrafts) Sweep(_ context.Context) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	var expired []*node
	for n := d.head; n != nil; n = n.next {
		if !now.Before(n.expires) {
			expired = append(expired, n)
		}
	}
	for _, n := range expired {
		d.remove(n)
	}
	return len(expired)
}

// Len returns the number of stored drafts.
func (d *inMemoryDrafts) Len() int64 {
	return d.size.Load()
}

// remove unlinks n. Must be called with d.mu held.
func (d *inMemoryDrafts) remove(n *node) {
	delete(d.byID, n.id)
	if d.head == n {
		d.head = n.next
	} else {
		cur := d.head
		for cur != nil && cur.next != n {
			cur = cur.next
		}
		if cur != nil {
			cur.next = n.next
		}
	}
	n.reset()
	d.nodePool.Put(n)
	metrics.UpdateDraftCount(int(d.size.Add(-1)))
}

// evictOldest removes the tail. Must be called with d.mu held.
func (d *inMemoryDrafts) evictOldest() {
	if d.head == nil {
		return
	}
	tail := d.head
	for tail.next != nil {
		tail = tail.next
	}
	d.remove(tail)
}

func cloneWizard(w forms.Wizard) forms.Wizard {
	w.Team.Employees = append([]string(nil), w.Team.Employees...)
	return w
}
