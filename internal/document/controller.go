package document

import (
	"slices"
	"sync"
)

// Listener receives the new current document. It may be nil.
type Listener func(*Document)

type subscription struct {
	id int
	fn Listener
}

// Controller tracks the current document and notifies subscribers when it
// changes. It is safe for concurrent use; notifications are delivered
// synchronously, in subscription order, one change at a time. A listener
// must not call SetCurrent.
type Controller struct {
	notifyMu  sync.Mutex
	mu        sync.Mutex
	current   *Document
	nextID    int
	listeners []subscription
}

// NewController creates a controller with no current document.
func NewController() *Controller {
	return &Controller{}
}

// Current returns the current document, or nil.
func (c *Controller) Current() *Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// SetCurrent replaces the current document and notifies every subscriber.
func (c *Controller) SetCurrent(doc *Document) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.current = doc
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	for _, l := range listeners {
		l.fn(doc)
	}
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription; calling it more than once is harmless.
func (c *Controller) Subscribe(fn Listener) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.listeners = slices.DeleteFunc(c.listeners, func(s subscription) bool {
				return s.id == id
			})
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (c *Controller) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners)
}
