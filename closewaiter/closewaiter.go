// Package closewaiter guards a resource, such as a channel, that many goroutines
// use and one goroutine eventually closes.
package closewaiter

import (
	"errors"
	"sync"
)

var (
	ErrClosed = errors.New("closed")
)

// CloseWaiter lets callers run work against a resource until it is closed.
// Close waits for every in flight Do to return before running its teardown,
// so the teardown never races a caller still using the resource.
type CloseWaiter struct {
	m        sync.RWMutex
	isClosed bool
}

func New() *CloseWaiter {
	return &CloseWaiter{}
}

// Do runs f unless Close has been called, in which case it returns ErrClosed.
// f must not call Close.
func (c *CloseWaiter) Do(f func()) error {
	c.m.RLock()
	defer c.m.RUnlock()

	if c.isClosed {
		return ErrClosed
	}

	f()
	return nil
}

// Close marks the CloseWaiter closed, waits for active calls to Do, then runs f.
// Only the first call runs f; later calls return once f has finished.
func (c *CloseWaiter) Close(f func()) {
	c.m.Lock()
	defer c.m.Unlock()

	if c.isClosed {
		return
	}
	c.isClosed = true

	f()
}

// IsClosed reports whether Close has been called.
func (c *CloseWaiter) IsClosed() bool {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.isClosed
}
