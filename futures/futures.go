// Package futures provides an implementation of a Future which represents an asynchronous computation.
// A Future can be created and then passed around and read by multiple consumers.  This is the key difference
// between a Future and using a channel for an asynchronous computation as a channel value can only be read once.
//
// A Future always resolves to a results.Result: failures are delivered as data, never as panics.
package futures

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/thenewtoncapstone/newton-go/results"
)

var (
	// ErrCanceled is the failure reported when a future is completed by calling Cancel
	ErrCanceled = errors.New("future canceled")
)

// FutureFunc is the function signature required to create a Future via FromFunc
type FutureFunc[T any] func() (T, error)

// Future is a structure that represents an asynchronous computation.
// A Future should be created by calling New() or using the FromFunc convenience function.
// Once a future has been created it can be completed exactly once.  The first completion wins
// and all other completions are silently ignored.
//
// Complete, Fail, Resolve and Cancel all complete a future.
//
// Get is used to extract the Result from the Future.  If the future has not been
// completed calling Get will block until the future completes or until the context is canceled.
// Get can be called by multiple go routines simultaneously and they will all receive the same Result.
type Future[T any] struct {
	isCompleted atomic.Bool
	completed   chan struct{}

	res results.Result[T]
}

// New creates a new uncompleted Future that will eventually contain a Result of type T.
// This future must be manually completed by calling Complete, Fail, Resolve or Cancel
func New[T any]() *Future[T] {
	return &Future[T]{
		completed: make(chan struct{}),
	}
}

// FromFunc creates a new uncompleted Future that will eventually contain the outcome of the provided function.
// The provided function is run asynchronously when this function is invoked.
func FromFunc[T any](do FutureFunc[T]) *Future[T] {
	f := New[T]()

	go func() {
		t, err := do()
		f.Resolve(results.New(t, err))
	}()

	return f
}

// Complete completes this Future with a successful value.  If the future has already been completed this call is ignored.
func (f *Future[T]) Complete(value T) {
	f.Resolve(results.Success(value))
}

// Fail completes this Future with a failure message.  If the future has already been completed this call is ignored.
func (f *Future[T]) Fail(msg string) {
	f.Resolve(results.Failure[T](msg))
}

// Cancel completes this Future with the ErrCanceled message.  If the future has already been completed this call is ignored.
func (f *Future[T]) Cancel() {
	f.Fail(ErrCanceled.Error())
}

// Resolve completes this Future with the provided Result.  If the future has already been completed this call is ignored.
func (f *Future[T]) Resolve(res results.Result[T]) {
	if f.isCompleted.CompareAndSwap(false, true) {
		f.res = res
		close(f.completed)
	}
}

// Done returns a channel that is closed once the future has been completed.
func (f *Future[T]) Done() <-chan struct{} {
	return f.completed
}

// Get retrieves the Result of this Future.  If the future is not yet completed this call will block until the future is
// completed or until the provided context is canceled, in which case a Failure carrying the context error is returned.
func (f *Future[T]) Get(ctx context.Context) results.Result[T] {
	select {
	case <-f.completed:
		return f.res
	case <-ctx.Done():
		return results.Failure[T](ctx.Err().Error())
	}
}
