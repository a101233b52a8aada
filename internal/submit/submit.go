// Package submit holds the queueing pieces shared by the executors: the task
// envelope that carries a caller's context and future, and the strategies used
// when an executor's queue is full.
package submit

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenewtoncapstone/newton-go/futures"
)

var (
	ErrQueueFull = errors.New("task queue is full")
)

type FullQueueStrategy int

const (
	BlockWhenFull FullQueueStrategy = iota
	ErrorWhenFull
)

func (s FullQueueStrategy) String() string {
	switch s {
	case BlockWhenFull:
		return "block"
	case ErrorWhenFull:
		return "error"
	}
	return fmt.Sprintf("FullQueueStrategy(%d)", int(s))
}

// Task pairs a submitted task with the context of the caller and the future its outcome is delivered on.
type Task[T any, R any] struct {
	Ctx    context.Context
	Task   T
	Future *futures.Future[R]
}

func NewTask[T any, R any](ctx context.Context, task T) Task[T, R] {
	return Task[T, R]{
		Ctx:    ctx,
		Task:   task,
		Future: futures.New[R](),
	}
}

// Func places t on taskChan, or returns the reason it could not.
type Func[T any, R any] func(taskChan chan<- Task[T, R], t Task[T, R]) error

func GetFunc[T any, R any](s FullQueueStrategy) Func[T, R] {
	switch s {
	case BlockWhenFull:
		return blockWhenFull[T, R]
	case ErrorWhenFull:
		return errorWhenFull[T, R]
	}
	panic(fmt.Sprintf("invalid full queue strategy %d", int(s)))
}

func blockWhenFull[T any, R any](taskChan chan<- Task[T, R], t Task[T, R]) error {
	select {
	case taskChan <- t:
		return nil
	case <-t.Ctx.Done():
		return t.Ctx.Err()
	}
}

func errorWhenFull[T any, R any](taskChan chan<- Task[T, R], t Task[T, R]) error {
	select {
	case taskChan <- t:
		return nil
	default:
		return ErrQueueFull
	}
}
