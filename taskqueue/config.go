package taskqueue

import (
	"log/slog"

	"github.com/thenewtoncapstone/newton-go/internal/submit"
)

// FullQueueStrategy is the behavior used when a task is submitted to a full queue.
type FullQueueStrategy submit.FullQueueStrategy

const (
	// BlockWhenFull exerts back pressure by blocking the caller until the queue has room or its context ends.
	BlockWhenFull FullQueueStrategy = FullQueueStrategy(submit.BlockWhenFull)
	// ErrorWhenFull immediately fails the task with ErrQueueFull.
	ErrorWhenFull FullQueueStrategy = FullQueueStrategy(submit.ErrorWhenFull)
)

// Opts is used to configure a TaskQueue via the New function.
type Opts struct {
	// MaxWorkers is the number of tasks run concurrently.
	MaxWorkers int
	// MaxQueueDepth is the number of submitted tasks that may wait for a worker.
	MaxQueueDepth int
	// FullQueueStrategy determines what Submit does when MaxQueueDepth is exceeded.
	// By default the caller is blocked.
	FullQueueStrategy FullQueueStrategy
	// Logger receives worker diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Opts) validate() {
	if o.MaxWorkers < 1 {
		panic("task queue max workers must be 1 or greater")
	}

	if o.MaxQueueDepth < 0 {
		panic("task queue max queue depth must be 0 or greater")
	}
}

func (o Opts) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
