// Package batch groups individually submitted tasks into batches and runs each
// batch with a single call, handing every caller the Result for its own task.
package batch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thenewtoncapstone/newton-go/closewaiter"
	"github.com/thenewtoncapstone/newton-go/internal/submit"
	"github.com/thenewtoncapstone/newton-go/results"
)

var (
	ErrBatchResultMismatch = errors.New("batch run returned a different number of results than tasks")
	ErrClosed              = errors.New("batch executor has been closed")
)

// RunFunction processes a batch of tasks. It returns one Result per task, in task order,
// or an error that fails the whole batch.
type RunFunction[T any, R any] func(tasks []T) ([]results.Result[R], error)

type batch[T any, R any] struct {
	id    uuid.UUID
	timer *time.Timer
	tasks []submit.Task[T, R]
}

func (b *batch[T, R]) items() []T {
	items := make([]T, len(b.tasks))
	for i, t := range b.tasks {
		items[i] = t.Task
	}
	return items
}

func (b *batch[T, R]) fail(msg string) {
	for _, t := range b.tasks {
		t.Future.Fail(msg)
	}
}

type Executor[T any, R any] struct {
	m            sync.Mutex
	currentBatch *batch[T, R]
	run          RunFunction[T, R]
	maxSize      int
	maxLinger    time.Duration

	cw      *closewaiter.CloseWaiter
	running sync.WaitGroup
	log     *slog.Logger
}

// NewExecutor creates an Executor that calls run for every batch. It panics if opts is invalid.
func NewExecutor[T any, R any](opts Opts, run RunFunction[T, R]) *Executor[T, R] {
	opts.validate()

	return &Executor[T, R]{
		run:       run,
		maxSize:   opts.MaxSize,
		maxLinger: opts.MaxLinger,
		cw:        closewaiter.New(),
		log:       opts.logger().With(slog.String("component", "batch")),
	}
}

// Submit adds task to the current batch and blocks until the batch has run or ctx is done.
func (be *Executor[T, R]) Submit(ctx context.Context, task T) results.Result[R] {
	t := submit.NewTask[T, R](ctx, task)

	if err := be.cw.Do(func() { be.addTask(t) }); err != nil {
		return results.Failure[R](ErrClosed.Error())
	}

	return t.Future.Get(ctx)
}

func (be *Executor[T, R]) addTask(t submit.Task[T, R]) {
	be.m.Lock()
	defer be.m.Unlock()

	if be.currentBatch == nil {
		be.currentBatch = be.newBatch()
	}
	be.currentBatch.tasks = append(be.currentBatch.tasks, t)

	if len(be.currentBatch.tasks) >= be.maxSize {
		be.dispatch()
	}
}

func (be *Executor[T, R]) newBatch() *batch[T, R] {
	b := &batch[T, R]{
		id:    uuid.New(),
		tasks: make([]submit.Task[T, R], 0, be.maxSize),
	}
	b.timer = time.AfterFunc(be.maxLinger, func() { be.expireBatch(b.id) })
	return b
}

func (be *Executor[T, R]) expireBatch(id uuid.UUID) {
	be.m.Lock()
	defer be.m.Unlock()

	if be.currentBatch != nil && be.currentBatch.id == id {
		be.dispatch()
	}
}

// dispatch runs the current batch in the background. be.m must be held.
func (be *Executor[T, R]) dispatch() {
	b := be.currentBatch
	be.currentBatch = nil
	b.timer.Stop()

	be.running.Add(1)
	go be.runBatch(b)
}

func (be *Executor[T, R]) runBatch(b *batch[T, R]) {
	defer be.running.Done()

	log := be.log.With(slog.String("batch", b.id.String()), slog.Int("size", len(b.tasks)))

	res, err := be.run(b.items())
	if err != nil {
		log.Warn("batch failed", slog.Any("error", err))
		b.fail(err.Error())
		return
	}

	if len(res) != len(b.tasks) {
		log.Error("batch result count mismatch", slog.Int("results", len(res)))
		b.fail(ErrBatchResultMismatch.Error())
		return
	}

	for i, r := range res {
		b.tasks[i].Future.Resolve(r)
	}
	log.Debug("batch complete")
}

// Close runs any partial batch immediately, rejects further submissions and
// waits for running batches to finish.
func (be *Executor[T, R]) Close() {
	be.cw.Close(func() {
		be.m.Lock()
		defer be.m.Unlock()

		if be.currentBatch != nil {
			be.dispatch()
		}
	})

	be.running.Wait()
}
