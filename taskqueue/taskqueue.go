// Package taskqueue runs submitted tasks on a fixed pool of workers and reports
// the outcome of every task as a results.Result.
package taskqueue

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/thenewtoncapstone/newton-go/closewaiter"
	"github.com/thenewtoncapstone/newton-go/futures"
	"github.com/thenewtoncapstone/newton-go/internal/submit"
	"github.com/thenewtoncapstone/newton-go/results"
)

var (
	ErrQueueFull = submit.ErrQueueFull
	ErrStopped   = errors.New("task queue has been stopped")
)

// RunFunction processes a single task. The context carries the worker id, see WorkerIDFromContext.
type RunFunction[T any, R any] func(ctx context.Context, task T) (R, error)

type TaskQueue[T any, R any] struct {
	run      RunFunction[T, R]
	taskChan chan submit.Task[T, R]
	submit   submit.Func[T, R]

	cw       *closewaiter.CloseWaiter
	waitStop sync.WaitGroup
	log      *slog.Logger
}

// New starts opts.MaxWorkers workers that call run for each submitted task.
// New panics if opts is invalid.
func New[T any, R any](opts Opts, run RunFunction[T, R]) *TaskQueue[T, R] {
	opts.validate()

	tq := &TaskQueue[T, R]{
		run:      run,
		taskChan: make(chan submit.Task[T, R], opts.MaxQueueDepth),
		submit:   submit.GetFunc[T, R](submit.FullQueueStrategy(opts.FullQueueStrategy)),
		cw:       closewaiter.New(),
		log:      opts.logger().With(slog.String("component", "taskqueue")),
	}

	for i := 0; i < opts.MaxWorkers; i++ {
		tq.waitStop.Add(1)
		go tq.worker(i)
	}

	return tq
}

func (tq *TaskQueue[T, R]) worker(workerNum int) {
	defer tq.waitStop.Done()

	for t := range tq.taskChan {
		if err := t.Ctx.Err(); err != nil {
			t.Future.Fail(err.Error())
			continue
		}

		res, err := tq.run(withWorkerID(t.Ctx, workerNum), t.Task)
		if err != nil {
			tq.log.Debug("task failed", slog.Int("worker", workerNum), slog.Any("error", err))
		}
		t.Future.Resolve(results.New(res, err))
	}
}

// Submit queues task and blocks until it has run or ctx is done.
// Any failure, including a full or stopped queue, is reported in the returned Result.
func (tq *TaskQueue[T, R]) Submit(ctx context.Context, task T) results.Result[R] {
	return tq.SubmitF(ctx, task).Get(ctx)
}

// SubmitF queues task and returns a Future for its outcome without waiting for it to run.
func (tq *TaskQueue[T, R]) SubmitF(ctx context.Context, task T) *futures.Future[R] {
	t := submit.NewTask[T, R](ctx, task)

	var err error
	if cerr := tq.cw.Do(func() { err = tq.submit(tq.taskChan, t) }); cerr != nil {
		err = ErrStopped
	}

	if err != nil {
		t.Future.Fail(err.Error())
	}
	return t.Future
}

// Close stops accepting tasks and waits for the workers to finish the queued ones.
// Close may be called more than once.
func (tq *TaskQueue[T, R]) Close() {
	tq.cw.Close(func() {
		close(tq.taskChan)
		tq.log.Debug("task queue closed")
	})

	tq.waitStop.Wait()
}
