// Package ratelimiter runs submitted tasks no faster than a configured rate
// and reports the outcome of each task as a results.Result.
package ratelimiter

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	"github.com/thenewtoncapstone/newton-go/closewaiter"
	"github.com/thenewtoncapstone/newton-go/futures"
	"github.com/thenewtoncapstone/newton-go/internal/submit"
	"github.com/thenewtoncapstone/newton-go/results"
)

var (
	ErrClosed = errors.New("rate limiter has been closed")
)

type RunFunction[T any, R any] func(ctx context.Context, task T) (R, error)

type RateLimiter[T any, R any] struct {
	limiter  *rate.Limiter
	taskChan chan submit.Task[T, R]

	submit submit.Func[T, R]
	run    RunFunction[T, R]

	cw      *closewaiter.CloseWaiter
	running sync.WaitGroup
	log     *slog.Logger
}

// New creates a RateLimiter that calls run for each submitted task once a token is available.
// New panics if opts is invalid.
func New[T any, R any](opts Opts, run RunFunction[T, R]) *RateLimiter[T, R] {
	opts.validate()

	rl := &RateLimiter[T, R]{
		limiter:  rate.NewLimiter(opts.Limit, opts.Burst),
		taskChan: make(chan submit.Task[T, R], opts.MaxQueueDepth),
		submit:   submit.GetFunc[T, R](submit.FullQueueStrategy(opts.FullQueueStrategy)),
		run:      run,
		cw:       closewaiter.New(),
		log:      opts.logger().With(slog.String("component", "ratelimiter")),
	}

	rl.running.Add(1)
	go rl.worker()

	return rl
}

func (rl *RateLimiter[T, R]) worker() {
	defer rl.running.Done()

	for t := range rl.taskChan {
		if err := rl.limiter.Wait(t.Ctx); err != nil {
			rl.log.Debug("task dropped while waiting for a token", slog.Any("error", err))
			t.Future.Fail(err.Error())
			continue
		}

		rl.running.Add(1)
		go rl.runTask(t)
	}
}

func (rl *RateLimiter[T, R]) runTask(t submit.Task[T, R]) {
	defer rl.running.Done()

	r, err := rl.run(t.Ctx, t.Task)
	t.Future.Resolve(results.New(r, err))
}

// Submit queues task and blocks until it has run or ctx is done.
func (rl *RateLimiter[T, R]) Submit(ctx context.Context, task T) results.Result[R] {
	return rl.SubmitF(ctx, task).Get(ctx)
}

// SubmitF queues task and returns a Future for its outcome.
func (rl *RateLimiter[T, R]) SubmitF(ctx context.Context, task T) *futures.Future[R] {
	t := submit.NewTask[T, R](ctx, task)

	var err error
	if cerr := rl.cw.Do(func() { err = rl.submit(rl.taskChan, t) }); cerr != nil {
		err = ErrClosed
	}

	if err != nil {
		t.Future.Fail(err.Error())
	}
	return t.Future
}

// Close stops accepting tasks and waits for queued and running tasks to finish.
// It is safe to call Close more than once.
func (rl *RateLimiter[T, R]) Close() {
	rl.cw.Close(func() {
		close(rl.taskChan)
	})

	rl.running.Wait()
}
