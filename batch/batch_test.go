package batch

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thenewtoncapstone/newton-go/results"
)

var ErrTest = errors.New("unit test error")

func TestBatch(t *testing.T) {
	require := require.New(t)

	var actualCount atomic.Uint32
	itemCount := 10

	wg := sync.WaitGroup{}

	run := func(items []int) ([]results.Result[int], error) {
		var rs []results.Result[int]

		for _, n := range items {
			if n == 5 {
				rs = append(rs, results.Failure[int](ErrTest.Error()))
			} else {
				rs = append(rs, results.Success(n*2))
			}
			actualCount.Add(1)
		}

		return rs, nil
	}

	be := NewExecutor(Opts{MaxSize: 3, MaxLinger: 10 * time.Millisecond}, run)

	for i := 0; i < itemCount; i++ {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			r := be.Submit(context.Background(), n)
			if n == 5 {
				require.True(r.HasError())
				require.Equal(ErrTest.Error(), r.ErrorMsg())
				return
			}
			require.False(r.HasError())
			require.Equal(2*n, r.Value())
		}(i)
	}

	wg.Wait()
	be.Close()

	require.Equal(itemCount, int(actualCount.Load()))
}

func TestBatchFailure(t *testing.T) {
	require := require.New(t)

	itemCount := 10
	wg := sync.WaitGroup{}

	run := func(items []int) ([]results.Result[int], error) {
		return nil, ErrTest
	}

	be := NewExecutor(Opts{MaxSize: 3, MaxLinger: 10 * time.Millisecond}, run)

	for i := 0; i < itemCount; i++ {
		wg.Add(1)
		go func(val int) {
			defer wg.Done()
			r := be.Submit(context.Background(), val)
			require.Equal(results.Failure[int](ErrTest.Error()), r)
		}(i)
	}

	wg.Wait()
	be.Close()
}

func TestSubmitCancellation(t *testing.T) {
	require := require.New(t)

	run := func(items []int) ([]results.Result[int], error) {
		var rs []results.Result[int]
		for _, n := range items {
			rs = append(rs, results.Success(n*2))
		}
		return rs, nil
	}

	be := NewExecutor(Opts{MaxSize: 3, MaxLinger: math.MaxInt64}, run)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel the context before submitting

	r := be.Submit(ctx, 5)
	require.True(r.HasError())
	require.Equal(context.Canceled.Error(), r.ErrorMsg())

	be.Close()
}

func TestBadRunFunction(t *testing.T) {
	require := require.New(t)

	wg := sync.WaitGroup{}

	run := func(items []int) ([]results.Result[int], error) {
		return []results.Result[int]{}, nil
	}

	be := NewExecutor(Opts{MaxSize: 3, MaxLinger: 10 * time.Millisecond}, run)

	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r := be.Submit(context.Background(), n)
			require.Equal(ErrBatchResultMismatch.Error(), r.ErrorMsg())
		}(i)
	}

	wg.Wait()
	be.Close()
}

func TestCloseFlushesPartialBatch(t *testing.T) {
	require := require.New(t)

	var runs atomic.Int32
	run := func(items []string) ([]results.Result[int], error) {
		runs.Add(1)
		rs := make([]results.Result[int], len(items))
		for i, s := range items {
			rs[i] = results.Success(len(s))
		}
		return rs, nil
	}

	be := NewExecutor(Opts{MaxSize: 10, MaxLinger: math.MaxInt64}, run)

	done := make(chan results.Result[int])
	go func() {
		done <- be.Submit(context.Background(), "four")
	}()

	require.Eventually(func() bool {
		be.m.Lock()
		defer be.m.Unlock()
		return be.currentBatch != nil
	}, time.Second, time.Millisecond)

	be.Close()
	require.Equal(results.Success(4), <-done)
	require.Equal(int32(1), runs.Load())

	r := be.Submit(context.Background(), "late")
	require.Equal(ErrClosed.Error(), r.ErrorMsg())
}
