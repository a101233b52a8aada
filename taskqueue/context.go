package taskqueue

import (
	"context"
	"fmt"
)

type workerKey struct{}

func withWorkerID(ctx context.Context, workerNum int) context.Context {
	return context.WithValue(ctx, workerKey{}, workerNum)
}

// WorkerIDFromContext returns the id ("worker-N") of the worker running the
// current task. The TaskQueue stores it on the context handed to the run function.
func WorkerIDFromContext(ctx context.Context) (string, bool) {
	n, ok := ctx.Value(workerKey{}).(int)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("worker-%d", n), true
}
