package futures

import (
	"context"

	"github.com/thenewtoncapstone/newton-go/results"
)

// ResolveAll waits for all of the provided Futures to complete and returns a results.Result for each
// future at the index corresponding to the provided slice.
// If the provided context is canceled, the cancellation error will be returned as an error by this function.
func ResolveAll[T any](ctx context.Context, fs []*Future[T]) ([]results.Result[T], error) {
	res := make([]results.Result[T], 0, len(fs))

	for _, f := range fs {
		r := f.Get(ctx)
		// check after the Get so a cancel racing the last value is still reported
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		res = append(res, r)
	}

	return res, nil
}
