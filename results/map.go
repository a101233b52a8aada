package results

// Map applies fn to the value of a Success. A Failure is returned with its message unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.HasError() {
		return Result[U]{msg: r.msg, state: r.state}
	}
	return Success(fn(r.val))
}

// Then chains an operation that itself returns a Result.
func Then[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.HasError() {
		return Result[U]{msg: r.msg, state: r.state}
	}
	return fn(r.val)
}

// Match calls onSuccess with the value or onFailure with the message, depending on the state of r.
func Match[T, U any](r Result[T], onSuccess func(T) U, onFailure func(string) U) U {
	if r.HasError() {
		return onFailure(r.msg)
	}
	return onSuccess(r.val)
}

// Collect returns the values of rs in order, or the first Failure encountered.
func Collect[T any](rs []Result[T]) Result[[]T] {
	vals := make([]T, 0, len(rs))
	for _, r := range rs {
		if r.HasError() {
			return Result[[]T]{msg: r.msg, state: r.state}
		}
		vals = append(vals, r.val)
	}
	return Success(vals)
}
