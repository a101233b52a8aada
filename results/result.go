// Package results provides Result, the outcome of an operation that may fail.
// A Result holds either a value or a human-readable error message and is used
// to hand failures back as data instead of panicking.
package results

import (
	"errors"
	"fmt"
)

// ErrUnset is reported by Err for a Result that was never built with Success or Failure.
var ErrUnset = errors.New("result was not initialized")

// Unit is the payload of a Result for an operation that returns nothing.
type Unit struct{}

// Result is either a Success holding a value of type T or a Failure holding a message.
// Results are immutable and safe to read from multiple goroutines.
//
// The zero value is a Failure with an empty message. Build Results with
// Success, Failure or New.
type Result[T any] struct {
	val   T // valid only in the success state
	msg   string
	state state
}

type state uint8

const (
	unset state = iota
	succeeded
	failed
)

// Success returns a Result holding val.
func Success[T any](val T) Result[T] {
	return Result[T]{val: val, state: succeeded}
}

// Failure returns a Result in the failed state holding msg.
// The Result is a Failure even if msg is empty.
func Failure[T any](msg string) Result[T] {
	return Result[T]{msg: msg, state: failed}
}

// Failuref is Failure with a fmt.Sprintf formatted message.
func Failuref[T any](format string, args ...any) Result[T] {
	return Failure[T](fmt.Sprintf(format, args...))
}

// New converts a Go (value, error) pair into a Result.
// A non-nil err produces a Failure carrying err's message.
func New[T any](val T, err error) Result[T] {
	if err != nil {
		return Failure[T](err.Error())
	}
	return Success(val)
}

// Done returns a successful Result for an operation with no value.
func Done() Result[Unit] {
	return Success(Unit{})
}

// Fail returns a failed Result for an operation with no value.
func Fail(msg string) Result[Unit] {
	return Failure[Unit](msg)
}

// HasError reports whether r is a Failure.
func (r Result[T]) HasError() bool {
	return r.state != succeeded
}

// IsSuccess reports whether r is a Success.
func (r Result[T]) IsSuccess() bool {
	return r.state == succeeded
}

// Value returns the stored value without checking the state of r.
// On a Failure it returns the zero value of T, so callers must check
// HasError first or use ValueOr.
func (r Result[T]) Value() T {
	return r.val
}

// ValueOr returns the stored value, or def if r is a Failure.
func (r Result[T]) ValueOr(def T) T {
	if r.state != succeeded {
		return def
	}
	return r.val
}

// ValueOrElse returns the stored value, or the result of fn if r is a Failure.
// fn is only called on a Failure.
func (r Result[T]) ValueOrElse(fn func() T) T {
	if r.state != succeeded {
		return fn()
	}
	return r.val
}

// ErrorMsg returns the failure message, or "" if r is a Success.
func (r Result[T]) ErrorMsg() string {
	if r.state == succeeded {
		return ""
	}
	return r.msg
}

// Err returns nil for a Success and an *Error carrying the message otherwise.
func (r Result[T]) Err() error {
	switch r.state {
	case succeeded:
		return nil
	case unset:
		return ErrUnset
	}
	return &Error{Msg: r.msg}
}

// Get returns the value and error of r as a Go pair.
func (r Result[T]) Get() (T, error) {
	return r.val, r.Err()
}

func (r Result[T]) String() string {
	if r.state == succeeded {
		return fmt.Sprintf("ok(%v)", r.val)
	}
	return fmt.Sprintf("error(%s)", r.msg)
}

// Error is the error returned by Result.Err for a Failure.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}
