package model

import "fmt"

// Result is the outcome of an asynchronous domain fetch: either a value or
// an ErrorKind. The zero Result is a generic failure.
type Result[T any] struct {
	data T
	kind ErrorKind
	ok   bool
}

// Success wraps a fetched value.
func Success[T any](data T) Result[T] {
	return Result[T]{data: data, ok: true}
}

// Failure wraps an error classification.
func Failure[T any](kind ErrorKind) Result[T] {
	return Result[T]{kind: kind}
}

// IsSuccess reports whether r carries data.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// Data returns the wrapped value and true for a success.
func (r Result[T]) Data() (T, bool) {
	return r.data, r.ok
}

// Kind returns the error classification and true for a failure.
func (r Result[T]) Kind() (ErrorKind, bool) {
	if r.ok {
		return 0, false
	}
	return r.kind, true
}

func (r Result[T]) String() string {
	if r.ok {
		return fmt.Sprintf("Success(%v)", r.data)
	}
	return fmt.Sprintf("Failure(%s)", r.kind)
}
