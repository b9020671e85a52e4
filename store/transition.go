package store

import (
	"context"
	"fmt"
)

// Reducer maps the current state and an intent to a Transition. Reducers
// must be pure: side effects belong in the returned Effects.
type Reducer[S, I any] func(state S, intent I) Transition[S, I]

// Transition is the outcome of applying one intent.
type Transition[S, I any] struct {
	State   S
	Commit  bool
	Effects []Effect[I]
	Err     error
}

// Commit publishes state and then starts effects.
func Commit[S, I any](state S, effects ...Effect[I]) Transition[S, I] {
	return Transition[S, I]{State: state, Commit: true, Effects: effects}
}

// Skip leaves the state untouched and starts effects.
func Skip[S, I any](effects ...Effect[I]) Transition[S, I] {
	return Transition[S, I]{Effects: effects}
}

// Violation rejects the intent. err should wrap ErrPrecondition or
// ErrUnknownIntent.
func Violation[S, I any](err error) Transition[S, I] {
	return Transition[S, I]{Err: err}
}

// Unhandled is the default branch of a reducer's type switch.
func Unhandled[S, I any](intent I) Transition[S, I] {
	return Violation[S, I](fmt.Errorf("%w: %T", ErrUnknownIntent, intent))
}

// Effect is asynchronous work started after a transition. When it returns
// true, the intent is dispatched back to the store that started it.
type Effect[I any] func(ctx context.Context) (I, bool)

// Fire wraps work that produces no follow-up intent.
func Fire[I any](fn func(ctx context.Context)) Effect[I] {
	return func(ctx context.Context) (I, bool) {
		fn(ctx)
		var zero I
		return zero, false
	}
}

// Follow wraps work whose result is fed back as an intent.
func Follow[I any](fn func(ctx context.Context) I) Effect[I] {
	return func(ctx context.Context) (I, bool) {
		return fn(ctx), true
	}
}
