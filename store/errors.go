package store

import "errors"

var (
	// ErrPrecondition marks an intent dispatched in a state that cannot
	// accept it. Reducers wrap it to describe the violated condition.
	ErrPrecondition = errors.New("precondition violated")

	// ErrUnknownIntent is reported when a reducer receives an intent
	// variant it does not handle.
	ErrUnknownIntent = errors.New("unknown intent")

	// ErrShutdown is returned by Shutdown when the loop does not stop in time.
	ErrShutdown = errors.New("store shutdown timed out")
)
