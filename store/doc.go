// Package store implements the single-writer state container behind each
// screen.
//
// A Store holds one state value and a FIFO mailbox of intents. Dispatch only
// enqueues; one loop goroutine pops intents, runs the pure Reducer against
// the state as it is at that moment, commits at most one new state, then
// starts the transition's effects. Effects run detached from the caller and
// may feed a follow-up intent back through Dispatch.
//
//	s := store.New(ctx, store.Config{Name: "main"}, Loading{}, reduce)
//	s.Dispatch(GrantPermission{Granted: true})
//	for state := range s.Subscribe(ctx) {
//	    render(state)
//	}
//
// A reducer that cannot accept an intent in the current state returns a
// Violation wrapping ErrPrecondition. The store reports it through
// Config.OnViolation, the metrics and the observer; nothing is returned to
// the dispatcher.
package store
