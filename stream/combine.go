package stream

import "context"

// Triple is one combined emission of CombineLatest3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// CombineLatest3 joins three sequences. Nothing is emitted until every input
// has produced at least one value; afterwards each input update emits the
// newest value of all three. Values already waiting on the inputs are drained
// before emitting, so a burst of updates collapses into one emission that
// carries the latest combination.
//
// The output closes when ctx ends or all three inputs are closed.
func CombineLatest3[A, B, C any](ctx context.Context, a <-chan A, b <-chan B, c <-chan C) <-chan Triple[A, B, C] {
	out := make(chan Triple[A, B, C])

	go func() {
		defer close(out)

		var (
			latest           Triple[A, B, C]
			hasA, hasB, hasC bool
		)

		// receive applies at most one value from the inputs. block selects
		// whether to wait for one.
		receive := func(block bool) (got bool, alive bool) {
			if block {
				if a == nil && b == nil && c == nil {
					return false, false
				}
				select {
				case v, ok := <-a:
					if !ok {
						a = nil
						return false, true
					}
					latest.First, hasA = v, true
				case v, ok := <-b:
					if !ok {
						b = nil
						return false, true
					}
					latest.Second, hasB = v, true
				case v, ok := <-c:
					if !ok {
						c = nil
						return false, true
					}
					latest.Third, hasC = v, true
				case <-ctx.Done():
					return false, false
				}
				return true, true
			}

			select {
			case v, ok := <-a:
				if !ok {
					a = nil
					return false, true
				}
				latest.First, hasA = v, true
			case v, ok := <-b:
				if !ok {
					b = nil
					return false, true
				}
				latest.Second, hasB = v, true
			case v, ok := <-c:
				if !ok {
					c = nil
					return false, true
				}
				latest.Third, hasC = v, true
			default:
				return false, true
			}
			return true, true
		}

		for {
			got, alive := receive(true)
			if !alive {
				return
			}
			if !got {
				continue
			}

			for {
				more, alive := receive(false)
				if !alive {
					return
				}
				if !more && !channelsReady(a, b, c) {
					break
				}
			}

			if !(hasA && hasB && hasC) {
				continue
			}

			select {
			case out <- latest:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// channelsReady reports whether any input has a value buffered.
func channelsReady[A, B, C any](a <-chan A, b <-chan B, c <-chan C) bool {
	return len(a) > 0 || len(b) > 0 || len(c) > 0
}
