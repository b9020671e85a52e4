package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/belinwu/WeatherApp/observability"
	"github.com/belinwu/WeatherApp/stream"
)

// Store owns one state value. Intents are queued by Dispatch and applied one
// at a time, in arrival order, by a single loop goroutine; the reducer always
// sees the state committed by the previous intent.
type Store[S, I any] struct {
	id   string
	name string

	reduce  Reducer[S, I]
	state   *stream.Cell[S]
	mailbox *stream.Queue[I]

	logger      *slog.Logger
	observer    observability.Observer
	onViolation func(error)
	metrics     *Metrics

	effects pending

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New starts a store holding initial. The store runs until ctx ends or
// Shutdown is called.
func New[S, I any](ctx context.Context, storeConfig Config, initial S, reduce Reducer[S, I]) *Store[S, I] {
	cfg := DefaultConfig()
	cfg.Merge(&storeConfig)

	storeCtx, cancel := context.WithCancel(ctx)

	s := &Store[S, I]{
		id:       uuid.Must(uuid.NewV7()).String(),
		name:     cfg.Name,
		reduce:   reduce,
		state:    stream.NewCell(initial),
		mailbox:  stream.NewQueue[I](),
		logger:   cfg.Logger,
		observer: cfg.EventObserver(),
		metrics:  NewMetrics(cfg.Name, cfg.Registerer),
		ctx:      storeCtx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	s.effects.cond = sync.NewCond(&s.effects.mu)

	s.onViolation = cfg.OnViolation
	if s.onViolation == nil {
		s.onViolation = func(err error) {
			s.logger.ErrorContext(
				s.ctx,
				"intent rejected",
				slog.String("store", s.name),
				slog.String("error", err.Error()),
			)
		}
	}

	go s.loop()

	return s
}

func (s *Store[S, I]) ID() string   { return s.id }
func (s *Store[S, I]) Name() string { return s.name }

// State returns the latest committed state.
func (s *Store[S, I]) State() S {
	return s.state.Value()
}

// Subscribe returns the current state followed by every later commit. The
// channel closes when ctx ends or the store shuts down.
func (s *Store[S, I]) Subscribe(ctx context.Context) <-chan S {
	return s.state.Subscribe(ctx)
}

// Dispatch queues intent and returns immediately. Intents dispatched after
// shutdown are dropped.
func (s *Store[S, I]) Dispatch(intent I) {
	if s.ctx.Err() != nil || !s.mailbox.Push(intent) {
		s.metrics.RecordDropped()
		s.emit(EventDrop, observability.LevelVerbose, map[string]any{
			"intent": intentName(intent),
		})
		return
	}

	s.metrics.RecordDispatched()
	s.emit(EventDispatch, observability.LevelVerbose, map[string]any{
		"intent": intentName(intent),
	})
}

func (s *Store[S, I]) Metrics() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// Shutdown stops the loop and ends every subscription. Queued intents are
// discarded. Running effects are left to finish; their follow-up intents are
// dropped.
func (s *Store[S, I]) Shutdown(timeout time.Duration) error {
	s.logger.DebugContext(
		s.ctx,
		"shutting down store",
		slog.String("store", s.name),
	)
	s.cancel()

	select {
	case <-s.done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("%w after %v", ErrShutdown, timeout)
	}
}

// Wait blocks until no effect is running. Effects of a commit are counted
// before the commit is published, so a caller that has observed a state can
// Wait for the effects it triggered.
func (s *Store[S, I]) Wait() {
	s.effects.wait()
}

func (s *Store[S, I]) loop() {
	defer close(s.done)
	defer s.state.Close()
	defer s.mailbox.Close()

	for {
		intent, err := s.mailbox.Receive(s.ctx)
		if err != nil {
			return
		}
		s.apply(intent)
	}
}

func (s *Store[S, I]) apply(intent I) {
	t := s.reduce(s.state.Value(), intent)

	effects := make([]Effect[I], 0, len(t.Effects))
	for _, e := range t.Effects {
		if e != nil {
			effects = append(effects, e)
		}
	}

	if t.Err != nil {
		s.metrics.RecordViolation()
		s.emit(EventViolation, observability.LevelWarning, map[string]any{
			"intent": intentName(intent),
			"error":  t.Err.Error(),
		})
		s.onViolation(t.Err)
		return
	}

	s.effects.add(len(effects))

	if t.Commit {
		s.state.Set(t.State)
		s.metrics.RecordCommitted()
		s.emit(EventCommit, observability.LevelVerbose, map[string]any{
			"intent": intentName(intent),
			"state":  fmt.Sprint(t.State),
		})
	} else {
		s.metrics.RecordSkipped()
		s.emit(EventSkip, observability.LevelVerbose, map[string]any{
			"intent": intentName(intent),
		})
	}

	for _, effect := range effects {
		s.start(intent, effect)
	}
}

// start runs effect in its own goroutine. The caller has already counted it
// in s.effects.
func (s *Store[S, I]) start(cause I, effect Effect[I]) {
	s.metrics.RecordEffect()
	s.emit(EventEffect, observability.LevelVerbose, map[string]any{
		"intent": intentName(cause),
	})

	ctx := context.WithoutCancel(s.ctx)
	go func() {
		defer s.effects.done()
		if next, ok := effect(ctx); ok {
			s.Dispatch(next)
		}
	}()
}

func (s *Store[S, I]) emit(eventType observability.EventType, level observability.Level, data map[string]any) {
	s.observer.OnEvent(s.ctx, observability.NewEvent(eventType, level, s.name, data))
}

// IsViolation reports whether err describes a rejected intent.
func IsViolation(err error) bool {
	return errors.Is(err, ErrPrecondition) || errors.Is(err, ErrUnknownIntent)
}

func intentName(intent any) string {
	if s, ok := intent.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", intent)
}

// pending counts running effects. Unlike sync.WaitGroup it may be waited on
// while new work is being added.
type pending struct {
	mu   sync.Mutex
	cond *sync.Cond
	n    int
}

func (p *pending) add(n int) {
	if n == 0 {
		return
	}
	p.mu.Lock()
	p.n += n
	p.mu.Unlock()
}

func (p *pending) done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n--
	if p.n == 0 {
		p.cond.Broadcast()
	}
}

func (p *pending) wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.n > 0 {
		p.cond.Wait()
	}
}
