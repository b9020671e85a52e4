package store

import (
	"errors"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

type MetricsSnapshot struct {
	Dispatched int64
	Committed  int64
	Skipped    int64
	Dropped    int64
	Violations int64
	Effects    int64
}

// Metrics counts store activity. When a prometheus.Registerer is supplied the
// same counts are exported, labelled by store name.
type Metrics struct {
	dispatched atomic.Int64
	committed  atomic.Int64
	skipped    atomic.Int64
	dropped    atomic.Int64
	violations atomic.Int64
	effects    atomic.Int64

	intents *prometheus.CounterVec
	effect  *prometheus.CounterVec
	name    string
}

func NewMetrics(name string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{name: name}
	if reg == nil {
		return m
	}

	m.intents = registerCounterVec(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weatherapp",
			Subsystem: "store",
			Name:      "intents_total",
			Help:      "Intents handled by a state store, by outcome.",
		},
		[]string{"store", "outcome"},
	))
	m.effect = registerCounterVec(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weatherapp",
			Subsystem: "store",
			Name:      "effects_total",
			Help:      "Side effects started by a state store.",
		},
		[]string{"store"},
	))
	return m
}

// registerCounterVec returns the collector already registered under the same
// descriptor, so several stores can share one registry.
func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
		return nil
	}
	return vec
}

func (m *Metrics) record(counter *atomic.Int64, outcome string) {
	counter.Add(1)
	if m.intents != nil {
		m.intents.WithLabelValues(m.name, outcome).Inc()
	}
}

func (m *Metrics) RecordDispatched() { m.record(&m.dispatched, "dispatched") }
func (m *Metrics) RecordCommitted()  { m.record(&m.committed, "committed") }
func (m *Metrics) RecordSkipped()    { m.record(&m.skipped, "skipped") }
func (m *Metrics) RecordDropped()    { m.record(&m.dropped, "dropped") }
func (m *Metrics) RecordViolation()  { m.record(&m.violations, "violation") }

func (m *Metrics) RecordEffect() {
	m.effects.Add(1)
	if m.effect != nil {
		m.effect.WithLabelValues(m.name).Inc()
	}
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Dispatched: m.dispatched.Load(),
		Committed:  m.committed.Load(),
		Skipped:    m.skipped.Load(),
		Dropped:    m.dropped.Load(),
		Violations: m.violations.Load(),
		Effects:    m.effects.Load(),
	}
}
