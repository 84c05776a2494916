// Package metrics exposes Prometheus instrumentation for card operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels recorded for each card operation.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Operation labels.
const (
	OpCreate = "create"
	OpFetch  = "fetch"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Metrics tracks card lifecycle operations.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	CardsCreated         prometheus.Counter
	CardNumberCollisions prometheus.Counter
	Operations           *prometheus.CounterVec
	OperationDuration    *prometheus.HistogramVec
}

// New creates a Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CardsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "cards_created_total",
			Help: "Total number of cards issued",
		}),
		CardNumberCollisions: factory.NewCounter(prometheus.CounterOpts{
			Name: "cards_card_number_collisions_total",
			Help: "Generated card numbers discarded because they were already in use",
		}),
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cards_operations_total",
			Help: "Card operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cards_operation_duration_seconds",
			Help:    "Duration of card operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// IncrementCardsCreated records a successfully issued card.
func (m *Metrics) IncrementCardsCreated() {
	if m == nil {
		return
	}
	m.CardsCreated.Inc()
}

// IncrementCardNumberCollisions records a discarded card number candidate.
func (m *Metrics) IncrementCardNumberCollisions() {
	if m == nil {
		return
	}
	m.CardNumberCollisions.Inc()
}

// ObserveOperation records the outcome and duration of an operation.
// Call with time.Now() taken at the start of the operation.
func (m *Metrics) ObserveOperation(operation, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
