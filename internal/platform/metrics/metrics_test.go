package metrics_test

import (
	"testing"
	"time"

	"github.com/phrazzld/cards-api/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.IncrementCardsCreated()
	m.IncrementCardsCreated()
	m.IncrementCardNumberCollisions()
	m.ObserveOperation(metrics.OpCreate, metrics.OutcomeSuccess, time.Now())
	m.ObserveOperation(metrics.OpFetch, metrics.OutcomeNotFound, time.Now())
	m.ObserveOperation(metrics.OpFetch, metrics.OutcomeNotFound, time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CardsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CardNumberCollisions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(metrics.OpCreate, metrics.OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues(metrics.OpFetch, metrics.OutcomeNotFound)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.OperationDuration))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "cards_created_total")
	assert.Contains(t, names, "cards_operation_duration_seconds")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.IncrementCardsCreated()
		m.IncrementCardNumberCollisions()
		m.ObserveOperation(metrics.OpDelete, metrics.OutcomeError, time.Now())
	})
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	assert.Panics(t, func() { metrics.New(reg) })
}
