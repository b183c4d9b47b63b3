package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records order pipeline activity.
type OrderMetrics struct {
	transitions       *prometheus.CounterVec
	sideEffectFailure *prometheus.CounterVec
	cancellations     prometheus.Counter
	cascadeDuration   prometheus.Histogram
}

// NewOrderMetrics registers the order pipeline metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions",
		Help: "Committed order status transitions by target status.",
	}, []string{"status"})
	sideEffectFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_side_effect_failures",
		Help: "Side effects that failed after a committed status change.",
	}, []string{"effect"})
	cancellations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_cancellations",
		Help: "Admin order cancellations.",
	})
	cascadeDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "user_cascade_delete_duration_seconds",
		Help:    "Duration of bulk user deletion transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(transitions, sideEffectFailure, cancellations, cascadeDuration)
	return &OrderMetrics{
		transitions:       transitions,
		sideEffectFailure: sideEffectFailure,
		cancellations:     cancellations,
		cascadeDuration:   cascadeDuration,
	}
}

// IncTransition increments the transition counter for the target status.
func (m *OrderMetrics) IncTransition(status string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncSideEffectFailure increments the failure counter for the named effect.
func (m *OrderMetrics) IncSideEffectFailure(effect string) {
	if m == nil || m.sideEffectFailure == nil {
		return
	}
	m.sideEffectFailure.WithLabelValues(normalizeLabel(effect)).Inc()
}

// IncCancellation counts an admin cancellation.
func (m *OrderMetrics) IncCancellation() {
	if m == nil || m.cancellations == nil {
		return
	}
	m.cancellations.Inc()
}

// ObserveCascadeDelete records the duration of a bulk deletion transaction.
func (m *OrderMetrics) ObserveCascadeDelete(duration time.Duration) {
	if m == nil || m.cascadeDuration == nil {
		return
	}
	m.cascadeDuration.Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
