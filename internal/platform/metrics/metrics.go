package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the registration engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registrations   *prometheus.CounterVec
	Reconciliations *prometheus.CounterVec
	Transitions     *prometheus.CounterVec
	EffectFailures  *prometheus.CounterVec
	GatewayLatency  *prometheus.HistogramVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_attempts_total",
			Help: "Registration attempts by outcome",
		}, []string{"outcome"}),

		Reconciliations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_reconciliations_total",
			Help: "Payment reconciliations by outcome",
		}, []string{"outcome"}),

		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_transitions_total",
			Help: "Committed registration status transitions",
		}, []string{"from", "to"}),

		EffectFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_effect_failures_total",
			Help: "Side effects that failed after a committed change",
		}, []string{"effect"}),

		GatewayLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "payment_gateway_request_duration_seconds",
			Help:    "Duration of payment provider calls by operation and result",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation", "result"}),
	}
}

func (m *Metrics) IncRegistration(outcome string) {
	if m != nil {
		m.Registrations.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncReconciliation(outcome string) {
	if m != nil {
		m.Reconciliations.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncTransition(from, to string) {
	if m != nil {
		m.Transitions.WithLabelValues(from, to).Inc()
	}
}

func (m *Metrics) IncEffectFailure(effect string) {
	if m != nil {
		m.EffectFailures.WithLabelValues(effect).Inc()
	}
}

// ObserveGateway records the duration of a payment provider call.
func (m *Metrics) ObserveGateway(operation, result string, d time.Duration) {
	if m != nil {
		m.GatewayLatency.WithLabelValues(operation, result).Observe(d.Seconds())
	}
}
