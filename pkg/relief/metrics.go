package relief

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess           = "success"
	outcomeInvalidCredential = "invalid_credential"
	outcomeSubmissionError   = "submission_error"
	outcomeAccountNotFound   = "account_not_found"
	outcomeQueryError        = "query_error"
)

// Metrics counts relief operations by outcome and records their latency.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics registers the relief collectors on registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	metrics := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relief",
			Name:      "operations_total",
			Help:      "Relief center operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "relief",
			Name:      "operation_duration_seconds",
			Help:      "Wall time of relief center operations, including finality waits.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"operation"}),
	}

	for _, collector := range []prometheus.Collector{metrics.operations, metrics.duration} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return metrics, nil
}

func (m *Metrics) observe(operation string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcomeOf(err)).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, ErrInvalidCredential):
		return outcomeInvalidCredential
	case errors.Is(err, ErrAccountNotFound):
		return outcomeAccountNotFound
	case errors.Is(err, ErrQuery):
		return outcomeQueryError
	default:
		return outcomeSubmissionError
	}
}
