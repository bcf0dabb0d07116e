package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records cart activity and order submissions.
type OrderMetrics struct {
	cartMutations   *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	submitDuration  *prometheus.HistogramVec
	submissionTotal *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submissions",
		Help: "Order submissions by outcome.",
	}, []string{"outcome"})
	submitDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_submit_duration_seconds",
		Help:    "Duration of order submission handling in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	submissionTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submission_cents",
		Help: "Accumulated order totals in cents.",
	}, []string{"establishment"})
	reg.MustRegister(cartMutations, submissions, submitDuration, submissionTotal)
	return &OrderMetrics{
		cartMutations:   cartMutations,
		submissions:     submissions,
		submitDuration:  submitDuration,
		submissionTotal: submissionTotal,
	}
}

// IncCartMutation increments the mutation counter for the named operation.
func (o *OrderMetrics) IncCartMutation(op string) {
	if o == nil || o.cartMutations == nil {
		return
	}
	o.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncSubmission increments the submission counter for the outcome.
func (o *OrderMetrics) IncSubmission(outcome string) {
	if o == nil || o.submissions == nil {
		return
	}
	o.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveSubmitDuration records the submission handling duration.
func (o *OrderMetrics) ObserveSubmitDuration(outcome string, duration time.Duration) {
	if o == nil || o.submitDuration == nil {
		return
	}
	o.submitDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// AddSubmissionTotal accumulates the submitted order total for an establishment.
func (o *OrderMetrics) AddSubmissionTotal(establishment string, cents int64) {
	if o == nil || o.submissionTotal == nil || cents <= 0 {
		return
	}
	o.submissionTotal.WithLabelValues(normalizeLabel(establishment)).Add(float64(cents))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
