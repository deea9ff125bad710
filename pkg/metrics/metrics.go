package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records cart, checkout and facts activity.
type StorefrontMetrics struct {
	cartMutations      *prometheus.CounterVec
	checkoutCompleted  prometheus.Counter
	checkoutDuration   prometheus.Histogram
	factsRequests      *prometheus.CounterVec
	savedSessionEvents *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart store mutations by operation.",
	}, []string{"op"})
	checkoutCompleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_completed_total",
		Help: "Orders that reached the confirmation step.",
	})
	checkoutDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_processing_seconds",
		Help:    "Duration of the simulated payment processing step.",
		Buckets: prometheus.DefBuckets,
	})
	factsRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "facts_requests_total",
		Help: "Facts fetches by resulting data source.",
	}, []string{"source"})
	savedSessionEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_session_events_total",
		Help: "Saved checkout session lifecycle events.",
	}, []string{"event"})
	reg.MustRegister(cartMutations, checkoutCompleted, checkoutDuration, factsRequests, savedSessionEvents)
	return &StorefrontMetrics{
		cartMutations:      cartMutations,
		checkoutCompleted:  checkoutCompleted,
		checkoutDuration:   checkoutDuration,
		factsRequests:      factsRequests,
		savedSessionEvents: savedSessionEvents,
	}
}

// IncCartMutation counts one cart store mutation.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCheckoutCompleted counts a confirmed order.
func (m *StorefrontMetrics) IncCheckoutCompleted() {
	if m == nil || m.checkoutCompleted == nil {
		return
	}
	m.checkoutCompleted.Inc()
}

// ObserveCheckoutProcessing records the simulated processing duration.
func (m *StorefrontMetrics) ObserveCheckoutProcessing(duration time.Duration) {
	if m == nil || m.checkoutDuration == nil {
		return
	}
	m.checkoutDuration.Observe(duration.Seconds())
}

// IncFactsRequest counts a facts fetch by the source it resolved to.
func (m *StorefrontMetrics) IncFactsRequest(source string) {
	if m == nil || m.factsRequests == nil {
		return
	}
	m.factsRequests.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncSessionEvent counts a saved-checkout lifecycle event (saved, resumed,
// dismissed, expired).
func (m *StorefrontMetrics) IncSessionEvent(event string) {
	if m == nil || m.savedSessionEvents == nil {
		return
	}
	m.savedSessionEvents.WithLabelValues(normalizeLabel(event)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
