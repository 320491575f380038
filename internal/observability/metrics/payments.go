package metrics

import "github.com/bkndhn/bazaar-api/internal/observability/statsd"

// PaymentMetrics emits counters for payment bridge outcomes. A nil receiver
// or nil sink drops everything.
type PaymentMetrics struct {
	sink statsd.Sink
}

// NewPaymentMetrics wraps a sink; sink may be nil.
func NewPaymentMetrics(sink statsd.Sink) *PaymentMetrics {
	return &PaymentMetrics{sink: sink}
}

// OrderCreated records a provider-side order successfully opened.
func (m *PaymentMetrics) OrderCreated(currency string) {
	if m == nil || m.sink == nil {
		return
	}
	m.sink.Count("payment.order_created", 1, map[string]string{"currency": currency})
}

// Verified records a signature verification outcome.
func (m *PaymentMetrics) Verified(ok bool) {
	if m == nil || m.sink == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "rejected"
	}
	m.sink.Count("payment.verified", 1, map[string]string{"result": result})
}
