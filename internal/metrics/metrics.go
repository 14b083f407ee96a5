package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CheckoutMetrics counts checkout lifecycle outcomes. A nil receiver is a
// no-op so services under test don't need a registry.
type CheckoutMetrics struct {
	GatewayOrders    prometheus.Counter
	PaymentsVerified prometheus.Counter
	PaymentsRejected prometheus.Counter
	OrphanedPayments prometheus.Counter
}

func NewCheckoutMetrics() *CheckoutMetrics {
	m := &CheckoutMetrics{
		GatewayOrders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "checkout",
			Name:      "gateway_orders_total",
			Help:      "Total number of gateway orders created.",
		}),
		PaymentsVerified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "checkout",
			Name:      "payments_verified_total",
			Help:      "Total number of payments that passed signature verification.",
		}),
		PaymentsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "checkout",
			Name:      "payments_rejected_total",
			Help:      "Total number of payments rejected as forged or malformed.",
		}),
		OrphanedPayments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "checkout",
			Name:      "orphaned_payments_total",
			Help:      "Payments captured by the gateway whose order write failed.",
		}),
	}

	prometheus.MustRegister(m.GatewayOrders, m.PaymentsVerified, m.PaymentsRejected, m.OrphanedPayments)
	return m
}

func (m *CheckoutMetrics) IncGatewayOrders() {
	if m != nil {
		m.GatewayOrders.Inc()
	}
}

func (m *CheckoutMetrics) IncPaymentsVerified() {
	if m != nil {
		m.PaymentsVerified.Inc()
	}
}

func (m *CheckoutMetrics) IncPaymentsRejected() {
	if m != nil {
		m.PaymentsRejected.Inc()
	}
}

func (m *CheckoutMetrics) IncOrphanedPayments() {
	if m != nil {
		m.OrphanedPayments.Inc()
	}
}

// Handler exposes the default registry for the /metrics route
func Handler() http.Handler {
	return promhttp.Handler()
}
