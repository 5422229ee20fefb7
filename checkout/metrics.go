package checkout

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Intents              *prometheus.CounterVec
	Orders               *prometheus.CounterVec
	Duplicates           prometheus.Counter
	NotificationFailures prometheus.Counter
	GatewayLatency       *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "amexan",
			Subsystem: "checkout",
			Name:      "payment_intents_total",
			Help:      "Payment intent attempts by outcome.",
		}, []string{"outcome"}),
		Orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "amexan",
			Subsystem: "checkout",
			Name:      "orders_total",
			Help:      "Orders written by payment status.",
		}, []string{"payment_status"}),
		Duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "amexan",
			Subsystem: "checkout",
			Name:      "duplicate_submissions_total",
			Help:      "Place-order submissions answered with an existing order.",
		}),
		NotificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "amexan",
			Subsystem: "checkout",
			Name:      "notification_failures_total",
			Help:      "Order notifications that could not be delivered.",
		}),
		GatewayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "amexan",
			Subsystem: "checkout",
			Name:      "gateway_request_duration_ms",
			Help:      "Payment gateway call latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}, []string{"operation"}),
	}

	reg.MustRegister(m.Intents, m.Orders, m.Duplicates, m.NotificationFailures, m.GatewayLatency)
	return m
}
