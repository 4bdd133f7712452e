package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gezana",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gezana",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gezana",
			Name:      "bookings_created_total",
			Help:      "Bookings created, by payment method and identity kind.",
		},
		[]string{"payment_method", "identity"},
	)

	paymentsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gezana",
			Name:      "payments_processed_total",
			Help:      "Payment confirmations, by method and outcome.",
		},
		[]string{"method", "outcome"},
	)

	invoicesGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gezana",
			Name:      "invoices_generated_total",
			Help:      "Invoices derived.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, bookingsCreated, paymentsProcessed, invoicesGenerated)
	})
}

func ObserveHTTP(method, path, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func IncBookingCreated(paymentMethod, identity string) {
	bookingsCreated.WithLabelValues(paymentMethod, identity).Inc()
}

func IncPaymentProcessed(method, outcome string) {
	paymentsProcessed.WithLabelValues(method, outcome).Inc()
}

func IncInvoiceGenerated() {
	invoicesGenerated.Inc()
}
