package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds process-level Prometheus metrics.
type Metrics struct {
	CustomersRegistered prometheus.Counter
	HTTPRequests        *prometheus.CounterVec
}

// New creates and registers all process-level metrics.
func New() *Metrics {
	return &Metrics{
		CustomersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "riskgate_customers_registered_total",
			Help: "Total number of customers registered through intake",
		}),
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "riskgate_http_requests_total",
			Help: "HTTP requests by route and status",
		}, []string{"route", "status"}),
	}
}

// IncrementCustomersRegistered increments the intake counter by 1. Safe on
// a nil receiver so tests can run without a registry.
func (m *Metrics) IncrementCustomersRegistered() {
	if m == nil {
		return
	}
	m.CustomersRegistered.Inc()
}

// IncrementHTTPRequests records one served request.
func (m *Metrics) IncrementHTTPRequests(route, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, status).Inc()
}
