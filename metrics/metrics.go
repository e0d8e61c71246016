// Package metrics exposes Prometheus counters and histograms for route
// latency and outcome, registered per family so dashboards can break down
// traffic by timeline (blocks, transactions, mosaics, ...).
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors registered against a single registry.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	pageSize        *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
}

// New creates and registers chainview's collectors against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chainview",
			Name:      "requests_total",
			Help:      "Total timeline query requests by family and status code.",
		}, []string{"family", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chainview",
			Name:      "request_duration_seconds",
			Help:      "Request handling latency by family.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"family"}),
		pageSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chainview",
			Name:      "page_size",
			Help:      "Number of records returned per page by family.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100},
		}, []string{"family"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chainview",
			Name:      "store_errors_total",
			Help:      "Store collaborator errors by operation.",
		}, []string{"operation"}),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.pageSize, m.storeErrors)
	return m
}

// ObserveRequest records one completed request's outcome and latency.
func (m *Metrics) ObserveRequest(family string, status int, d time.Duration) {
	m.requestsTotal.WithLabelValues(family, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(family).Observe(d.Seconds())
}

// ObservePageSize records how many records a resolved page contained.
func (m *Metrics) ObservePageSize(family string, n int) {
	m.pageSize.WithLabelValues(family).Observe(float64(n))
}

// IncStoreError records a failed store operation.
func (m *Metrics) IncStoreError(operation string) {
	m.storeErrors.WithLabelValues(operation).Inc()
}
