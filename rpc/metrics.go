package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Metrics instruments the RPC client.
type Metrics struct {
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics creates and registers the client metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asceswap",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Number of RPC requests by method",
		}, []string{"method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asceswap",
			Subsystem: "rpc",
			Name:      "errors_total",
			Help:      "Number of failed RPC requests by method",
		}, []string{"method"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "asceswap",
			Subsystem: "rpc",
			Name:      "request_latency_seconds",
			Help:      "RPC request latency by method",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"method"}),
	}

	reg.MustRegister(m.requests, m.errors, m.latency)
	return m
}

func (m *Metrics) observe(method string, elapsed time.Duration, err error) {
	m.requests.WithLabelValues(method).Inc()
	m.latency.WithLabelValues(method).Observe(elapsed.Seconds())
	if err != nil {
		m.errors.WithLabelValues(method).Inc()
	}
}

// RequestCount reads the current request counter for a method.
func (m *Metrics) RequestCount(method string) float64 {
	return counterValue(m.requests.WithLabelValues(method))
}

// ErrorCount reads the current error counter for a method.
func (m *Metrics) ErrorCount(method string) float64 {
	return counterValue(m.errors.WithLabelValues(method))
}

func counterValue(c prometheus.Counter) float64 {
	metric := &dto.Metric{}
	if err := c.Write(metric); err != nil || metric.Counter == nil {
		return 0
	}
	return metric.Counter.GetValue()
}
