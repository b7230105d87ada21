// Package metrics holds the process counters and gauges exported on /prometheus/.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns its own prometheus.Registry so tests can build isolated instances.
type Registry struct {
	reg *prometheus.Registry

	// RequestCount counts requests by method and endpoint name.
	RequestCount *prometheus.CounterVec
	// RequestDuration observes handler latency.
	RequestDuration prometheus.Histogram
	// ActiveConnections is the number of open push channels.
	ActiveConnections prometheus.Gauge
	CPUUsage          prometheus.Gauge
	MemoryUsage       prometheus.Gauge
}

func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		RequestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "endpoint"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}),
		ActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "active_connections",
			Help: "Number of active connections",
		}),
		CPUUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cpu_usage_percent",
			Help: "CPU usage percentage",
		}),
		MemoryUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memory_usage_percent",
			Help: "Memory usage percentage",
		}),
	}

	r.reg.MustRegister(
		r.RequestCount,
		r.RequestDuration,
		r.ActiveConnections,
		r.CPUUsage,
		r.MemoryUsage,
	)
	return r
}

func (r *Registry) CountRequest(method, endpoint string) {
	r.RequestCount.WithLabelValues(method, endpoint).Inc()
}

// Sample is one cpu/memory reading for the host gauges.
type Sample struct {
	CPUPercent    float64
	MemoryPercent float64
}

// UpdateHostGauges sets the cpu and memory gauges from read. A failed read
// leaves the previous values in place.
func (r *Registry) UpdateHostGauges(ctx context.Context, read func(context.Context) (Sample, error)) {
	s, err := read(ctx)
	if err != nil {
		return
	}
	r.CPUUsage.Set(s.CPUPercent)
	r.MemoryUsage.Set(s.MemoryPercent)
}

// Handler serves the registry in the text exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
