package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns an isolated Prometheus registry, the collectors fed by
// ObserveOperation and the HTTP server exposing them.
type Metrics struct {
	// Server serves the registry at /metrics. It is started by the fx
	// lifecycle, or by the caller when used directly.
	Server *http.Server

	// Registry holds every collector of this instance. Each Metrics has its
	// own registry so several instances can live in one process.
	Registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	compiledSchemas   *prometheus.CounterVec
}

// NewMetrics builds the registry, registers the operation collectors (and
// the default collectors when enabled) and prepares the HTTP server.
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "brokerlens"})
//	registry.WithObserver(m)
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// Every metric of this instance carries service="<cfg.ServiceName>".
	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{Registry: registry}
	m.operationsTotal = createCounterVec("operations_total",
		"Operations reported by brokerlens components, by outcome.",
		[]string{"component", "operation", "status"})
	m.operationDuration = createHistogramVec("operation_duration_seconds",
		"Duration of operations reported by brokerlens components.",
		[]string{"component", "operation"}, prometheus.DefBuckets)
	m.compiledSchemas = createCounterVec("compiled_schemas_total",
		"Decoder files compiled, by outcome.",
		[]string{"outcome"})

	wrapped.MustRegister(m.operationsTotal, m.operationDuration, m.compiledSchemas)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	addr := cfg.Address
	if addr == "" {
		addr = DefaultMetricsAddress
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	m.Server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return m
}

func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}
