// Package metrics exposes pipeline telemetry over Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	marketv1 "github.com/muhammadchandra19/tickpulse/internal/domain/market/v1"
)

var (
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tickpulse_signals_total", Help: "Signals emitted by type"},
		[]string{"type"},
	)
	TicksProcessed = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "tickpulse_ticks_processed", Help: "Ticks run through the engine"},
	)
	TicksDropped = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "tickpulse_ticks_dropped", Help: "Ticks dropped by the producer on a full queue"},
	)
	QueueFillRatio = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "tickpulse_queue_fill_ratio", Help: "SPSC queue occupancy in [0,1]"},
	)
	ProcessingRate = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "tickpulse_ticks_per_second", Help: "Observed tick processing rate"},
	)
	LatencyMeanUs = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "tickpulse_latency_mean_us", Help: "Mean tick-to-process latency in microseconds"},
	)
	LatencyP99Us = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "tickpulse_latency_p99_us", Help: "p99 tick-to-process latency in microseconds"},
	)
)

func init() {
	prometheus.MustRegister(
		SignalsTotal, TicksProcessed, TicksDropped,
		QueueFillRatio, ProcessingRate, LatencyMeanUs, LatencyP99Us,
	)
}

// Serve starts the /metrics endpoint on addr.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}

// Sink counts emitted signals by type. Chain it into the sink fan-out.
type Sink struct{}

// NewSink creates a metrics sink.
func NewSink() *Sink {
	return &Sink{}
}

// Publish increments the per-type signal counter.
func (s *Sink) Publish(event marketv1.SignalEvent) {
	SignalsTotal.WithLabelValues(string(event.Type)).Inc()
}
