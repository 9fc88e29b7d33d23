// Package dashboard renders a periodic terminal status line for demo runs.
package dashboard

import (
	"fmt"
	"io"

	"github.com/muhammadchandra19/tickpulse/pkg/latency"
)

// Stats is the telemetry snapshot one refresh renders.
type Stats struct {
	TicksProcessed   uint64
	SignalsGenerated uint64
	TicksGenerated   uint64
	TicksDropped     uint64
	QueueFillRatio   float64
	Histogram        *latency.Histogram
}

// Dashboard writes periodic status output.
type Dashboard struct {
	w io.Writer
}

// New creates a dashboard writing to w.
func New(w io.Writer) *Dashboard {
	return &Dashboard{w: w}
}

// Render writes one status block.
func (d *Dashboard) Render(stats Stats) {
	fmt.Fprintf(d.w,
		"ticks=%d signals=%d generated=%d dropped=%d queue=%.1f%% rate=%.0f/s lat(mean/p50/p95/p99)=%.1f/%.1f/%.1f/%.1fus\n",
		stats.TicksProcessed,
		stats.SignalsGenerated,
		stats.TicksGenerated,
		stats.TicksDropped,
		stats.QueueFillRatio*100,
		stats.Histogram.SamplesPerSecond(),
		stats.Histogram.MeanUs(),
		stats.Histogram.P50Us(),
		stats.Histogram.P95Us(),
		stats.Histogram.P99Us(),
	)
}

// RenderHistogram writes the full latency histogram table.
func (d *Dashboard) RenderHistogram(hist *latency.Histogram) {
	fmt.Fprintf(d.w, "Latency Histogram (total samples: %d)\n", hist.TotalSamples())
	fmt.Fprintf(d.w, "%-15s | %-8s | %s\n", "Range (us)", "Count", "Percentage")

	for _, b := range hist.Snapshot() {
		fmt.Fprintf(d.w, "%6d-%-8d | %8d | %6.2f%%\n",
			b.LowerBoundUs, b.UpperBoundUs, b.Count, b.Percentage)
	}

	fmt.Fprintf(d.w, "mean=%.1fus min=%dus max=%dus p50=%.1fus p95=%.1fus p99=%.1fus rate=%.0f/s\n",
		hist.MeanUs(), hist.MinUs(), hist.MaxUs(),
		hist.P50Us(), hist.P95Us(), hist.P99Us(), hist.SamplesPerSecond())
}
