// Package sink provides SignalSink implementations: CSV export, structured
// logging, redis pub/sub, kafka, and a fan-out combinator. The redis and
// kafka sinks hand events to their own goroutine so Publish never blocks the
// consumer thread; the CSV sink buffers in memory until Close; the log sink
// writes through the logger inside Publish.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	marketv1 "github.com/muhammadchandra19/tickpulse/internal/domain/market/v1"
	pkgerrors "github.com/muhammadchandra19/tickpulse/pkg/errors"
	"github.com/muhammadchandra19/tickpulse/pkg/latency"
)

var csvHeader = []string{
	"timestamp", "signal_id", "type", "primary_symbol", "secondary_symbol",
	"signal_strength", "confidence", "latency_us",
}

// CSV accumulates signal events and writes them to a CSV file. Publish only
// appends to memory; the file is written on Close, so the consumer thread
// never touches the filesystem.
type CSV struct {
	path   string
	events []marketv1.SignalEvent
}

// NewCSV creates a CSV sink writing to the given path on Close.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Publish records one event. Consumer goroutine only.
func (s *CSV) Publish(event marketv1.SignalEvent) {
	s.events = append(s.events, event)
}

// Len returns the number of buffered events.
func (s *CSV) Len() int {
	return len(s.events)
}

// Close writes all buffered events to disk.
func (s *CSV) Close() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return pkgerrors.WrapCoded(pkgerrors.SinkWriteError, "create csv directory", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return pkgerrors.WrapCoded(pkgerrors.SinkWriteError, "create "+s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return pkgerrors.WrapCoded(pkgerrors.SinkWriteError, "write csv header", err)
	}

	for _, e := range s.events {
		row := []string{
			e.EventTime.UTC().Format("2006-01-02T15:04:05.000000Z"),
			strconv.FormatUint(e.SignalID, 10),
			e.Type.ShortName(),
			e.PrimarySymbol,
			e.SecondarySymbol,
			strconv.FormatFloat(e.SignalStrength, 'f', 6, 64),
			strconv.FormatFloat(e.Confidence, 'f', 2, 64),
			strconv.FormatInt(e.Latency().Microseconds(), 10),
		}
		if err := w.Write(row); err != nil {
			return pkgerrors.WrapCoded(pkgerrors.SinkWriteError, "write csv row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return pkgerrors.WrapCoded(pkgerrors.SinkCloseError, "flush "+s.path, err)
	}
	return nil
}

// WriteLatencyCSV exports a latency histogram snapshot with columns
// lower_bound_us, upper_bound_us, count, percentage.
func WriteLatencyCSV(hist *latency.Histogram, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return pkgerrors.WrapCoded(pkgerrors.SinkWriteError, "create csv directory", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return pkgerrors.WrapCoded(pkgerrors.SinkWriteError, "create "+path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"lower_bound_us", "upper_bound_us", "count", "percentage"}); err != nil {
		return pkgerrors.WrapCoded(pkgerrors.SinkWriteError, "write csv header", err)
	}

	for _, b := range hist.Snapshot() {
		row := []string{
			strconv.FormatUint(b.LowerBoundUs, 10),
			strconv.FormatUint(b.UpperBoundUs, 10),
			strconv.FormatUint(b.Count, 10),
			fmt.Sprintf("%.2f", b.Percentage),
		}
		if err := w.Write(row); err != nil {
			return pkgerrors.WrapCoded(pkgerrors.SinkWriteError, "write csv row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return pkgerrors.WrapCoded(pkgerrors.SinkCloseError, "flush "+path, err)
	}
	return nil
}
