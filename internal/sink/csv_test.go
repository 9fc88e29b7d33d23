package sink

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	marketv1 "github.com/muhammadchandra19/tickpulse/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickpulse/pkg/latency"
)

func testEvent(id uint64, signalType marketv1.SignalType) marketv1.SignalEvent {
	eventTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return marketv1.SignalEvent{
		Type:           signalType,
		PrimarySymbol:  "AAPL",
		SignalStrength: 3.14,
		Confidence:     0.95,
		EventTime:      eventTime,
		GenerationTime: eventTime.Add(42 * time.Microsecond),
		SignalID:       id,
	}
}

func TestCSV_WritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.csv")
	s := NewCSV(path)

	s.Publish(testEvent(1, marketv1.SignalZScoreBreak))
	pair := testEvent(2, marketv1.SignalCorrelationBreak)
	pair.SecondarySymbol = "MSFT"
	s.Publish(pair)

	require.Equal(t, 2, s.Len())
	require.NoError(t, s.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"timestamp", "signal_id", "type", "primary_symbol", "secondary_symbol",
		"signal_strength", "confidence", "latency_us",
	}, rows[0])

	assert.Equal(t, "1", rows[1][1])
	assert.Equal(t, "ZBreak", rows[1][2])
	assert.Equal(t, "AAPL", rows[1][3])
	assert.Equal(t, "", rows[1][4])
	assert.Equal(t, "3.140000", rows[1][5])
	assert.Equal(t, "0.95", rows[1][6])
	assert.Equal(t, "42", rows[1][7])

	assert.Equal(t, "CorrBreak", rows[2][2])
	assert.Equal(t, "MSFT", rows[2][4])
}

func TestCSV_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "signals.csv")
	s := NewCSV(path)
	s.Publish(testEvent(1, marketv1.SignalVolumeSpike))

	require.NoError(t, s.Close())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteLatencyCSV(t *testing.T) {
	hist := latency.New()
	for _, us := range []uint64{10, 75, 300, 1500} {
		hist.AddSampleUs(us)
	}

	path := filepath.Join(t.TempDir(), "latency.csv")
	require.NoError(t, WriteLatencyCSV(hist, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, latency.NumBuckets+1)

	assert.Equal(t, []string{"lower_bound_us", "upper_bound_us", "count", "percentage"}, rows[0])
	// First bucket [0,50) holds exactly one of the four samples.
	assert.Equal(t, []string{"0", "50", "1", "25.00"}, rows[1])
}
