package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tickpulse", cfg.App.Name)
	assert.Equal(t, 65536, cfg.Queue.Size)
	assert.Equal(t, 2.5, cfg.Engine.ZScoreThreshold)
	assert.Equal(t, 50, cfg.Engine.CorrelationMinObs)
	assert.Equal(t, "gbm", cfg.Feed.Model)
	assert.Equal(t, []string{"AAPL", "MSFT", "GOOG", "AMZN"}, cfg.Feed.Symbols)
	assert.False(t, cfg.Sink.EnableQuestDB)
	assert.Equal(t, "1s", cfg.Archive.OHLCInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("QUEUE_SIZE", "1024")
	t.Setenv("ENGINE_ZSCORE_THRESHOLD", "3.5")
	t.Setenv("FEED_SYMBOLS", "BTC,ETH")
	t.Setenv("ENGINE_WATCHED_PAIRS", "BTC:ETH")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Queue.Size)
	assert.Equal(t, 3.5, cfg.Engine.ZScoreThreshold)
	assert.Equal(t, []string{"BTC", "ETH"}, cfg.Feed.Symbols)

	pairs, err := cfg.Engine.ParsedPairs()
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, [2]string{"BTC", "ETH"}, pairs[0])
}

func TestEngineConfig_ParsedPairs(t *testing.T) {
	testCases := []struct {
		name    string
		pairs   []string
		want    int
		wantErr bool
	}{
		{name: "empty", pairs: nil, want: 0},
		{name: "single", pairs: []string{"AAPL:MSFT"}, want: 1},
		{name: "multiple", pairs: []string{"AAPL:MSFT", "GOOG:AMZN"}, want: 2},
		{name: "blank entry skipped", pairs: []string{""}, want: 0},
		{name: "missing separator", pairs: []string{"AAPLMSFT"}, wantErr: true},
		{name: "empty side", pairs: []string{"AAPL:"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := EngineConfig{WatchedPairs: tc.pairs}
			got, err := cfg.ParsedPairs()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tc.want)
		})
	}
}
