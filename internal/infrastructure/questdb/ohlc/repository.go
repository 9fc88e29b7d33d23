package ohlc

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/muhammadchandra19/tickpulse/pkg/questdb"
)

// Repository represents the repository for OHLC bars.
type Repository struct {
	client questdb.QuestDBClient
}

// NewRepository creates a new OHLC repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Store stores a single OHLC bar.
func (r *Repository) Store(ctx context.Context, bar *OHLC) error {
	query := `INSERT INTO ohlc (timestamp, symbol, interval, open, high, low, close, volume, trade_count)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	err := r.client.Exec(ctx, query,
		bar.Timestamp, bar.Symbol, bar.Interval, bar.Open, bar.High,
		bar.Low, bar.Close, bar.Volume, bar.TradeCount)

	if err != nil {
		return fmt.Errorf("failed to store ohlc bar: %w", err)
	}

	return nil
}

// StoreBatch stores a batch of OHLC bars via CopyFrom.
func (r *Repository) StoreBatch(ctx context.Context, bars []*OHLC) error {
	if len(bars) == 0 {
		return nil
	}

	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"ohlc"},
		[]string{"timestamp", "symbol", "interval", "open", "high", "low", "close", "volume", "trade_count"},
		pgx.CopyFromSlice(len(bars), func(i int) ([]any, error) {
			bar := bars[i]
			return []any{
				bar.Timestamp,
				bar.Symbol,
				bar.Interval,
				bar.Open,
				bar.High,
				bar.Low,
				bar.Close,
				bar.Volume,
				bar.TradeCount,
			}, nil
		}),
	)

	if err != nil {
		return fmt.Errorf("failed to copy ohlc bars: %w", err)
	}

	return nil
}
