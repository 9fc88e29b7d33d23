package signal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/muhammadchandra19/tickpulse/pkg/questdb"
)

// Repository represents the repository for archived signal events.
type Repository struct {
	client questdb.QuestDBClient
}

// NewRepository creates a new signal repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Store stores a single signal event.
func (r *Repository) Store(ctx context.Context, sig *Signal) error {
	query := `INSERT INTO signals (timestamp, signal_id, type, primary_symbol, secondary_symbol, strength, confidence, latency_us)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	err := r.client.Exec(ctx, query,
		sig.Timestamp, sig.SignalID, sig.Type, sig.PrimarySymbol,
		sig.SecondarySymbol, sig.Strength, sig.Confidence, sig.LatencyUs)

	if err != nil {
		return fmt.Errorf("failed to store signal: %w", err)
	}

	return nil
}

// StoreBatch stores a batch of signal events via CopyFrom.
func (r *Repository) StoreBatch(ctx context.Context, signals []*Signal) error {
	if len(signals) == 0 {
		return nil
	}

	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"signals"},
		[]string{"timestamp", "signal_id", "type", "primary_symbol", "secondary_symbol", "strength", "confidence", "latency_us"},
		pgx.CopyFromSlice(len(signals), func(i int) ([]any, error) {
			sig := signals[i]
			return []any{
				sig.Timestamp,
				sig.SignalID,
				sig.Type,
				sig.PrimarySymbol,
				sig.SecondarySymbol,
				sig.Strength,
				sig.Confidence,
				sig.LatencyUs,
			}, nil
		}),
	)

	if err != nil {
		return fmt.Errorf("failed to copy signals: %w", err)
	}

	return nil
}

// GetByFilter retrieves archived signals by filter.
func (r *Repository) GetByFilter(ctx context.Context, filter Filter) ([]*Signal, error) {
	query := "SELECT timestamp, signal_id, type, primary_symbol, secondary_symbol, strength, confidence, latency_us FROM signals WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.PrimarySymbol != "" {
		query += fmt.Sprintf(" AND primary_symbol = $%d", argIndex)
		args = append(args, filter.PrimarySymbol)
		argIndex++
	}

	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argIndex)
		args = append(args, filter.Type)
		argIndex++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	query += " ORDER BY timestamp"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query signals: %w", err)
	}
	defer rows.Close()

	var signals []*Signal
	for rows.Next() {
		sig := &Signal{}
		if err := rows.Scan(&sig.Timestamp, &sig.SignalID, &sig.Type, &sig.PrimarySymbol,
			&sig.SecondarySymbol, &sig.Strength, &sig.Confidence, &sig.LatencyUs); err != nil {
			return nil, fmt.Errorf("failed to scan signal: %w", err)
		}
		signals = append(signals, sig)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate signals: %w", err)
	}

	return signals, nil
}
