package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"sentinel-backend/internal/domain"
)

// PostgresSignalRepository persists authorized signals for later review.
type PostgresSignalRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSignalRepository(pool *pgxpool.Pool) *PostgresSignalRepository {
	return &PostgresSignalRepository{pool: pool}
}

func (r *PostgresSignalRepository) Insert(ctx context.Context, rec *domain.SignalRecord) error {
	_, err := r.pool.Exec(ctx, `
		insert into signals (id, symbol, direction, confidence, entry_price, tp1, sl, stages, created_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		on conflict (id) do nothing`,
		rec.ID, rec.Symbol, string(rec.Direction), rec.Confidence,
		rec.EntryPrice, rec.TP1, rec.SL, rec.Stages, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("signals: insert %s: %w", rec.ID, err)
	}
	return nil
}

func (r *PostgresSignalRepository) Recent(ctx context.Context, limit int) ([]domain.SignalRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		select id, symbol, direction, confidence, entry_price, tp1, sl, stages, created_at
		from signals
		order by created_at desc
		limit $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("signals: query: %w", err)
	}
	defer rows.Close()

	var out []domain.SignalRecord
	for rows.Next() {
		var rec domain.SignalRecord
		var direction string
		if err := rows.Scan(&rec.ID, &rec.Symbol, &direction, &rec.Confidence,
			&rec.EntryPrice, &rec.TP1, &rec.SL, &rec.Stages, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("signals: scan: %w", err)
		}
		rec.Direction = domain.Direction(direction)
		out = append(out, rec)
	}
	return out, rows.Err()
}
