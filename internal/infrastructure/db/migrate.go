package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the minimal tables needed by this app.
// This keeps setup simple (no external migration tool), but still gives persistence.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists signals (
			id          text primary key,
			symbol      text not null,
			direction   text not null,
			confidence  double precision not null,
			entry_price double precision not null default 0,
			tp1         double precision not null default 0,
			sl          double precision not null default 0,
			stages      text not null default '',
			created_at  timestamptz not null
		);`,
		`create index if not exists signals_created_at_idx on signals (created_at desc);`,
		`create index if not exists signals_symbol_idx on signals (symbol);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("db: migrate: %w", err)
		}
	}
	return nil
}
