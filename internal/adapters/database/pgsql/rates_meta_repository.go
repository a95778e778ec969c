package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

func (r *repo) GetRatesMeta(ctx context.Context) (domain.RatesMeta, error) {
	var meta domain.RatesMeta
	err := r.db.QueryRow(ctx, `SELECT updated_at, updated_by FROM rates_meta WHERE id = 1;`).
		Scan(&meta.UpdatedAt, &meta.UpdatedBy)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return meta, fmt.Errorf("failed to read rates meta: %w", err)
	}
	return meta, nil
}

func (r *repo) TouchRatesMeta(ctx context.Context, at time.Time, by string) error {
	query := `
		INSERT INTO rates_meta (id, updated_at, updated_by) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by;
	`
	if _, err := r.db.Exec(ctx, query, at, by); err != nil {
		return fmt.Errorf("failed to touch rates meta: %w", err)
	}
	return nil
}
