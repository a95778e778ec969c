package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/models"
	"github.com/SscSPs/exchange_rates_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const branchRateColumns = `id, branch_id, currency_code, buy_rate, sell_rate, wholesale_buy_rate, wholesale_sell_rate,
	wholesale_threshold, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanBranchRate(row pgx.Row) (models.BranchRate, error) {
	var br models.BranchRate
	err := row.Scan(
		&br.ID, &br.BranchID, &br.CurrencyCode,
		&br.BuyRate, &br.SellRate, &br.WholesaleBuyRate, &br.WholesaleSellRate,
		&br.WholesaleThreshold, &br.IsActive,
		&br.CreatedAt, &br.CreatedBy, &br.LastUpdatedAt, &br.LastUpdatedBy,
	)
	br.CurrencyCode = strings.TrimSpace(br.CurrencyCode)
	return br, err
}

func (r *repo) FindBranchRate(ctx context.Context, branchID int64, currencyCode string) (*domain.BranchRate, error) {
	query := `SELECT ` + branchRateColumns + ` FROM branch_rates WHERE branch_id = $1 AND currency_code = $2;`
	m, err := scanBranchRate(r.db.QueryRow(ctx, query, branchID, strings.ToUpper(currencyCode)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find branch rate %d/%s: %w", branchID, currencyCode, err)
	}
	d := mapping.ToDomainBranchRate(m)
	return &d, nil
}

func (r *repo) listBranchRates(ctx context.Context, where string, args ...any) ([]domain.BranchRate, error) {
	query := `SELECT ` + branchRateColumns + ` FROM branch_rates ` + where + ` ORDER BY branch_id, currency_code;`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query branch rates: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.BranchRate, error) {
		return scanBranchRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan branch rates: %w", err)
	}
	return mapping.ToDomainBranchRateSlice(ms), nil
}

func (r *repo) ListBranchRatesByBranch(ctx context.Context, branchID int64) ([]domain.BranchRate, error) {
	return r.listBranchRates(ctx, "WHERE branch_id = $1", branchID)
}

func (r *repo) ListBranchRates(ctx context.Context) ([]domain.BranchRate, error) {
	return r.listBranchRates(ctx, "")
}

// SaveBranchRate upserts on (branch_id, currency_code).
func (r *repo) SaveBranchRate(ctx context.Context, rate domain.BranchRate) error {
	m := mapping.ToModelBranchRate(rate)
	m.CurrencyCode = strings.ToUpper(m.CurrencyCode)
	query := `
		INSERT INTO branch_rates (branch_id, currency_code, buy_rate, sell_rate, wholesale_buy_rate, wholesale_sell_rate,
			wholesale_threshold, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (branch_id, currency_code) DO UPDATE SET
			buy_rate = EXCLUDED.buy_rate,
			sell_rate = EXCLUDED.sell_rate,
			wholesale_buy_rate = EXCLUDED.wholesale_buy_rate,
			wholesale_sell_rate = EXCLUDED.wholesale_sell_rate,
			wholesale_threshold = EXCLUDED.wholesale_threshold,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		m.BranchID, m.CurrencyCode,
		m.BuyRate, m.SellRate, m.WholesaleBuyRate, m.WholesaleSellRate,
		m.WholesaleThreshold, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save branch rate %d/%s: %w", m.BranchID, m.CurrencyCode, translateWriteError(err))
	}
	return nil
}

func (r *repo) DeleteBranchRate(ctx context.Context, branchID int64, currencyCode string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM branch_rates WHERE branch_id = $1 AND currency_code = $2;`,
		branchID, strings.ToUpper(currencyCode))
	if err != nil {
		return fmt.Errorf("failed to delete branch rate %d/%s: %w", branchID, currencyCode, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *repo) DeactivateBranchRatesExcept(ctx context.Context, codes []string) (int, error) {
	query := `UPDATE branch_rates SET is_active = FALSE, last_updated_at = NOW()
		WHERE is_active AND NOT (currency_code = ANY($1));`
	tag, err := r.db.Exec(ctx, query, upperAll(codes))
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate branch rates: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
