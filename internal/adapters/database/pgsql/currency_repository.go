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

const currencyColumns = `code, name, name_uk, flag, buy_rate, sell_rate, wholesale_buy_rate, wholesale_sell_rate,
	wholesale_threshold, is_active, is_popular, display_order, created_at, created_by, last_updated_at, last_updated_by`

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var c models.Currency
	err := row.Scan(
		&c.Code, &c.Name, &c.NameUK, &c.Flag,
		&c.BuyRate, &c.SellRate, &c.WholesaleBuyRate, &c.WholesaleSellRate,
		&c.WholesaleThreshold, &c.IsActive, &c.IsPopular, &c.DisplayOrder,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	c.Code = strings.TrimSpace(c.Code)
	return c, err
}

// SaveCurrency inserts or replaces a currency; created_* are kept on update.
func (r *repo) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	m.Code = strings.ToUpper(m.Code)

	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			name_uk = EXCLUDED.name_uk,
			flag = EXCLUDED.flag,
			buy_rate = EXCLUDED.buy_rate,
			sell_rate = EXCLUDED.sell_rate,
			wholesale_buy_rate = EXCLUDED.wholesale_buy_rate,
			wholesale_sell_rate = EXCLUDED.wholesale_sell_rate,
			wholesale_threshold = EXCLUDED.wholesale_threshold,
			is_active = EXCLUDED.is_active,
			is_popular = EXCLUDED.is_popular,
			display_order = EXCLUDED.display_order,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		m.Code, m.Name, m.NameUK, m.Flag,
		m.BuyRate, m.SellRate, m.WholesaleBuyRate, m.WholesaleSellRate,
		m.WholesaleThreshold, m.IsActive, m.IsPopular, m.DisplayOrder,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save currency %s: %w", m.Code, translateWriteError(err))
	}
	return nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *repo) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE code = $1;`
	m, err := scanCurrency(r.db.QueryRow(ctx, query, strings.ToUpper(currencyCode)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", currencyCode, err)
	}
	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

// ListCurrencies retrieves currencies by display order.
func (r *repo) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies
		WHERE ($1 = FALSE OR is_active)
		ORDER BY display_order, code;`
	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}
	return mapping.ToDomainCurrencySlice(ms), nil
}

// DeactivateCurrenciesExcept disables every active currency not listed.
func (r *repo) DeactivateCurrenciesExcept(ctx context.Context, codes []string) (int, error) {
	query := `UPDATE currencies SET is_active = FALSE, last_updated_at = NOW()
		WHERE is_active AND NOT (code = ANY($1));`
	tag, err := r.db.Exec(ctx, query, upperAll(codes))
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate currencies: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func upperAll(codes []string) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = strings.ToUpper(c)
	}
	return out
}
