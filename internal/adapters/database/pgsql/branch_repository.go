package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/models"
	"github.com/SscSPs/exchange_rates_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const branchColumns = `id, number, address, hours, phone, lat, lng, cashier, is_open, display_order,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBranch(row pgx.Row) (models.Branch, error) {
	var b models.Branch
	err := row.Scan(
		&b.ID, &b.Number, &b.Address, &b.Hours, &b.Phone, &b.Lat, &b.Lng, &b.Cashier,
		&b.IsOpen, &b.DisplayOrder, &b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
	)
	return b, err
}

func (r *repo) findOneBranch(ctx context.Context, where string, arg any) (*domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE ` + where + ` ORDER BY display_order, id LIMIT 1;`
	m, err := scanBranch(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find branch: %w", err)
	}
	d := mapping.ToDomainBranch(m)
	return &d, nil
}

func (r *repo) listBranches(ctx context.Context, where string, args ...any) ([]domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches ` + where + ` ORDER BY display_order, id;`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Branch, error) {
		return scanBranch(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan branches: %w", err)
	}
	return mapping.ToDomainBranchSlice(ms), nil
}

func (r *repo) FindBranchByID(ctx context.Context, id int64) (*domain.Branch, error) {
	return r.findOneBranch(ctx, "id = $1", id)
}

func (r *repo) FindBranchByNumber(ctx context.Context, number int) (*domain.Branch, error) {
	return r.findOneBranch(ctx, "number = $1", number)
}

func (r *repo) FindBranchByCashier(ctx context.Context, cashier string) (*domain.Branch, error) {
	return r.findOneBranch(ctx, "LOWER(TRIM(cashier)) = LOWER(TRIM($1::text))", cashier)
}

func (r *repo) FindBranchesByAddress(ctx context.Context, address string) ([]domain.Branch, error) {
	return r.listBranches(ctx, "WHERE address = $1", address)
}

func (r *repo) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return r.listBranches(ctx, "")
}

func (r *repo) CountBranches(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM branches;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count branches: %w", err)
	}
	return n, nil
}

// CreateBranch inserts branch and sets its generated ID.
func (r *repo) CreateBranch(ctx context.Context, branch *domain.Branch) error {
	m := mapping.ToModelBranch(*branch)
	query := `
		INSERT INTO branches (number, address, hours, phone, lat, lng, cashier, is_open, display_order,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		m.Number, m.Address, m.Hours, m.Phone, m.Lat, m.Lng, m.Cashier, m.IsOpen, m.DisplayOrder,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&branch.ID)
	if err != nil {
		return fmt.Errorf("failed to create branch %q: %w", m.Address, translateWriteError(err))
	}
	return nil
}

func (r *repo) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	m := mapping.ToModelBranch(branch)
	query := `
		UPDATE branches SET number = $2, address = $3, hours = $4, phone = $5, lat = $6, lng = $7,
			cashier = $8, is_open = $9, display_order = $10, last_updated_at = $11, last_updated_by = $12
		WHERE id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.ID, m.Number, m.Address, m.Hours, m.Phone, m.Lat, m.Lng,
		m.Cashier, m.IsOpen, m.DisplayOrder, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update branch %d: %w", m.ID, translateWriteError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
