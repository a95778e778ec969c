package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	"github.com/SscSPs/exchange_rates_app/internal/models"
	"github.com/SscSPs/exchange_rates_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const reservationColumns = `id, give_amount, give_currency, get_amount, get_currency, rate, phone, customer_name,
	branch_id, status, operator_note, created_at, updated_at, expires_at, completed_at`

func scanReservation(row pgx.Row) (models.Reservation, error) {
	var m models.Reservation
	err := row.Scan(
		&m.ID, &m.GiveAmount, &m.GiveCurrency, &m.GetAmount, &m.GetCurrency, &m.Rate,
		&m.Phone, &m.CustomerName, &m.BranchID, &m.Status, &m.OperatorNote,
		&m.CreatedAt, &m.UpdatedAt, &m.ExpiresAt, &m.CompletedAt,
	)
	m.GiveCurrency = strings.TrimSpace(m.GiveCurrency)
	m.GetCurrency = strings.TrimSpace(m.GetCurrency)
	return m, err
}

func (r *repo) SaveReservation(ctx context.Context, reservation domain.Reservation) error {
	m := mapping.ToModelReservation(reservation)
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.db.Exec(ctx, query,
		m.ID, m.GiveAmount, m.GiveCurrency, m.GetAmount, m.GetCurrency, m.Rate,
		m.Phone, m.CustomerName, m.BranchID, m.Status, m.OperatorNote,
		m.CreatedAt, m.UpdatedAt, m.ExpiresAt, m.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save reservation %s: %w", m.ID, translateWriteError(err))
	}
	return nil
}

func (r *repo) FindReservationByID(ctx context.Context, id string) (*domain.Reservation, error) {
	query := `SELECT id::text, give_amount, give_currency, get_amount, get_currency, rate, phone, customer_name,
		branch_id, status, operator_note, created_at, updated_at, expires_at, completed_at
		FROM reservations WHERE id::text = $1;`
	m, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation %s: %w", id, err)
	}
	d := mapping.ToDomainReservation(m)
	return &d, nil
}

// ListReservations returns newest first, keyset-paginated on (created_at, id).
func (r *repo) ListReservations(ctx context.Context, filter portsrepo.ReservationFilter) ([]domain.Reservation, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.After != nil {
		args = append(args, filter.After.CreatedAt, filter.After.ID)
		conds = append(conds, fmt.Sprintf("(created_at, id::text) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT id::text, give_amount, give_currency, get_amount, get_currency, rate, phone, customer_name,
		branch_id, status, operator_note, created_at, updated_at, expires_at, completed_at FROM reservations`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id::text DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Reservation, error) {
		return scanReservation(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reservations: %w", err)
	}
	return mapping.ToDomainReservationSlice(ms), nil
}

// UpdateReservationStatus changes only lifecycle columns; amounts and rate are immutable.
func (r *repo) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus, note string, completedAt *time.Time, updatedAt time.Time) error {
	query := `
		UPDATE reservations SET
			status = $2,
			operator_note = CASE WHEN $3 = '' THEN operator_note ELSE $3 END,
			completed_at = COALESCE($4, completed_at),
			updated_at = $5
		WHERE id::text = $1;
	`
	tag, err := r.db.Exec(ctx, query, id, string(status), note, completedAt, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update reservation %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
