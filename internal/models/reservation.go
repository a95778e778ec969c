package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation is a row of the reservations table.
type Reservation struct {
	ID           string          `db:"id"`
	GiveAmount   decimal.Decimal `db:"give_amount"`
	GiveCurrency string          `db:"give_currency"`
	GetAmount    decimal.Decimal `db:"get_amount"`
	GetCurrency  string          `db:"get_currency"`
	Rate         decimal.Decimal `db:"rate"`
	Phone        string          `db:"phone"`
	CustomerName string          `db:"customer_name"`
	BranchID     *int64          `db:"branch_id"`
	Status       string          `db:"status"`
	OperatorNote string          `db:"operator_note"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
	ExpiresAt    time.Time       `db:"expires_at"`
	CompletedAt  *time.Time      `db:"completed_at"`
}
