package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPendingAdmin ReservationStatus = "pending_admin"
	ReservationPending      ReservationStatus = "pending"
	ReservationConfirmed    ReservationStatus = "confirmed"
	ReservationCompleted    ReservationStatus = "completed"
	ReservationCancelled    ReservationStatus = "cancelled"
	ReservationExpired      ReservationStatus = "expired"
)

// Reservation is a customer's intent to exchange at a locked rate.
// Rate and amounts never change after creation.
type Reservation struct {
	ID           string            `json:"id"`
	GiveAmount   decimal.Decimal   `json:"giveAmount"`
	GiveCurrency string            `json:"giveCurrency"`
	GetAmount    decimal.Decimal   `json:"getAmount"`
	GetCurrency  string            `json:"getCurrency"`
	Rate         decimal.Decimal   `json:"rate"`
	Phone        string            `json:"phone"`
	CustomerName string            `json:"customerName"`
	BranchID     *int64            `json:"branchId,omitempty"`
	Status       ReservationStatus `json:"status"`
	OperatorNote string            `json:"operatorNote,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	ExpiresAt    time.Time         `json:"expiresAt"`
	CompletedAt  *time.Time        `json:"completedAt,omitempty"`
}

// IsOpen reports whether the reservation still awaits an operator.
func (r Reservation) IsOpen() bool {
	return r.Status == ReservationPendingAdmin || r.Status == ReservationPending
}

// EffectiveStatus reports expired for open reservations past their expiry.
func (r Reservation) EffectiveStatus(now time.Time) ReservationStatus {
	if r.IsOpen() && !now.Before(r.ExpiresAt) {
		return ReservationExpired
	}
	return r.Status
}

// CanTransition reports whether a reservation in status from may move to to.
func CanTransition(from, to ReservationStatus) bool {
	switch to {
	case ReservationConfirmed:
		return from == ReservationPendingAdmin || from == ReservationPending
	case ReservationCompleted:
		return from == ReservationPendingAdmin || from == ReservationPending || from == ReservationConfirmed
	case ReservationCancelled:
		return from != ReservationCompleted && from != ReservationCancelled
	default:
		return false
	}
}

// Quote is the outcome of pricing an exchange without persisting it.
type Quote struct {
	GiveAmount   decimal.Decimal `json:"giveAmount"`
	GiveCurrency string          `json:"giveCurrency"`
	GetAmount    decimal.Decimal `json:"getAmount"`
	GetCurrency  string          `json:"getCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	Wholesale    bool            `json:"wholesale"`
	BranchID     *int64          `json:"branchId,omitempty"`
}

// QuoteRequest is the input of pricing: what the customer gives and wants.
type QuoteRequest struct {
	GiveAmount   decimal.Decimal
	GiveCurrency string
	GetCurrency  string
	BranchID     *int64
}
