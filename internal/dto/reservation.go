package dto

import (
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// QuoteParams are the query parameters of the calculator.
type QuoteParams struct {
	Amount   string `form:"amount" binding:"required"`
	From     string `form:"from" binding:"required,currency_code"`
	To       string `form:"to" binding:"required,currency_code"`
	BranchID *int64 `form:"branch_id" binding:"omitempty,min=1"`
}

// CreateReservationRequest locks a rate for a customer. GetAmount and Rate are
// the figures the client displayed; they are honoured only within tolerance.
type CreateReservationRequest struct {
	GiveAmount   decimal.Decimal  `json:"giveAmount"`
	GiveCurrency string           `json:"giveCurrency" binding:"required,currency_code"`
	GetCurrency  string           `json:"getCurrency" binding:"required,currency_code"`
	GetAmount    *decimal.Decimal `json:"getAmount"`
	Rate         *decimal.Decimal `json:"rate"`
	Phone        string           `json:"phone" binding:"required,min=5,max=32"`
	CustomerName string           `json:"customerName" binding:"max=128"`
	BranchID     *int64           `json:"branchId" binding:"omitempty,min=1"`
}

// TransitionReservationRequest carries an optional operator note.
type TransitionReservationRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// ListReservationsParams pages through reservations newest first.
type ListReservationsParams struct {
	Status    string `form:"status"`
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"next_token"`
}

// QuoteResponse is a priced exchange that has not been stored.
type QuoteResponse struct {
	GiveAmount   decimal.Decimal `json:"giveAmount"`
	GiveCurrency string          `json:"giveCurrency"`
	GetAmount    decimal.Decimal `json:"getAmount"`
	GetCurrency  string          `json:"getCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	Wholesale    bool            `json:"wholesale"`
	BranchID     *int64          `json:"branchId,omitempty"`
}

// ToQuoteResponse converts a domain.Quote to QuoteResponse DTO
func ToQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		GiveAmount:   q.GiveAmount,
		GiveCurrency: q.GiveCurrency,
		GetAmount:    q.GetAmount,
		GetCurrency:  q.GetCurrency,
		Rate:         q.Rate,
		Wholesale:    q.Wholesale,
		BranchID:     q.BranchID,
	}
}

// ReservationResponse is a stored reservation with its effective status.
type ReservationResponse struct {
	ID           string          `json:"id"`
	GiveAmount   decimal.Decimal `json:"giveAmount"`
	GiveCurrency string          `json:"giveCurrency"`
	GetAmount    decimal.Decimal `json:"getAmount"`
	GetCurrency  string          `json:"getCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	Phone        string          `json:"phone"`
	CustomerName string          `json:"customerName,omitempty"`
	BranchID     *int64          `json:"branchId,omitempty"`
	Status       string          `json:"status"`
	OperatorNote string          `json:"operatorNote,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	ExpiresAt    time.Time       `json:"expiresAt"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
}

// ToReservationResponse converts a domain.Reservation to ReservationResponse DTO
func ToReservationResponse(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID,
		GiveAmount:   r.GiveAmount,
		GiveCurrency: r.GiveCurrency,
		GetAmount:    r.GetAmount,
		GetCurrency:  r.GetCurrency,
		Rate:         r.Rate,
		Phone:        r.Phone,
		CustomerName: r.CustomerName,
		BranchID:     r.BranchID,
		Status:       string(r.Status),
		OperatorNote: r.OperatorNote,
		CreatedAt:    r.CreatedAt,
		ExpiresAt:    r.ExpiresAt,
		CompletedAt:  r.CompletedAt,
	}
}

// ListReservationsResponse is one page of reservations.
type ListReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
