package mapping

import (
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/models"
)

// ToModelReservation converts a domain Reservation to a model Reservation
func ToModelReservation(d domain.Reservation) models.Reservation {
	return models.Reservation{
		ID:           d.ID,
		GiveAmount:   d.GiveAmount,
		GiveCurrency: d.GiveCurrency,
		GetAmount:    d.GetAmount,
		GetCurrency:  d.GetCurrency,
		Rate:         d.Rate,
		Phone:        d.Phone,
		CustomerName: d.CustomerName,
		BranchID:     d.BranchID,
		Status:       string(d.Status),
		OperatorNote: d.OperatorNote,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		ExpiresAt:    d.ExpiresAt,
		CompletedAt:  d.CompletedAt,
	}
}

// ToDomainReservation converts a model Reservation to a domain Reservation
func ToDomainReservation(m models.Reservation) domain.Reservation {
	return domain.Reservation{
		ID:           m.ID,
		GiveAmount:   m.GiveAmount,
		GiveCurrency: m.GiveCurrency,
		GetAmount:    m.GetAmount,
		GetCurrency:  m.GetCurrency,
		Rate:         m.Rate,
		Phone:        m.Phone,
		CustomerName: m.CustomerName,
		BranchID:     m.BranchID,
		Status:       domain.ReservationStatus(m.Status),
		OperatorNote: m.OperatorNote,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		ExpiresAt:    m.ExpiresAt,
		CompletedAt:  m.CompletedAt,
	}
}

// ToDomainReservationSlice converts a slice of model Reservations to domain Reservations
func ToDomainReservationSlice(ms []models.Reservation) []domain.Reservation {
	ds := make([]domain.Reservation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReservation(m)
	}
	return ds
}
