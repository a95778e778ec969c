package services

import (
	"context"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
)

// ReservationReaderSvc defines read operations for reservations
type ReservationReaderSvc interface {
	// Quote prices an exchange without storing anything.
	Quote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error)
	GetReservation(ctx context.Context, id string) (*domain.Reservation, error)
	ListReservations(ctx context.Context, params dto.ListReservationsParams) (*dto.ListReservationsResponse, error)
}

// ReservationWriterSvc defines write operations for reservations
type ReservationWriterSvc interface {
	// CreateReservation locks the rate and amounts; they never change afterwards.
	CreateReservation(ctx context.Context, req dto.CreateReservationRequest) (*domain.Reservation, error)
	// TransitionReservation moves a reservation to status, leaving rate and amounts untouched.
	TransitionReservation(ctx context.Context, id string, status domain.ReservationStatus, note string) (*domain.Reservation, error)
}

// ReservationSvcFacade combines all reservation-related service interfaces
type ReservationSvcFacade interface {
	ReservationReaderSvc
	ReservationWriterSvc
}
