package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
)

// ReservationCursor positions a page after the given reservation.
type ReservationCursor struct {
	CreatedAt time.Time
	ID        string
}

// ReservationFilter narrows a reservation listing. Results are newest first.
type ReservationFilter struct {
	Status *domain.ReservationStatus
	After  *ReservationCursor
	Limit  int
}

// ReservationReader defines read operations for reservations
type ReservationReader interface {
	FindReservationByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListReservations(ctx context.Context, filter ReservationFilter) ([]domain.Reservation, error)
}

// ReservationWriter defines write operations for reservations. There is no
// method that changes a stored rate or amount.
type ReservationWriter interface {
	SaveReservation(ctx context.Context, reservation domain.Reservation) error
	UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus, note string, completedAt *time.Time, updatedAt time.Time) error
}

// ReservationRepositoryFacade combines all reservation repository interfaces
type ReservationRepositoryFacade interface {
	ReservationReader
	ReservationWriter
}
