package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTransaction_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.SaveCurrency(ctx, domain.Currency{Code: "USD", IsActive: true}))

	boom := errors.New("boom")
	err := s.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.RateStore) error {
		require.NoError(t, tx.SaveCurrency(ctx, domain.Currency{Code: "EUR", IsActive: true}))
		_, err := tx.DeactivateCurrenciesExcept(ctx, []string{"EUR"})
		require.NoError(t, err)

		// outside readers do not see uncommitted work
		_, err = s.FindCurrencyByCode(ctx, "EUR")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.FindCurrencyByCode(ctx, "EUR")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	usd, err := s.FindCurrencyByCode(ctx, "USD")
	require.NoError(t, err)
	assert.True(t, usd.IsActive)
}

func TestWithinTransaction_Commits(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.RateStore) error {
		b := &domain.Branch{Address: "вул. Хрещатик, 1"}
		if err := tx.CreateBranch(ctx, b); err != nil {
			return err
		}
		if err := tx.SaveCurrency(ctx, domain.Currency{Code: "usd", IsActive: true}); err != nil {
			return err
		}
		return tx.SaveBranchRate(ctx, domain.BranchRate{BranchID: b.ID, CurrencyCode: "usd", IsActive: true})
	})
	require.NoError(t, err)

	br, err := s.FindBranchRate(ctx, 1, "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(1), br.ID)
}

func TestSaveBranchRate_RequiresBranchAndCurrency(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	err := s.SaveBranchRate(ctx, domain.BranchRate{BranchID: 9, CurrencyCode: "USD"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListReservations_NewestFirstWithCursor(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.SaveReservation(ctx, domain.Reservation{
			ID: id, Status: domain.ReservationPendingAdmin, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	page, err := s.ListReservations(ctx, portsrepo.ReservationFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "d", page[0].ID)
	assert.Equal(t, "c", page[1].ID)

	page, err = s.ListReservations(ctx, portsrepo.ReservationFilter{
		Limit: 2,
		After: &portsrepo.ReservationCursor{CreatedAt: page[1].CreatedAt, ID: page[1].ID},
	})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].ID)
	assert.Equal(t, "a", page[1].ID)

	assert.ErrorIs(t, s.SaveReservation(ctx, domain.Reservation{ID: "a"}), apperrors.ErrDuplicate)
}
