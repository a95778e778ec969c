package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func baseUSD() domain.Currency {
	return domain.Currency{
		Code: "USD",
		RateQuad: domain.RateQuad{
			Buy: d("42.10"), Sell: d("42.15"), WholesaleBuy: d("42.20"), WholesaleSell: d("42.05"),
		},
		WholesaleThreshold: 500,
		IsActive:           true,
	}
}

func TestResolveRate(t *testing.T) {
	tests := []struct {
		name     string
		override *domain.BranchRate
		want     domain.RateQuad
		wantThr  int
		wantAct  bool
	}{
		{
			name:    "no override uses base",
			want:    baseUSD().RateQuad,
			wantThr: 500,
			wantAct: true,
		},
		{
			name: "each field independent",
			override: &domain.BranchRate{
				RateQuad:           domain.RateQuad{Buy: d("41.90")},
				WholesaleThreshold: 1000,
				IsActive:           true,
			},
			want:    domain.RateQuad{Buy: d("41.90"), Sell: d("42.15"), WholesaleBuy: d("42.20"), WholesaleSell: d("42.05")},
			wantThr: 500,
			wantAct: true,
		},
		{
			name: "wholesale override only",
			override: &domain.BranchRate{
				RateQuad: domain.RateQuad{WholesaleSell: d("41.99")},
				IsActive: true,
			},
			want:    domain.RateQuad{Buy: d("42.10"), Sell: d("42.15"), WholesaleBuy: d("42.20"), WholesaleSell: d("41.99")},
			wantThr: 500,
			wantAct: true,
		},
		{
			name: "threshold override when not default",
			override: &domain.BranchRate{
				WholesaleThreshold: 2000,
				IsActive:           true,
			},
			want:    baseUSD().RateQuad,
			wantThr: 2000,
			wantAct: true,
		},
		{
			name: "inactive override zeroes rates",
			override: &domain.BranchRate{
				RateQuad: domain.RateQuad{Buy: d("41.90"), Sell: d("42.00")},
				IsActive: false,
			},
			want:    domain.RateQuad{},
			wantThr: 500,
			wantAct: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ResolveRate(baseUSD(), tt.override, domain.DefaultWholesaleThreshold)
			assert.True(t, tt.want.Buy.Equal(got.Buy), "buy: want %s got %s", tt.want.Buy, got.Buy)
			assert.True(t, tt.want.Sell.Equal(got.Sell), "sell: want %s got %s", tt.want.Sell, got.Sell)
			assert.True(t, tt.want.WholesaleBuy.Equal(got.WholesaleBuy), "wbuy: want %s got %s", tt.want.WholesaleBuy, got.WholesaleBuy)
			assert.True(t, tt.want.WholesaleSell.Equal(got.WholesaleSell), "wsell: want %s got %s", tt.want.WholesaleSell, got.WholesaleSell)
			assert.Equal(t, tt.wantThr, got.WholesaleThreshold)
			assert.Equal(t, tt.wantAct, got.IsActive)
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, domain.CanTransition(domain.ReservationPendingAdmin, domain.ReservationConfirmed))
	assert.True(t, domain.CanTransition(domain.ReservationConfirmed, domain.ReservationCompleted))
	assert.True(t, domain.CanTransition(domain.ReservationConfirmed, domain.ReservationCancelled))
	assert.False(t, domain.CanTransition(domain.ReservationCompleted, domain.ReservationCancelled))
	assert.False(t, domain.CanTransition(domain.ReservationCancelled, domain.ReservationConfirmed))
	assert.False(t, domain.CanTransition(domain.ReservationPending, domain.ReservationPendingAdmin))
}

func TestReservationEffectiveStatus(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := domain.Reservation{Status: domain.ReservationPendingAdmin, ExpiresAt: now.Add(time.Minute)}

	assert.Equal(t, domain.ReservationPendingAdmin, r.EffectiveStatus(now))
	assert.Equal(t, domain.ReservationExpired, r.EffectiveStatus(now.Add(time.Minute)))

	r.Status = domain.ReservationConfirmed
	assert.Equal(t, domain.ReservationConfirmed, r.EffectiveStatus(now.Add(time.Hour)))
}

func TestUploadSummaryWarningsBounded(t *testing.T) {
	var s domain.UploadSummary
	for i := 0; i < 25; i++ {
		s.Warnf("row %d skipped", i)
	}
	assert.Len(t, s.Errors, domain.MaxUploadWarnings)
	assert.Equal(t, "row 0 skipped", s.Errors[0])
}
