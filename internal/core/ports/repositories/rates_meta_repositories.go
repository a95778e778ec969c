package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
)

// RatesMetaRepository stores the single "rates last changed" record.
type RatesMetaRepository interface {
	GetRatesMeta(ctx context.Context) (domain.RatesMeta, error)
	TouchRatesMeta(ctx context.Context, at time.Time, by string) error
}
