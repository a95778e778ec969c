package repositories

import (
	"context"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves currencies ordered by display order, optionally only active ones.
	ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency inserts or fully replaces a currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// DeactivateCurrenciesExcept marks every active currency not in codes inactive.
	DeactivateCurrenciesExcept(ctx context.Context, codes []string) (int, error)
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
