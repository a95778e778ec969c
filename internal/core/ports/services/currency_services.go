package services

import (
	"context"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
)

// CurrencyReaderSvc defines read operations for base currency records
type CurrencyReaderSvc interface {
	// ListAllCurrencies returns every currency, inactive ones included.
	ListAllCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines manual edits of base currency records
type CurrencyWriterSvc interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, adminID string) (*domain.Currency, error)
	UpdateCurrency(ctx context.Context, code string, req dto.UpdateCurrencyRequest, adminID string) (*domain.Currency, error)
}

// CurrencyAdminSvcFacade combines all currency-related service interfaces
type CurrencyAdminSvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
