package mapping

import (
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		Code:               d.Code,
		Name:               d.Name,
		NameUK:             d.NameUK,
		Flag:               d.Flag,
		BuyRate:            d.Buy,
		SellRate:           d.Sell,
		WholesaleBuyRate:   d.WholesaleBuy,
		WholesaleSellRate:  d.WholesaleSell,
		WholesaleThreshold: d.WholesaleThreshold,
		IsActive:           d.IsActive,
		IsPopular:          d.IsPopular,
		DisplayOrder:       d.DisplayOrder,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		Code:   m.Code,
		Name:   m.Name,
		NameUK: m.NameUK,
		Flag:   m.Flag,
		RateQuad: domain.RateQuad{
			Buy:           m.BuyRate,
			Sell:          m.SellRate,
			WholesaleBuy:  m.WholesaleBuyRate,
			WholesaleSell: m.WholesaleSellRate,
		},
		WholesaleThreshold: m.WholesaleThreshold,
		IsActive:           m.IsActive,
		IsPopular:          m.IsPopular,
		DisplayOrder:       m.DisplayOrder,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}
