package mapping

import (
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/models"
)

// ToModelBranch converts a domain Branch to a model Branch
func ToModelBranch(d domain.Branch) models.Branch {
	return models.Branch{
		ID:           d.ID,
		Number:       d.Number,
		Address:      d.Address,
		Hours:        d.Hours,
		Phone:        d.Phone,
		Lat:          d.Lat,
		Lng:          d.Lng,
		Cashier:      d.Cashier,
		IsOpen:       d.IsOpen,
		DisplayOrder: d.DisplayOrder,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBranch converts a model Branch to a domain Branch
func ToDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		ID:           m.ID,
		Number:       m.Number,
		Address:      m.Address,
		Hours:        m.Hours,
		Phone:        m.Phone,
		Lat:          m.Lat,
		Lng:          m.Lng,
		Cashier:      m.Cashier,
		IsOpen:       m.IsOpen,
		DisplayOrder: m.DisplayOrder,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBranchSlice converts a slice of model Branches to domain Branches
func ToDomainBranchSlice(ms []models.Branch) []domain.Branch {
	ds := make([]domain.Branch, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBranch(m)
	}
	return ds
}

// ToModelBranchRate converts a domain BranchRate to a model BranchRate
func ToModelBranchRate(d domain.BranchRate) models.BranchRate {
	return models.BranchRate{
		ID:                 d.ID,
		BranchID:           d.BranchID,
		CurrencyCode:       d.CurrencyCode,
		BuyRate:            d.Buy,
		SellRate:           d.Sell,
		WholesaleBuyRate:   d.WholesaleBuy,
		WholesaleSellRate:  d.WholesaleSell,
		WholesaleThreshold: d.WholesaleThreshold,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBranchRate converts a model BranchRate to a domain BranchRate
func ToDomainBranchRate(m models.BranchRate) domain.BranchRate {
	return domain.BranchRate{
		ID:           m.ID,
		BranchID:     m.BranchID,
		CurrencyCode: m.CurrencyCode,
		RateQuad: domain.RateQuad{
			Buy:           m.BuyRate,
			Sell:          m.SellRate,
			WholesaleBuy:  m.WholesaleBuyRate,
			WholesaleSell: m.WholesaleSellRate,
		},
		WholesaleThreshold: m.WholesaleThreshold,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBranchRateSlice converts a slice of model BranchRates to domain BranchRates
func ToDomainBranchRateSlice(ms []models.BranchRate) []domain.BranchRate {
	ds := make([]domain.BranchRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBranchRate(m)
	}
	return ds
}
