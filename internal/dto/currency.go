package dto

import (
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the data needed to add a currency by hand.
type CreateCurrencyRequest struct {
	Code               string          `json:"code" binding:"required,currency_code"`
	Name               string          `json:"name"`
	NameUK             string          `json:"nameUk"`
	Flag               string          `json:"flag"`
	BuyRate            decimal.Decimal `json:"buyRate"`
	SellRate           decimal.Decimal `json:"sellRate"`
	WholesaleBuyRate   decimal.Decimal `json:"wholesaleBuyRate"`
	WholesaleSellRate  decimal.Decimal `json:"wholesaleSellRate"`
	WholesaleThreshold *int            `json:"wholesaleThreshold" binding:"omitempty,min=0"`
	IsPopular          bool            `json:"isPopular"`
	DisplayOrder       int             `json:"displayOrder" binding:"min=0"`
}

// UpdateCurrencyRequest carries the fields to change; nil fields are left alone.
type UpdateCurrencyRequest struct {
	Name               *string          `json:"name"`
	NameUK             *string          `json:"nameUk"`
	Flag               *string          `json:"flag"`
	BuyRate            *decimal.Decimal `json:"buyRate"`
	SellRate           *decimal.Decimal `json:"sellRate"`
	WholesaleBuyRate   *decimal.Decimal `json:"wholesaleBuyRate"`
	WholesaleSellRate  *decimal.Decimal `json:"wholesaleSellRate"`
	WholesaleThreshold *int             `json:"wholesaleThreshold" binding:"omitempty,min=0"`
	IsActive           *bool            `json:"isActive"`
	IsPopular          *bool            `json:"isPopular"`
	DisplayOrder       *int             `json:"displayOrder" binding:"omitempty,min=0"`
}

// CurrencyResponse is the admin view of a base currency record.
type CurrencyResponse struct {
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	NameUK             string          `json:"nameUk"`
	Flag               string          `json:"flag"`
	BuyRate            decimal.Decimal `json:"buyRate"`
	SellRate           decimal.Decimal `json:"sellRate"`
	WholesaleBuyRate   decimal.Decimal `json:"wholesaleBuyRate"`
	WholesaleSellRate  decimal.Decimal `json:"wholesaleSellRate"`
	WholesaleThreshold int             `json:"wholesaleThreshold"`
	IsActive           bool            `json:"isActive"`
	IsPopular          bool            `json:"isPopular"`
	DisplayOrder       int             `json:"displayOrder"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy      string          `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:               c.Code,
		Name:               c.Name,
		NameUK:             c.NameUK,
		Flag:               c.Flag,
		BuyRate:            c.Buy,
		SellRate:           c.Sell,
		WholesaleBuyRate:   c.WholesaleBuy,
		WholesaleSellRate:  c.WholesaleSell,
		WholesaleThreshold: c.WholesaleThreshold,
		IsActive:           c.IsActive,
		IsPopular:          c.IsPopular,
		DisplayOrder:       c.DisplayOrder,
		LastUpdatedAt:      c.LastUpdatedAt,
		LastUpdatedBy:      c.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts domain currencies to CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}
