package dto

import (
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListRatesParams selects the branch whose rates are resolved.
type ListRatesParams struct {
	BranchID *int64 `form:"branch_id" binding:"omitempty,min=1"`
}

// RateResponse is one resolved currency line as shown to customers.
type RateResponse struct {
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
}

// ListRatesResponse is the body of the public currency list.
type ListRatesResponse struct {
	Currencies []RateResponse `json:"currencies"`
	UpdatedAt  *time.Time     `json:"updatedAt,omitempty"`
}

// ToListRatesResponse converts resolved rates and the aggregate timestamp.
func ToListRatesResponse(rates []domain.ResolvedRate, meta domain.RatesMeta) ListRatesResponse {
	res := ListRatesResponse{Currencies: make([]RateResponse, len(rates))}
	for i, r := range rates {
		res.Currencies[i] = RateResponse{
			Code:               r.Code,
			Name:               r.Name,
			NameUK:             r.NameUK,
			Flag:               r.Flag,
			BuyRate:            r.Buy,
			SellRate:           r.Sell,
			WholesaleBuyRate:   r.WholesaleBuy,
			WholesaleSellRate:  r.WholesaleSell,
			WholesaleThreshold: r.WholesaleThreshold,
			IsActive:           r.IsActive,
			IsPopular:          r.IsPopular,
		}
	}
	if !meta.UpdatedAt.IsZero() {
		at := meta.UpdatedAt
		res.UpdatedAt = &at
	}
	return res
}

// EditBranchRateRequest is a partial manual override for one branch and currency.
// Nil fields keep their stored value.
type EditBranchRateRequest struct {
	BuyRate            *decimal.Decimal `json:"buyRate"`
	SellRate           *decimal.Decimal `json:"sellRate"`
	WholesaleBuyRate   *decimal.Decimal `json:"wholesaleBuyRate"`
	WholesaleSellRate  *decimal.Decimal `json:"wholesaleSellRate"`
	WholesaleThreshold *int             `json:"wholesaleThreshold" binding:"omitempty,min=0"`
	IsActive           *bool            `json:"isActive"`
}

// HasPrices reports whether any price or threshold field is supplied.
func (r EditBranchRateRequest) HasPrices() bool {
	return r.BuyRate != nil || r.SellRate != nil || r.WholesaleBuyRate != nil ||
		r.WholesaleSellRate != nil || r.WholesaleThreshold != nil
}

// BranchRateResponse is the stored override after an edit. Reverted is true
// when the override was removed and the branch now follows the base rate.
type BranchRateResponse struct {
	BranchID           int64           `json:"branchId"`
	CurrencyCode       string          `json:"currencyCode"`
	BuyRate            decimal.Decimal `json:"buyRate"`
	SellRate           decimal.Decimal `json:"sellRate"`
	WholesaleBuyRate   decimal.Decimal `json:"wholesaleBuyRate"`
	WholesaleSellRate  decimal.Decimal `json:"wholesaleSellRate"`
	WholesaleThreshold int             `json:"wholesaleThreshold"`
	IsActive           bool            `json:"isActive"`
	Reverted           bool            `json:"reverted"`
}

// ToBranchRateResponse converts an override; a nil override means reverted.
func ToBranchRateResponse(branchID int64, code string, br *domain.BranchRate) BranchRateResponse {
	if br == nil {
		return BranchRateResponse{BranchID: branchID, CurrencyCode: code, IsActive: true, Reverted: true}
	}
	return BranchRateResponse{
		BranchID:           br.BranchID,
		CurrencyCode:       br.CurrencyCode,
		BuyRate:            br.Buy,
		SellRate:           br.Sell,
		WholesaleBuyRate:   br.WholesaleBuy,
		WholesaleSellRate:  br.WholesaleSell,
		WholesaleThreshold: br.WholesaleThreshold,
		IsActive:           br.IsActive,
	}
}
