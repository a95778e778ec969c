package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultWholesaleThreshold is the threshold new records are created with. A
// branch override carrying this value is treated as "not set".
const DefaultWholesaleThreshold = 1000

// RateQuad is the four prices quoted for a currency against the local currency.
// A zero value means "absent".
type RateQuad struct {
	Buy           decimal.Decimal `json:"buyRate"`
	Sell          decimal.Decimal `json:"sellRate"`
	WholesaleBuy  decimal.Decimal `json:"wholesaleBuyRate"`
	WholesaleSell decimal.Decimal `json:"wholesaleSellRate"`
}

// Currency is the base (city-wide) quote for a foreign currency.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	NameUK string `json:"nameUk"`
	Flag   string `json:"flag"`
	RateQuad
	WholesaleThreshold int  `json:"wholesaleThreshold"`
	IsActive           bool `json:"isActive"`
	IsPopular          bool `json:"isPopular"`
	DisplayOrder       int  `json:"displayOrder"`
	AuditFields
}

// Branch is a physical exchange office.
type Branch struct {
	ID           int64           `json:"id"`
	Number       *int            `json:"number,omitempty"`
	Address      string          `json:"address"`
	Hours        string          `json:"hours"`
	Phone        string          `json:"phone"`
	Lat          decimal.Decimal `json:"lat"`
	Lng          decimal.Decimal `json:"lng"`
	Cashier      *string         `json:"cashier,omitempty"`
	IsOpen       bool            `json:"isOpen"`
	DisplayOrder int             `json:"displayOrder"`
	AuditFields
}

// BranchRate overrides the base quote of one currency at one branch.
type BranchRate struct {
	ID           int64  `json:"id"`
	BranchID     int64  `json:"branchId"`
	CurrencyCode string `json:"currencyCode"`
	RateQuad
	WholesaleThreshold int  `json:"wholesaleThreshold"`
	IsActive           bool `json:"isActive"`
	AuditFields
}

// RatesMeta records when the rate aggregate last changed.
type RatesMeta struct {
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

// ResolvedRate is the effective quote of a currency at a branch.
type ResolvedRate struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	NameUK       string `json:"nameUk"`
	Flag         string `json:"flag"`
	RateQuad
	WholesaleThreshold int  `json:"wholesaleThreshold"`
	IsActive           bool `json:"isActive"`
	IsPopular          bool `json:"isPopular"`
	DisplayOrder       int  `json:"displayOrder"`
}

// ResolveRate merges a branch override onto the base currency field by field.
// Each rate comes from the override when it is positive, otherwise from the base.
// The threshold comes from the override only when it is set and differs from
// defaultThreshold. A disabled override zeroes all four rates.
func ResolveRate(base Currency, override *BranchRate, defaultThreshold int) ResolvedRate {
	out := ResolvedRate{
		Code:               base.Code,
		Name:               base.Name,
		NameUK:             base.NameUK,
		Flag:               base.Flag,
		WholesaleThreshold: base.WholesaleThreshold,
		IsActive:           true,
		IsPopular:          base.IsPopular,
		DisplayOrder:       base.DisplayOrder,
	}
	if override == nil {
		out.RateQuad = base.RateQuad
		return out
	}
	if !override.IsActive {
		out.IsActive = false
		return out
	}

	out.Buy = pickPositive(override.Buy, base.Buy)
	out.Sell = pickPositive(override.Sell, base.Sell)
	out.WholesaleBuy = pickPositive(override.WholesaleBuy, base.WholesaleBuy)
	out.WholesaleSell = pickPositive(override.WholesaleSell, base.WholesaleSell)
	if override.WholesaleThreshold != 0 && override.WholesaleThreshold != defaultThreshold {
		out.WholesaleThreshold = override.WholesaleThreshold
	}
	return out
}

func pickPositive(preferred, fallback decimal.Decimal) decimal.Decimal {
	if preferred.IsPositive() {
		return preferred
	}
	return fallback
}

// IsEmpty reports whether no field of q carries a positive value.
func (q RateQuad) IsEmpty() bool {
	return !q.Buy.IsPositive() && !q.Sell.IsPositive() &&
		!q.WholesaleBuy.IsPositive() && !q.WholesaleSell.IsPositive()
}

// Equal compares the four prices numerically.
func (q RateQuad) Equal(o RateQuad) bool {
	return q.Buy.Equal(o.Buy) && q.Sell.Equal(o.Sell) &&
		q.WholesaleBuy.Equal(o.WholesaleBuy) && q.WholesaleSell.Equal(o.WholesaleSell)
}
