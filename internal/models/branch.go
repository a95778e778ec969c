package models

import "github.com/shopspring/decimal"

// Branch is a row of the branches table.
type Branch struct {
	ID           int64           `db:"id"`
	Number       *int            `db:"number"`
	Address      string          `db:"address"`
	Hours        string          `db:"hours"`
	Phone        string          `db:"phone"`
	Lat          decimal.Decimal `db:"lat"`
	Lng          decimal.Decimal `db:"lng"`
	Cashier      *string         `db:"cashier"`
	IsOpen       bool            `db:"is_open"`
	DisplayOrder int             `db:"display_order"`
	AuditFields
}

// BranchRate is a row of the branch_rates table.
type BranchRate struct {
	ID                 int64           `db:"id"`
	BranchID           int64           `db:"branch_id"`
	CurrencyCode       string          `db:"currency_code"`
	BuyRate            decimal.Decimal `db:"buy_rate"`
	SellRate           decimal.Decimal `db:"sell_rate"`
	WholesaleBuyRate   decimal.Decimal `db:"wholesale_buy_rate"`
	WholesaleSellRate  decimal.Decimal `db:"wholesale_sell_rate"`
	WholesaleThreshold int             `db:"wholesale_threshold"`
	IsActive           bool            `db:"is_active"`
	AuditFields
}
