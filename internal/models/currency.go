package models

import "github.com/shopspring/decimal"

// Currency is a row of the currencies table.
type Currency struct {
	Code               string          `db:"code"`
	Name               string          `db:"name"`
	NameUK             string          `db:"name_uk"`
	Flag               string          `db:"flag"`
	BuyRate            decimal.Decimal `db:"buy_rate"`
	SellRate           decimal.Decimal `db:"sell_rate"`
	WholesaleBuyRate   decimal.Decimal `db:"wholesale_buy_rate"`
	WholesaleSellRate  decimal.Decimal `db:"wholesale_sell_rate"`
	WholesaleThreshold int             `db:"wholesale_threshold"`
	IsActive           bool            `db:"is_active"`
	IsPopular          bool            `db:"is_popular"`
	DisplayOrder       int             `db:"display_order"`
	AuditFields
}
