package ingest

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// BranchSheetMode is the shape of the optional per-branch sheet.
type BranchSheetMode string

const (
	BranchSheetMatrix       BranchSheetMode = "matrix"        // row per branch, column group per currency
	BranchSheetVertical     BranchSheetMode = "vertical"      // row per branch+currency
	BranchSheetColumnMatrix BranchSheetMode = "column_matrix" // row per currency, "<id> buy"/"<id> sell" columns
)

// BranchSheetRef identifies the branch a row refers to. Row is the 1-based
// data row position, zero for column-matrix sheets.
type BranchSheetRef struct {
	ID      *int64
	Cashier string
	Row     int
}

// BranchSheetEntry is one branch override read from the branch sheet.
type BranchSheetEntry struct {
	Ref           BranchSheetRef
	Code          string
	Buy           decimal.Decimal
	Sell          decimal.Decimal
	WholesaleBuy  decimal.Decimal
	WholesaleSell decimal.Decimal
	HasWholesale  bool
}

// BranchSheet is the parsed per-branch sheet.
type BranchSheet struct {
	Mode    BranchSheetMode
	Entries []BranchSheetEntry
}

type currencyGroup struct {
	code          string
	buy, sell     int
	wBuy, wSell   int
	withWholesale bool
}

// ParseBranchSheet reads a branch sheet whose first row is the header.
func ParseBranchSheet(rows [][]string, tokens TokenTable) BranchSheet {
	if len(rows) == 0 {
		return BranchSheet{Mode: BranchSheetVertical}
	}
	header := rows[0]
	data := rows[1:]
	labels := NormalizeLabels(header)

	branchCol, cashierCol := -1, -1
	for i, l := range labels {
		if branchCol < 0 && containsAny(l, "відділ", "branch", "філі") {
			branchCol = i
		}
		if cashierCol < 0 && containsAny(l, "каса", "cashier", "касир") {
			cashierCol = i
		}
	}
	if branchCol < 0 && cashierCol < 0 {
		return parseColumnMatrix(labels, data)
	}

	skip := map[int]bool{branchCol: true, cashierCol: true}
	groups := currencyGroups(labels, tokens, skip)

	sheet := BranchSheet{Mode: BranchSheetMatrix}
	var cm ColumnMap
	if len(groups) == 0 {
		sheet.Mode = BranchSheetVertical
		cm = ClassifyColumns(header, data, skip)
	}

	for r, row := range data {
		ref, ok := rowRef(row, branchCol, cashierCol)
		if !ok {
			continue
		}
		ref.Row = r + 1

		if sheet.Mode == BranchSheetMatrix {
			for _, g := range groups {
				buy, sell := positiveRate(rowCell(row, g.buy)), positiveRate(rowCell(row, g.sell))
				if !buy.IsPositive() || !sell.IsPositive() {
					continue
				}
				e := BranchSheetEntry{Ref: ref, Code: g.code, Buy: buy, Sell: sell, HasWholesale: g.withWholesale}
				if g.withWholesale {
					e.WholesaleBuy = positiveRate(rowCell(row, g.wBuy))
					e.WholesaleSell = positiveRate(rowCell(row, g.wSell))
				}
				sheet.Entries = append(sheet.Entries, e)
			}
			continue
		}

		if !cm.Usable() {
			continue
		}
		p, reason := ParseRow(row, cm)
		if reason != Accepted {
			continue
		}
		sheet.Entries = append(sheet.Entries, BranchSheetEntry{
			Ref:           ref,
			Code:          p.Code,
			Buy:           p.Buy,
			Sell:          p.Sell,
			WholesaleBuy:  p.WholesaleBuy,
			WholesaleSell: p.WholesaleSell,
			HasWholesale:  cm.WholesaleBuy >= 0 || cm.WholesaleSell >= 0,
		})
	}
	return sheet
}

func currencyGroups(labels []string, tokens TokenTable, skip map[int]bool) []currencyGroup {
	isToken := func(i int) bool {
		if i < 0 || i >= len(labels) {
			return false
		}
		_, ok := tokens.Lookup(labels[i])
		return ok
	}

	var groups []currencyGroup
	for i, l := range labels {
		if skip[i] || i+1 >= len(labels) {
			continue
		}
		code, ok := tokens.Lookup(l)
		if !ok {
			continue
		}
		g := currencyGroup{code: code, buy: i, sell: i + 1, wBuy: -1, wSell: -1}
		if i+3 < len(labels) && !isToken(i+2) && !isToken(i+3) {
			g.wBuy, g.wSell, g.withWholesale = i+2, i+3, true
		}
		groups = append(groups, g)
	}
	return groups
}

func rowRef(row []string, branchCol, cashierCol int) (BranchSheetRef, bool) {
	if v := rowCell(row, branchCol); v != "" {
		if n, ok := firstNumber(v); ok {
			id := int64(n)
			return BranchSheetRef{ID: &id}, true
		}
	}
	if v := rowCell(row, cashierCol); v != "" && !isPlaceholder(v) {
		return BranchSheetRef{Cashier: strings.ToLower(v)}, true
	}
	return BranchSheetRef{}, false
}

func parseColumnMatrix(labels []string, data [][]string) BranchSheet {
	sheet := BranchSheet{Mode: BranchSheetColumnMatrix}

	codeCol := 0
	for i, l := range labels {
		if containsAny(l, "код", "code", "валют") {
			codeCol = i
			break
		}
	}

	type pair struct{ buy, sell int }
	branches := make(map[int]*pair)
	for i, l := range labels {
		if i == codeCol {
			continue
		}
		id, ok := firstNumber(l)
		if !ok {
			continue
		}
		p := branches[id]
		if p == nil {
			p = &pair{buy: -1, sell: -1}
			branches[id] = p
		}
		switch {
		case containsAny(l, "купів", "buy"):
			p.buy = i
		case containsAny(l, "прода", "sell"):
			p.sell = i
		}
	}
	ids := make([]int, 0, len(branches))
	for id, p := range branches {
		if p.buy >= 0 && p.sell >= 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	for _, row := range data {
		code := strings.ToUpper(rowCell(row, codeCol))
		if !isCurrencyCode(code) {
			continue
		}
		for _, id := range ids {
			p := branches[id]
			buy, sell := positiveRate(rowCell(row, p.buy)), positiveRate(rowCell(row, p.sell))
			if !buy.IsPositive() || !sell.IsPositive() {
				continue
			}
			bid := int64(id)
			sheet.Entries = append(sheet.Entries, BranchSheetEntry{
				Ref:  BranchSheetRef{ID: &bid},
				Code: code,
				Buy:  buy,
				Sell: sell,
			})
		}
	}
	return sheet
}
