package ingest

import (
	"testing"

	"github.com/SscSPs/exchange_rates_app/internal/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParseRate(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"42.15", "42.15", true},
		{"42,15", "42.15", true},
		{"42 15", "42.15", true},
		{"42\u00a015", "42.15", true},
		{"1 000", "1000", true},
		{"1 000,50", "1000.5", true},
		{" 0.28 ", "0.28", true},
		{"42.100000000000001", "42.1", true},
		{"", "0", false},
		{"-", "0", false},
		{"nan", "0", false},
		{"abc", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestDetectLayout_Flat(t *testing.T) {
	rows := [][]string{
		{"Код", "Валюта", "Купівля", "Продаж"},
		{"USD", "Долар", "42.10", "42.15"},
	}
	plan := DetectLayout(rows)
	assert.Equal(t, LayoutFlat, plan.Kind)
	assert.Equal(t, 0, plan.HeaderRow)
}

func TestDetectLayout_FlatWithTitleRows(t *testing.T) {
	rows := [][]string{
		{"Курси на сьогодні"},
		{""},
		{"Code", "Name", "Buy", "Sell"},
		{"USD", "Dollar", "42.10", "42.15"},
	}
	plan := DetectLayout(rows)
	assert.Equal(t, LayoutFlat, plan.Kind)
	assert.Equal(t, 2, plan.HeaderRow)
}

func TestDetectLayout_Hybrid(t *testing.T) {
	rows := [][]string{
		{"", "", "", "", "", "№ 3", "", "", "", "№ 5", ""},
		{"", "", "", "", "", "вул. Хрещатик, 1", "", "", "", "пр. Перемоги, 10", ""},
		{"Код", "Прапор", "Валюта", "Купівля", "Продаж", "Купівля", "Продаж", "Опт Купівля", "Опт Продаж", "Купівля", "Продаж"},
		{"USD", "", "Долар", "42.10", "42.15", "42.00", "42.20", "", "", "41.90", "42.30"},
	}
	plan := DetectLayout(rows)
	require.Equal(t, LayoutHybrid, plan.Kind)
	assert.Equal(t, 2, plan.HeaderRow)
	assert.Equal(t, 2, plan.GroupCount())
	require.Len(t, plan.Hybrid, 6)

	first := plan.Hybrid[0]
	assert.Equal(t, 5, first.Col)
	assert.Equal(t, FieldBuy, first.Field)
	require.NotNil(t, first.Ref.Number)
	assert.Equal(t, 3, *first.Ref.Number)
	assert.Equal(t, "вул. Хрещатик, 1", first.Ref.Address)

	assert.Equal(t, FieldWholesaleBuy, plan.Hybrid[2].Field)
	assert.Equal(t, FieldWholesaleSell, plan.Hybrid[3].Field)
	assert.Equal(t, 0, plan.Hybrid[3].Group)

	last := plan.Hybrid[5]
	assert.Equal(t, 1, last.Group)
	assert.Equal(t, 5, *last.Ref.Number)

	skip := plan.BranchColumns()
	assert.True(t, skip[5])
	assert.False(t, skip[3])
}

func TestDetectLayout_HybridPlaceholderAddressIsFlat(t *testing.T) {
	rows := [][]string{
		{"", "", "", ""},
		{"nan", "", "Unnamed: 2", "-"},
		{"Код", "Валюта", "Купівля", "Продаж"},
	}
	assert.Equal(t, LayoutFlat, DetectLayout(rows).Kind)
}

func TestDetectLayout_Legacy(t *testing.T) {
	rows := [][]string{
		{"", "", "", "", "ID: 1", "", "№2", "", "Nr 7"},
		{"Код", "Валюта", "Купівля", "Продаж", "Купівля", "Продаж", "Купівля", "Продаж", "Купівля"},
	}
	plan := DetectLayout(rows)
	require.Equal(t, LayoutLegacy, plan.Kind)
	require.Len(t, plan.Legacy, 3)
	assert.Equal(t, 4, plan.Legacy[0].Col)
	assert.Equal(t, 1, *plan.Legacy[0].Ref.Number)
	assert.Equal(t, 2, *plan.Legacy[1].Ref.Number)
	assert.Equal(t, 7, *plan.Legacy[2].Ref.Number)
}

func TestDetectLayout_LegacyIgnoresMarkersAboveBaseColumns(t *testing.T) {
	rows := [][]string{
		{"", "", "ID: 1", "", "ID: 2", ""},
		{"Код", "Валюта", "Купівля", "Продаж", "Купівля", "Продаж"},
	}
	plan := DetectLayout(rows)
	require.Equal(t, LayoutLegacy, plan.Kind)
	require.Len(t, plan.Legacy, 1)
	assert.Equal(t, 4, plan.Legacy[0].Col)
	assert.Equal(t, 2, *plan.Legacy[0].Ref.Number)

	m := ClassifyColumns(rows[1], nil, plan.BranchColumns())
	assert.Equal(t, 2, m.Buy)
	assert.Equal(t, 3, m.Sell)
}

func TestDetectLayout_HeaderOnRowOneWithoutMarkersIsFlat(t *testing.T) {
	rows := [][]string{
		{"Курси на сьогодні"},
		{"Код", "Купівля", "Продаж"},
	}
	plan := DetectLayout(rows)
	assert.Equal(t, LayoutFlat, plan.Kind)
	assert.Equal(t, 1, plan.HeaderRow)
}

func TestClassifyColumns(t *testing.T) {
	header := []string{"Код", "Прапор", "Назва валюти", "Купівля", "Продаж", "Опт купівля", "Опт продаж"}
	m := ClassifyColumns(header, nil, nil)

	assert.Equal(t, 0, m.Code)
	assert.Equal(t, 1, m.Flag)
	assert.Equal(t, 2, m.Name)
	assert.Equal(t, 3, m.Buy)
	assert.Equal(t, 4, m.Sell)
	assert.Equal(t, 5, m.WholesaleBuy)
	assert.Equal(t, 6, m.WholesaleSell)
	assert.True(t, m.Usable())
}

func TestClassifyColumns_CodeDisambiguation(t *testing.T) {
	header := []string{"Валюта", "Символ", "Buy", "Sell"}
	samples := [][]string{
		{"Долар США", "USD", "42.10", "42.15"},
		{"Євро", "EUR", "49.30", "49.35"},
		{"", "", "", ""},
		{"Злотий", "PLN", "11.50", "11.65"},
	}
	m := ClassifyColumns(header, samples, nil)
	assert.Equal(t, 1, m.Code)
	assert.Equal(t, 2, m.Buy)
	assert.Equal(t, 3, m.Sell)
}

func TestClassifyColumns_DuplicateLabels(t *testing.T) {
	labels := NormalizeLabels([]string{"Купівля", " купівля ", "Продаж", "КУПІВЛЯ"})
	assert.Equal(t, []string{"купівля", "купівля_1", "продаж", "купівля_2"}, labels)
}

func TestParseRow(t *testing.T) {
	m := ClassifyColumns([]string{"Code", "Name", "Buy", "Sell"}, nil, nil)

	p, reason := ParseRow([]string{"usd", "Dollar", "42,10", "42.15"}, m)
	assert.Equal(t, Accepted, reason)
	assert.Equal(t, "USD", p.Code)
	assert.True(t, dec("42.10").Equal(p.Buy))

	_, reason = ParseRow([]string{"", "", "", ""}, m)
	assert.Equal(t, SkipEmpty, reason)

	_, reason = ParseRow([]string{"US", "Dollar", "42.10", "42.15"}, m)
	assert.Equal(t, SkipBadCode, reason)

	_, reason = ParseRow([]string{"USD", "Dollar", "0", "42.15"}, m)
	assert.Equal(t, SkipBadRate, reason)

	_, reason = ParseRow([]string{"USD", "Dollar", "42.10"}, m)
	assert.Equal(t, SkipBadRate, reason)
}

func TestTokenTable(t *testing.T) {
	tokens := NewTokenTable([]string{"XAU"}, catalog.Default())

	code, ok := tokens.Lookup(" $ ")
	assert.True(t, ok)
	assert.Equal(t, "USD", code)

	code, ok = tokens.Lookup("xau")
	assert.True(t, ok)
	assert.Equal(t, "XAU", code)

	_, ok = tokens.Lookup("купівля")
	assert.False(t, ok)
}

func TestParseBranchSheet_Matrix(t *testing.T) {
	rows := [][]string{
		{"Відділення", "$", "", "", "", "€", ""},
		{"3", "42.00", "42.20", "41.95", "42.25", "49.10", "49.40"},
		{"5", "-", "42.30", "", "", "49.00", "49.50"},
		{"", "1", "2", "", "", "", ""},
	}
	sheet := ParseBranchSheet(rows, NewTokenTable(nil, catalog.Default()))
	require.Equal(t, BranchSheetMatrix, sheet.Mode)
	require.Len(t, sheet.Entries, 3)

	usd := sheet.Entries[0]
	assert.Equal(t, "USD", usd.Code)
	assert.Equal(t, int64(3), *usd.Ref.ID)
	assert.Equal(t, 1, usd.Ref.Row)
	assert.True(t, usd.HasWholesale)
	assert.True(t, dec("41.95").Equal(usd.WholesaleBuy))

	eur := sheet.Entries[1]
	assert.Equal(t, "EUR", eur.Code)
	assert.False(t, eur.HasWholesale)

	assert.Equal(t, int64(5), *sheet.Entries[2].Ref.ID)
	assert.Equal(t, "EUR", sheet.Entries[2].Code)
}

func TestParseBranchSheet_VerticalByCashier(t *testing.T) {
	rows := [][]string{
		{"Каса", "Код", "Купівля", "Продаж"},
		{"Олена", "usd", "42.00", "42.20"},
		{"Олена", "EUR", "49.00", ""},
	}
	sheet := ParseBranchSheet(rows, NewTokenTable(nil, catalog.Default()))
	require.Equal(t, BranchSheetVertical, sheet.Mode)
	require.Len(t, sheet.Entries, 1)
	assert.Equal(t, "олена", sheet.Entries[0].Ref.Cashier)
	assert.Equal(t, "USD", sheet.Entries[0].Code)
	assert.False(t, sheet.Entries[0].HasWholesale)
}

func TestParseBranchSheet_ColumnMatrix(t *testing.T) {
	rows := [][]string{
		{"Код", "1 buy", "1 sell", "2 купівля", "2 продаж"},
		{"USD", "42.00", "42.20", "41.90", "42.30"},
		{"EUR", "49.00", "49.20", "", ""},
	}
	sheet := ParseBranchSheet(rows, NewTokenTable(nil, catalog.Default()))
	require.Equal(t, BranchSheetColumnMatrix, sheet.Mode)
	require.Len(t, sheet.Entries, 3)
	assert.Equal(t, int64(1), *sheet.Entries[0].Ref.ID)
	assert.Equal(t, int64(2), *sheet.Entries[1].Ref.ID)
	assert.Equal(t, "EUR", sheet.Entries[2].Code)
}

func TestSheetSelection(t *testing.T) {
	names := []string{"Info", "Курси", "Відділення"}
	base := BaseSheetIndex(names)
	assert.Equal(t, 1, base)
	assert.Equal(t, 2, BranchSheetIndex(names, base))

	assert.Equal(t, 0, BaseSheetIndex([]string{"Sheet1"}))
	assert.Equal(t, -1, BranchSheetIndex([]string{"Sheet1"}, 0))
}
