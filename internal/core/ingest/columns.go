package ingest

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ColumnMap holds the column index of each role on a base sheet, -1 when absent.
type ColumnMap struct {
	Labels        []string
	Code          int
	Name          int
	Buy           int
	Sell          int
	WholesaleBuy  int
	WholesaleSell int
	Flag          int
}

// HasFlag reports whether the sheet carries a flag column.
func (m ColumnMap) HasFlag() bool { return m.Flag >= 0 }

// Usable reports whether rows can be parsed at all.
func (m ColumnMap) Usable() bool {
	return m.Code >= 0 && m.Buy >= 0 && m.Sell >= 0
}

// NormalizeLabels lower-cases and trims header labels and suffixes duplicates
// with _1, _2 and so on.
func NormalizeLabels(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		if n, dup := seen[l]; dup {
			seen[l] = n + 1
			out[i] = fmt.Sprintf("%s_%d", l, n+1)
			continue
		}
		seen[l] = 0
		out[i] = l
	}
	return out
}

// ClassifyColumns maps header labels to roles. Columns in skip belong to
// branches and are never classified. samples are the data rows under the
// header and are used to disambiguate the code column.
func ClassifyColumns(header []string, samples [][]string, skip map[int]bool) ColumnMap {
	labels := NormalizeLabels(header)
	m := ColumnMap{Labels: labels, Code: -1, Name: -1, Buy: -1, Sell: -1, WholesaleBuy: -1, WholesaleSell: -1, Flag: -1}

	usable := func(i int) bool { return !skip[i] && labels[i] != "" }

	for i, l := range labels {
		if usable(i) && m.Code < 0 && containsAny(l, "код", "code", "iso") {
			m.Code = i
		}
	}
	if m.Code < 0 {
		for i, l := range labels {
			if usable(i) && containsAny(l, "валют", "currency") && !containsAny(l, "назва", "name") {
				m.Code = i
				break
			}
		}
	}

	for i, l := range labels {
		if !usable(i) || i == m.Code {
			continue
		}
		wholesale := isWholesale(l)
		buy := containsAny(l, "купів", "buy", "покуп")
		sell := containsAny(l, "прода", "sell")
		switch {
		case wholesale && buy && m.WholesaleBuy < 0:
			m.WholesaleBuy = i
		case wholesale && sell && m.WholesaleSell < 0:
			m.WholesaleSell = i
		case !wholesale && buy && m.Buy < 0:
			m.Buy = i
		case !wholesale && sell && m.Sell < 0:
			m.Sell = i
		case containsAny(l, "прапор", "flag") && m.Flag < 0:
			m.Flag = i
		case !buy && !sell && m.Name < 0 && containsAny(l, "назва", "name", "валют", "currency"):
			m.Name = i
		}
	}

	if m.Code >= 0 {
		if first := firstNonEmpty(samples, m.Code, 1); len(first) == 1 && utf8.RuneCountInString(first[0]) > 3 {
			m.Code = -1
		}
	}
	if m.Code < 0 || m.Code == m.Buy || m.Code == m.Sell {
		m.Code = -1
		w := len(labels)
		for i := 0; i < w; i++ {
			if skip[i] || i == m.Buy || i == m.Sell {
				continue
			}
			if looksLikeCodeColumn(firstNonEmpty(samples, i, 3)) {
				m.Code = i
				break
			}
		}
		if m.Name == m.Code {
			m.Name = -1
		}
	}
	return m
}

func firstNonEmpty(rows [][]string, col, n int) []string {
	var out []string
	for _, r := range rows {
		if v := rowCell(r, col); v != "" && !isPlaceholder(v) {
			out = append(out, v)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

func looksLikeCodeColumn(values []string) bool {
	if len(values) < 3 {
		return false
	}
	for _, v := range values {
		if !isCurrencyCode(v) {
			return false
		}
	}
	return true
}

func isCurrencyCode(v string) bool {
	if utf8.RuneCountInString(v) != 3 {
		return false
	}
	for _, r := range v {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// SkipReason explains why a row produced no rate.
type SkipReason int

const (
	Accepted SkipReason = iota
	SkipEmpty
	SkipBadCode
	SkipBadRate
)

// ParsedRate is one accepted base-sheet row.
type ParsedRate struct {
	Code          string
	Name          string
	Flag          string
	Buy           decimal.Decimal
	Sell          decimal.Decimal
	WholesaleBuy  decimal.Decimal
	WholesaleSell decimal.Decimal
}

// ParseRow extracts a base rate from row. A row is accepted only when its code
// has three letters and both buy and sell are positive.
func ParseRow(row []string, m ColumnMap) (ParsedRate, SkipReason) {
	if isBlankRow(row) {
		return ParsedRate{}, SkipEmpty
	}
	code := strings.ToUpper(rowCell(row, m.Code))
	if !isCurrencyCode(code) {
		return ParsedRate{Code: code}, SkipBadCode
	}
	p := ParsedRate{
		Code:          code,
		Buy:           positiveRate(rowCell(row, m.Buy)),
		Sell:          positiveRate(rowCell(row, m.Sell)),
		WholesaleBuy:  positiveRate(rowCell(row, m.WholesaleBuy)),
		WholesaleSell: positiveRate(rowCell(row, m.WholesaleSell)),
	}
	if name := rowCell(row, m.Name); !isPlaceholder(name) {
		p.Name = name
	}
	if flag := rowCell(row, m.Flag); !isPlaceholder(flag) {
		p.Flag = flag
	}
	if !p.Buy.IsPositive() || !p.Sell.IsPositive() {
		return p, SkipBadRate
	}
	return p, Accepted
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if s := strings.TrimSpace(v); s != "" && !isPlaceholder(s) {
			return false
		}
	}
	return true
}
