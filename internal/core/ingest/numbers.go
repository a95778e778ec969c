// Package ingest turns raw spreadsheet rows into typed rate rows. Nothing in
// this package touches storage: sheets are read into [][]string by the
// spreadsheet package and the results are applied by the services package.
package ingest

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var spaceReplacer = strings.NewReplacer(
	"\u00a0", " ",
	"\u202f", " ",
	"\u2009", " ",
	"\t", " ",
)

// ParseRate parses a rate or amount cell. A decimal comma is accepted, and
// embedded whitespace is either a thousands separator ("1 000") or a broken
// decimal separator ("42 15" is 42.15). The second result is false for empty
// or unparseable cells.
func ParseRate(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(spaceReplacer.Replace(raw))
	if s == "" || isPlaceholder(s) {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ",", ".")

	if groups := strings.Fields(s); len(groups) > 1 {
		last := groups[len(groups)-1]
		switch {
		case len(last) == 3 && allDigits(last), strings.Contains(last, "."):
			s = strings.Join(groups, "")
		case len(groups) == 2 && allDigits(groups[0]) && allDigits(last):
			s = groups[0] + "." + last
		default:
			s = strings.Join(groups, "")
		}
	}

	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	// Float cells written by spreadsheet tools carry binary noise.
	return v.Round(6), true
}

// positiveRate is ParseRate restricted to strictly positive values.
func positiveRate(raw string) decimal.Decimal {
	v, ok := ParseRate(raw)
	if !ok || !v.IsPositive() {
		return decimal.Zero
	}
	return v
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isPlaceholder reports cells that stand for "nothing here".
func isPlaceholder(s string) bool {
	l := strings.ToLower(strings.TrimSpace(s))
	return l == "nan" || l == "-" || l == "none" || strings.HasPrefix(l, "unnamed")
}

// firstNumber extracts the first run of digits in s.
func firstNumber(s string) (int, bool) {
	start := -1
	n := 0
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			n = n*10 + int(r-'0')
			if n > 1_000_000 {
				return 0, false
			}
			continue
		}
		if start >= 0 {
			break
		}
	}
	return n, start >= 0
}

func cell(rows [][]string, r, c int) string {
	if r < 0 || r >= len(rows) || c < 0 || c >= len(rows[r]) {
		return ""
	}
	return strings.TrimSpace(rows[r][c])
}

func rowCell(row []string, c int) string {
	if c < 0 || c >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[c])
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func width(rows [][]string) int {
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}
