package ingest

import (
	"strings"

	"github.com/SscSPs/exchange_rates_app/internal/catalog"
)

// TokenTable maps lower-cased header tokens ("usd", "$", "zł") to canonical
// currency codes.
type TokenTable map[string]string

// NewTokenTable builds the table from codes already in the store, every
// catalog code and the catalog's symbol aliases.
func NewTokenTable(storeCodes []string, cat *catalog.Catalog) TokenTable {
	t := make(TokenTable)
	for _, code := range cat.Codes() {
		t[strings.ToLower(code)] = code
	}
	for _, code := range storeCodes {
		t[strings.ToLower(code)] = strings.ToUpper(code)
	}
	for alias, code := range cat.Aliases() {
		t[alias] = code
	}
	return t
}

// Lookup resolves a header label to a currency code.
func (t TokenTable) Lookup(label string) (string, bool) {
	code, ok := t[strings.ToLower(strings.TrimSpace(label))]
	return code, ok
}
