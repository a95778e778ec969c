package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/spreadsheet"
)

// ExportTemplate renders the current rates as a Hybrid-3-Row workbook. Branch
// columns carry the stored override values so an unmodified re-upload changes
// nothing. An empty store exports the catalog codes with blank prices.
func (s *rateUploadService) ExportTemplate(ctx context.Context) (*bytes.Buffer, error) {
	currencies, err := s.store.ListCurrencies(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies for template: %w", err)
	}
	if len(currencies) == 0 {
		for _, code := range s.catalog.Codes() {
			name, nameUK := s.catalog.Names(code)
			currencies = append(currencies, domain.Currency{Code: code, Name: name, NameUK: nameUK, Flag: s.catalog.Flag(code)})
		}
	}

	branches, err := s.store.ListBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches for template: %w", err)
	}
	overrides, err := s.store.ListBranchRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branch rates for template: %w", err)
	}
	byKey := make(map[branchCode]domain.BranchRate, len(overrides))
	for _, br := range overrides {
		byKey[branchCode{br.BranchID, br.CurrencyCode}] = br
	}

	tpl := spreadsheet.Template{Branches: make([]spreadsheet.TemplateBranch, len(branches))}
	for i, b := range branches {
		tpl.Branches[i] = spreadsheet.TemplateBranch{Number: b.Number, Address: b.Address}
	}
	for _, c := range currencies {
		row := spreadsheet.TemplateRow{
			Code:   c.Code,
			Flag:   c.Flag,
			Name:   c.NameUK,
			Base:   toTemplateQuad(c.RateQuad),
			Branch: make([]spreadsheet.TemplateQuad, len(branches)),
		}
		for i, b := range branches {
			if br, ok := byKey[branchCode{b.ID, c.Code}]; ok && br.IsActive {
				row.Branch[i] = toTemplateQuad(br.RateQuad)
			}
		}
		tpl.Rows = append(tpl.Rows, row)
	}

	buf, err := spreadsheet.WriteTemplate(tpl)
	if err != nil {
		s.LogError(ctx, err, "Failed to render rates template")
		return nil, err
	}
	return buf, nil
}

func toTemplateQuad(q domain.RateQuad) spreadsheet.TemplateQuad {
	return spreadsheet.TemplateQuad{Buy: q.Buy, Sell: q.Sell, WholesaleBuy: q.WholesaleBuy, WholesaleSell: q.WholesaleSell}
}
