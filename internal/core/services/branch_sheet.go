package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/core/ingest"
)

// ingestBranchSheet applies the optional per-branch sheet after the base sheet.
// Matrix rows write a full override; vertical and column-matrix rows write
// buy and sell only.
func (u *uploadRun) ingestBranchSheet(ctx context.Context, rows [][]string) error {
	known, err := u.tx.ListCurrencies(ctx, false)
	if err != nil {
		return err
	}
	storeCodes := make([]string, len(known))
	for i, c := range known {
		storeCodes[i] = c.Code
	}

	sheet := ingest.ParseBranchSheet(rows, ingest.NewTokenTable(storeCodes, u.catalog))
	placed := make(map[int64]bool)

	for _, e := range sheet.Entries {
		branch, err := u.resolver.resolveSheetRef(ctx, e.Ref)
		if errors.Is(err, apperrors.ErrNotFound) {
			u.summary.Warnf("Відділення %s не знайдено, %s пропущено", describeSheetRef(e.Ref), e.Code)
			continue
		}
		if err != nil {
			return err
		}
		if sheet.Mode != ingest.BranchSheetColumnMatrix && !placed[branch.ID] {
			placed[branch.ID] = true
			if err := u.resolver.placeBranch(ctx, branch, e.Ref.Row, false); err != nil {
				return err
			}
		}

		if err := u.ensureCurrency(ctx, e); err != nil {
			return err
		}

		br, err := u.tx.FindBranchRate(ctx, branch.ID, e.Code)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			br = u.newBranchRate(branch.ID, e.Code)
		case err != nil:
			return fmt.Errorf("failed to load branch rate %d/%s: %w", branch.ID, e.Code, err)
		}

		br.Buy, br.Sell = e.Buy, e.Sell
		if sheet.Mode == ingest.BranchSheetMatrix {
			br.WholesaleBuy, br.WholesaleSell = e.WholesaleBuy, e.WholesaleSell
			br.IsActive = true
		}
		if err := u.saveBranchRate(ctx, br); err != nil {
			return err
		}
		u.markProcessed(e.Code)
		u.explicit[branchCode{branch.ID, e.Code}] = true
	}
	return nil
}

// ensureCurrency creates a currency named on the branch sheet but missing from
// the store, using the branch values as its base quote.
func (u *uploadRun) ensureCurrency(ctx context.Context, e ingest.BranchSheetEntry) error {
	if _, ok := u.bases[e.Code]; ok {
		return nil
	}
	cur, err := u.tx.FindCurrencyByCode(ctx, e.Code)
	if err == nil {
		u.bases[e.Code] = cur
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	name, nameUK := u.catalog.Names(e.Code)
	cur = &domain.Currency{
		Code:               e.Code,
		Name:               name,
		NameUK:             nameUK,
		Flag:               u.catalog.Flag(e.Code),
		RateQuad:           domain.RateQuad{Buy: e.Buy, Sell: e.Sell},
		WholesaleThreshold: u.defaultThreshold,
		IsActive:           true,
		IsPopular:          u.catalog.IsPopular(e.Code),
		AuditFields: domain.AuditFields{
			CreatedAt: u.now, CreatedBy: u.by, LastUpdatedAt: u.now, LastUpdatedBy: u.by,
		},
	}
	if err := u.tx.SaveCurrency(ctx, *cur); err != nil {
		return fmt.Errorf("failed to create currency %s: %w", e.Code, err)
	}
	u.bases[e.Code] = cur
	return nil
}

func describeSheetRef(ref ingest.BranchSheetRef) string {
	if ref.ID != nil {
		return fmt.Sprintf("#%d", *ref.ID)
	}
	return fmt.Sprintf("%q", ref.Cashier)
}
