package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/catalog"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
	"github.com/shopspring/decimal"
)

type rateService struct {
	BaseService
	store            portsrepo.RateStoreWithTx
	catalog          *catalog.Catalog
	primaryBranchID  int64
	defaultThreshold int
}

// NewRateService creates the rate resolution and override editing service.
func NewRateService(store portsrepo.RateStoreWithTx, cat *catalog.Catalog, primaryBranchID int64, defaultThreshold int, opts ...ServiceOption) portssvc.RateSvcFacade {
	if defaultThreshold <= 0 {
		defaultThreshold = domain.DefaultWholesaleThreshold
	}
	return &rateService{
		BaseService:      newBaseService(opts),
		store:            store,
		catalog:          cat,
		primaryBranchID:  primaryBranchID,
		defaultThreshold: defaultThreshold,
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// ListRates resolves every active currency at one branch. An explicitly
// requested branch must exist; the primary branch may be absent, in which
// case base rates are returned.
func (s *rateService) ListRates(ctx context.Context, branchID *int64) ([]domain.ResolvedRate, domain.RatesMeta, error) {
	id := s.primaryBranchID
	if branchID != nil {
		id = *branchID
		if _, err := s.store.FindBranchByID(ctx, id); err != nil {
			return nil, domain.RatesMeta{}, err
		}
	}

	currencies, err := s.store.ListCurrencies(ctx, true)
	if err != nil {
		return nil, domain.RatesMeta{}, fmt.Errorf("failed to list active currencies: %w", err)
	}
	overrides, err := s.store.ListBranchRatesByBranch(ctx, id)
	if err != nil {
		return nil, domain.RatesMeta{}, fmt.Errorf("failed to list overrides for branch %d: %w", id, err)
	}
	byCode := make(map[string]*domain.BranchRate, len(overrides))
	for i := range overrides {
		byCode[overrides[i].CurrencyCode] = &overrides[i]
	}

	out := make([]domain.ResolvedRate, 0, len(currencies))
	for _, c := range currencies {
		out = append(out, domain.ResolveRate(c, byCode[c.Code], s.defaultThreshold))
	}

	meta, err := s.store.GetRatesMeta(ctx)
	if err != nil {
		return nil, domain.RatesMeta{}, err
	}
	s.LogDebug(ctx, "Rates resolved", slog.Int64("branch_id", id), slog.Int("count", len(out)))
	return out, meta, nil
}

// EditBranchRate applies a manual override. Setting isActive to true on a
// non-major currency with no price fields deletes the override instead, so the
// branch follows the base rate again. A request without isActive never reverts.
func (s *rateService) EditBranchRate(ctx context.Context, branchID int64, code string, req dto.EditBranchRateRequest, adminID string) (*domain.BranchRate, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := validateEdit(req); err != nil {
		return nil, err
	}

	var result *domain.BranchRate
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.RateStore) error {
		if _, err := tx.FindBranchByID(ctx, branchID); err != nil {
			return err
		}
		if _, err := tx.FindCurrencyByCode(ctx, code); err != nil {
			return err
		}
		now := s.Now()

		if !req.HasPrices() && !s.catalog.IsMajor(code) && req.IsActive != nil && *req.IsActive {
			if err := tx.DeleteBranchRate(ctx, branchID, code); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			return tx.TouchRatesMeta(ctx, now, adminID)
		}

		br, err := tx.FindBranchRate(ctx, branchID, code)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			br = &domain.BranchRate{
				BranchID:           branchID,
				CurrencyCode:       code,
				WholesaleThreshold: s.defaultThreshold,
				IsActive:           true,
				AuditFields:        domain.AuditFields{CreatedAt: now, CreatedBy: adminID},
			}
		case err != nil:
			return err
		}

		if req.BuyRate != nil {
			br.Buy = *req.BuyRate
		}
		if req.SellRate != nil {
			br.Sell = *req.SellRate
		}
		if req.WholesaleBuyRate != nil {
			br.WholesaleBuy = *req.WholesaleBuyRate
		}
		if req.WholesaleSellRate != nil {
			br.WholesaleSell = *req.WholesaleSellRate
		}
		if req.WholesaleThreshold != nil {
			br.WholesaleThreshold = *req.WholesaleThreshold
		}
		if req.IsActive != nil {
			br.IsActive = *req.IsActive
		}
		br.LastUpdatedAt = now
		br.LastUpdatedBy = adminID

		if err := tx.SaveBranchRate(ctx, *br); err != nil {
			return err
		}
		result = br
		return tx.TouchRatesMeta(ctx, now, adminID)
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Branch rate edited",
		slog.Int64("branch_id", branchID), slog.String("currency_code", code), slog.Bool("reverted", result == nil))
	return result, nil
}

// RevertBranchRate removes an override. A missing override is ErrNotFound.
func (s *rateService) RevertBranchRate(ctx context.Context, branchID int64, code string, adminID string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	return s.store.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.RateStore) error {
		if err := tx.DeleteBranchRate(ctx, branchID, code); err != nil {
			return err
		}
		return tx.TouchRatesMeta(ctx, s.Now(), adminID)
	})
}

func validateEdit(req dto.EditBranchRateRequest) error {
	fields := map[string]*decimal.Decimal{
		"buyRate":           req.BuyRate,
		"sellRate":          req.SellRate,
		"wholesaleBuyRate":  req.WholesaleBuyRate,
		"wholesaleSellRate": req.WholesaleSellRate,
	}
	for name, v := range fields {
		if v != nil && v.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", apperrors.ErrValidation, name)
		}
	}
	if req.WholesaleThreshold != nil && *req.WholesaleThreshold < 0 {
		return fmt.Errorf("%w: wholesaleThreshold must not be negative", apperrors.ErrValidation)
	}
	return nil
}
