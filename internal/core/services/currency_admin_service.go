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
)

type currencyAdminService struct {
	BaseService
	store            portsrepo.RateStoreWithTx
	catalog          *catalog.Catalog
	defaultThreshold int
}

// NewCurrencyAdminService creates the service behind manual currency edits.
func NewCurrencyAdminService(store portsrepo.RateStoreWithTx, cat *catalog.Catalog, defaultThreshold int, opts ...ServiceOption) portssvc.CurrencyAdminSvcFacade {
	if defaultThreshold <= 0 {
		defaultThreshold = domain.DefaultWholesaleThreshold
	}
	return &currencyAdminService{
		BaseService:      newBaseService(opts),
		store:            store,
		catalog:          cat,
		defaultThreshold: defaultThreshold,
	}
}

var _ portssvc.CurrencyAdminSvcFacade = (*currencyAdminService)(nil)

func (s *currencyAdminService) ListAllCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.store.ListCurrencies(ctx, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, err
	}
	return currencies, nil
}

func (s *currencyAdminService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, adminID string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if !req.BuyRate.IsPositive() || !req.SellRate.IsPositive() {
		return nil, apperrors.NewValidationError("buyRate and sellRate must be positive")
	}
	if req.WholesaleBuyRate.IsNegative() || req.WholesaleSellRate.IsNegative() {
		return nil, apperrors.NewValidationError("wholesale rates must not be negative")
	}

	name, nameUK := s.catalog.Names(code)
	if req.Name != "" {
		name = req.Name
	}
	if req.NameUK != "" {
		nameUK = req.NameUK
	}
	flag := req.Flag
	if flag == "" {
		flag = s.catalog.Flag(code)
	}
	threshold := s.defaultThreshold
	if req.WholesaleThreshold != nil {
		threshold = *req.WholesaleThreshold
	}

	var created domain.Currency
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.RateStore) error {
		_, err := tx.FindCurrencyByCode(ctx, code)
		switch {
		case err == nil:
			return fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, code)
		case !errors.Is(err, apperrors.ErrNotFound):
			return err
		}

		now := s.Now()
		created = domain.Currency{
			Code:   code,
			Name:   name,
			NameUK: nameUK,
			Flag:   flag,
			RateQuad: domain.RateQuad{
				Buy:           req.BuyRate,
				Sell:          req.SellRate,
				WholesaleBuy:  req.WholesaleBuyRate,
				WholesaleSell: req.WholesaleSellRate,
			},
			WholesaleThreshold: threshold,
			IsActive:           true,
			IsPopular:          req.IsPopular || s.catalog.IsPopular(code),
			DisplayOrder:       req.DisplayOrder,
			AuditFields: domain.AuditFields{
				CreatedAt: now, CreatedBy: adminID, LastUpdatedAt: now, LastUpdatedBy: adminID,
			},
		}
		if err := tx.SaveCurrency(ctx, created); err != nil {
			return err
		}
		return tx.TouchRatesMeta(ctx, now, adminID)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_code", code))
	return &created, nil
}

func (s *currencyAdminService) UpdateCurrency(ctx context.Context, code string, req dto.UpdateCurrencyRequest, adminID string) (*domain.Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var updated *domain.Currency
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.RateStore) error {
		cur, err := tx.FindCurrencyByCode(ctx, code)
		if err != nil {
			return err
		}

		if req.Name != nil {
			cur.Name = *req.Name
		}
		if req.NameUK != nil {
			cur.NameUK = *req.NameUK
		}
		if req.Flag != nil {
			cur.Flag = *req.Flag
		}
		if req.BuyRate != nil {
			cur.Buy = *req.BuyRate
		}
		if req.SellRate != nil {
			cur.Sell = *req.SellRate
		}
		if req.WholesaleBuyRate != nil {
			cur.WholesaleBuy = *req.WholesaleBuyRate
		}
		if req.WholesaleSellRate != nil {
			cur.WholesaleSell = *req.WholesaleSellRate
		}
		if req.WholesaleThreshold != nil {
			cur.WholesaleThreshold = *req.WholesaleThreshold
		}
		if req.IsActive != nil {
			cur.IsActive = *req.IsActive
		}
		if req.IsPopular != nil {
			cur.IsPopular = *req.IsPopular
		}
		if req.DisplayOrder != nil {
			cur.DisplayOrder = *req.DisplayOrder
		}
		if cur.Buy.IsNegative() || cur.Sell.IsNegative() || cur.WholesaleBuy.IsNegative() || cur.WholesaleSell.IsNegative() {
			return apperrors.NewValidationError("rates must not be negative")
		}

		now := s.Now()
		cur.LastUpdatedAt = now
		cur.LastUpdatedBy = adminID
		if err := tx.SaveCurrency(ctx, *cur); err != nil {
			return err
		}
		updated = cur
		return tx.TouchRatesMeta(ctx, now, adminID)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Currency updated", slog.String("currency_code", code))
	return updated, nil
}
