package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
)

type branchService struct {
	BaseService
	store    portsrepo.RateStoreWithTx
	defaults BranchDefaults
}

// NewBranchService creates the branch listing and creation service.
func NewBranchService(store portsrepo.RateStoreWithTx, defaults BranchDefaults, opts ...ServiceOption) portssvc.BranchSvcFacade {
	return &branchService{
		BaseService: newBaseService(opts),
		store:       store,
		defaults:    defaults,
	}
}

var _ portssvc.BranchSvcFacade = (*branchService)(nil)

func (s *branchService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.store.ListBranches(ctx)
}

func (s *branchService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest, adminID string) (*domain.Branch, error) {
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	var created *domain.Branch
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.RateStore) error {
		if req.Number != nil {
			_, err := tx.FindBranchByNumber(ctx, *req.Number)
			switch {
			case err == nil:
				return fmt.Errorf("%w: branch number %d", apperrors.ErrDuplicate, *req.Number)
			case !errors.Is(err, apperrors.ErrNotFound):
				return err
			}
		}

		now := s.Now()
		b := newBranchResolver(tx, s.defaults, now, adminID).newBranch(address, req.DisplayOrder)
		b.Number = req.Number
		b.Phone = req.Phone
		b.Cashier = req.Cashier
		if req.Hours != "" {
			b.Hours = req.Hours
		}
		if req.Lat != nil {
			b.Lat = *req.Lat
		}
		if req.Lng != nil {
			b.Lng = *req.Lng
		}
		if err := tx.CreateBranch(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Branch created", slog.Int64("branch_id", created.ID), slog.String("address", created.Address))
	return created, nil
}
