package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/core/ingest"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// BranchDefaults fill in branches created from an upload that carries no location.
type BranchDefaults struct {
	Lat   decimal.Decimal
	Lng   decimal.Decimal
	Hours string
}

// branchResolver maps spreadsheet branch references onto stored branches,
// creating the ones it cannot find. It works inside the upload transaction.
type branchResolver struct {
	store    portsrepo.RateStore
	defaults BranchDefaults
	now      time.Time
	by       string
}

func newBranchResolver(store portsrepo.RateStore, defaults BranchDefaults, now time.Time, by string) *branchResolver {
	return &branchResolver{store: store, defaults: defaults, now: now, by: by}
}

// resolveHybrid matches by number, then by address among branches whose number
// is unset or equal, then creates. The branch takes displayOrder.
func (r *branchResolver) resolveHybrid(ctx context.Context, ref ingest.BranchRef, displayOrder int) (int64, error) {
	if ref.Number != nil {
		b, err := r.store.FindBranchByNumber(ctx, *ref.Number)
		switch {
		case err == nil:
			changed := false
			if ref.Address != "" && b.Address != ref.Address {
				b.Address = ref.Address
				changed = true
			}
			return b.ID, r.placeBranch(ctx, b, displayOrder, changed)
		case !errors.Is(err, apperrors.ErrNotFound):
			return 0, err
		}
	}

	sameAddress, err := r.store.FindBranchesByAddress(ctx, ref.Address)
	if err != nil {
		return 0, err
	}
	for i := range sameAddress {
		b := &sameAddress[i]
		if ref.Number != nil && b.Number != nil && *b.Number != *ref.Number {
			continue
		}
		changed := false
		if ref.Number != nil && b.Number == nil {
			n := *ref.Number
			b.Number = &n
			changed = true
		}
		return b.ID, r.placeBranch(ctx, b, displayOrder, changed)
	}

	nb := r.newBranch(ref.Address, displayOrder)
	if len(sameAddress) > 0 {
		src := sameAddress[0]
		nb.Lat, nb.Lng, nb.Hours, nb.Phone = src.Lat, src.Lng, src.Hours, src.Phone
	}
	if ref.Number != nil {
		n := *ref.Number
		nb.Number = &n
	} else {
		count, err := r.store.CountBranches(ctx)
		if err != nil {
			return 0, err
		}
		n := count + 1
		nb.Number = &n
	}
	if err := r.store.CreateBranch(ctx, nb); err != nil {
		return 0, fmt.Errorf("failed to create branch %q: %w", ref.Address, err)
	}
	return nb.ID, nil
}

// resolveLegacy treats the header value as a branch id first, then as a
// branch number, and creates a placeholder branch when neither exists.
func (r *branchResolver) resolveLegacy(ctx context.Context, ref ingest.BranchRef, position int) (int64, error) {
	if ref.Number == nil {
		return 0, fmt.Errorf("%w: legacy branch column without id", apperrors.ErrValidation)
	}
	id := *ref.Number

	b, err := r.store.FindBranchByID(ctx, int64(id))
	if errors.Is(err, apperrors.ErrNotFound) {
		b, err = r.store.FindBranchByNumber(ctx, id)
	}
	switch {
	case err == nil:
		return b.ID, r.placeBranch(ctx, b, position, false)
	case !errors.Is(err, apperrors.ErrNotFound):
		return 0, err
	}

	nb := r.newBranch(fmt.Sprintf("Відділення %d", id), position)
	n := id
	nb.Number = &n
	if err := r.store.CreateBranch(ctx, nb); err != nil {
		return 0, fmt.Errorf("failed to create branch %d: %w", id, err)
	}
	return nb.ID, nil
}

// resolveSheetRef finds the branch named by a branch-sheet row. It never creates.
func (r *branchResolver) resolveSheetRef(ctx context.Context, ref ingest.BranchSheetRef) (*domain.Branch, error) {
	if ref.ID != nil {
		return r.store.FindBranchByID(ctx, *ref.ID)
	}
	if strings.TrimSpace(ref.Cashier) != "" {
		return r.store.FindBranchByCashier(ctx, ref.Cashier)
	}
	return nil, apperrors.ErrNotFound
}

// placeBranch stores the display order, and any other pending change.
func (r *branchResolver) placeBranch(ctx context.Context, b *domain.Branch, displayOrder int, changed bool) error {
	if displayOrder > 0 && b.DisplayOrder != displayOrder {
		b.DisplayOrder = displayOrder
		changed = true
	}
	if !changed {
		return nil
	}
	b.LastUpdatedAt = r.now
	b.LastUpdatedBy = r.by
	if err := r.store.UpdateBranch(ctx, *b); err != nil {
		return fmt.Errorf("failed to update branch %d: %w", b.ID, err)
	}
	return nil
}

func (r *branchResolver) newBranch(address string, displayOrder int) *domain.Branch {
	return &domain.Branch{
		Address:      address,
		Hours:        r.defaults.Hours,
		Lat:          r.defaults.Lat,
		Lng:          r.defaults.Lng,
		IsOpen:       true,
		DisplayOrder: displayOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     r.now,
			CreatedBy:     r.by,
			LastUpdatedAt: r.now,
			LastUpdatedBy: r.by,
		},
	}
}
