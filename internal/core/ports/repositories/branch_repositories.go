package repositories

import (
	"context"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
)

// BranchReader defines read operations for branches
type BranchReader interface {
	FindBranchByID(ctx context.Context, id int64) (*domain.Branch, error)
	FindBranchByNumber(ctx context.Context, number int) (*domain.Branch, error)
	// FindBranchesByAddress matches the stored address exactly.
	FindBranchesByAddress(ctx context.Context, address string) ([]domain.Branch, error)
	// FindBranchByCashier matches the cashier name case-insensitively.
	FindBranchByCashier(ctx context.Context, cashier string) (*domain.Branch, error)
	// ListBranches returns all branches by display order.
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	CountBranches(ctx context.Context) (int, error)
}

// BranchWriter defines write operations for branches
type BranchWriter interface {
	// CreateBranch inserts branch and sets its ID.
	CreateBranch(ctx context.Context, branch *domain.Branch) error
	UpdateBranch(ctx context.Context, branch domain.Branch) error
}

// BranchRepositoryFacade combines all branch-related repository interfaces
type BranchRepositoryFacade interface {
	BranchReader
	BranchWriter
}
