package repositories

import (
	"context"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
)

// BranchRateReader defines read operations for branch overrides
type BranchRateReader interface {
	FindBranchRate(ctx context.Context, branchID int64, currencyCode string) (*domain.BranchRate, error)
	ListBranchRatesByBranch(ctx context.Context, branchID int64) ([]domain.BranchRate, error)
	ListBranchRates(ctx context.Context) ([]domain.BranchRate, error)
}

// BranchRateWriter defines write operations for branch overrides
type BranchRateWriter interface {
	// SaveBranchRate upserts on (branch_id, currency_code).
	SaveBranchRate(ctx context.Context, rate domain.BranchRate) error
	DeleteBranchRate(ctx context.Context, branchID int64, currencyCode string) error
	// DeactivateBranchRatesExcept disables every override whose currency is not in codes.
	DeactivateBranchRatesExcept(ctx context.Context, codes []string) (int, error)
}

// BranchRateRepositoryFacade combines all branch rate repository interfaces
type BranchRateRepositoryFacade interface {
	BranchRateReader
	BranchRateWriter
}
