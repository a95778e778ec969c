package services

import (
	"context"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
)

// BranchReaderSvc defines read operations for branches
type BranchReaderSvc interface {
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

// BranchWriterSvc defines write operations for branches
type BranchWriterSvc interface {
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest, adminID string) (*domain.Branch, error)
}

// BranchSvcFacade combines all branch-related service interfaces
type BranchSvcFacade interface {
	BranchReaderSvc
	BranchWriterSvc
}
