package services

import (
	"bytes"
	"context"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
)

// RateReaderSvc resolves the effective rates shown to customers.
type RateReaderSvc interface {
	// ListRates resolves every active currency at branchID, or at the primary
	// branch when branchID is nil.
	ListRates(ctx context.Context, branchID *int64) ([]domain.ResolvedRate, domain.RatesMeta, error)
}

// BranchRateWriterSvc edits single branch overrides by hand.
type BranchRateWriterSvc interface {
	// EditBranchRate applies a partial override. It returns nil when the edit
	// reverted the branch to the base rate.
	EditBranchRate(ctx context.Context, branchID int64, code string, req dto.EditBranchRateRequest, adminID string) (*domain.BranchRate, error)
	// RevertBranchRate deletes the override so the branch follows the base rate.
	RevertBranchRate(ctx context.Context, branchID int64, code string, adminID string) error
}

// RateSvcFacade combines rate reads and manual override edits
type RateSvcFacade interface {
	RateReaderSvc
	BranchRateWriterSvc
}

// RateUploadSvc ingests rate workbooks and exports the editable template.
type RateUploadSvc interface {
	Upload(ctx context.Context, filename string, data []byte, adminID string) (*domain.UploadSummary, error)
	ExportTemplate(ctx context.Context) (*bytes.Buffer, error)
}
