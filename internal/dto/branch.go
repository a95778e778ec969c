package dto

import (
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBranchRequest defines the data needed to add a branch by hand.
type CreateBranchRequest struct {
	Number       *int             `json:"number" binding:"omitempty,min=1"`
	Address      string           `json:"address" binding:"required"`
	Hours        string           `json:"hours"`
	Phone        string           `json:"phone"`
	Lat          *decimal.Decimal `json:"lat"`
	Lng          *decimal.Decimal `json:"lng"`
	Cashier      *string          `json:"cashier"`
	DisplayOrder int              `json:"displayOrder" binding:"min=0"`
}

// BranchResponse is the public view of a branch.
type BranchResponse struct {
	ID           int64           `json:"id"`
	Number       *int            `json:"number,omitempty"`
	Address      string          `json:"address"`
	Hours        string          `json:"hours"`
	Phone        string          `json:"phone"`
	Lat          decimal.Decimal `json:"lat"`
	Lng          decimal.Decimal `json:"lng"`
	IsOpen       bool            `json:"isOpen"`
	DisplayOrder int             `json:"displayOrder"`
}

// ToBranchResponse converts a domain.Branch to BranchResponse DTO
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		ID:           b.ID,
		Number:       b.Number,
		Address:      b.Address,
		Hours:        b.Hours,
		Phone:        b.Phone,
		Lat:          b.Lat,
		Lng:          b.Lng,
		IsOpen:       b.IsOpen,
		DisplayOrder: b.DisplayOrder,
	}
}

// ToListBranchResponse converts domain branches to BranchResponse DTOs
func ToListBranchResponse(branches []domain.Branch) []BranchResponse {
	res := make([]BranchResponse, len(branches))
	for i := range branches {
		res[i] = ToBranchResponse(&branches[i])
	}
	return res
}
