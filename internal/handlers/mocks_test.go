package handlers_test

import (
	"bytes"
	"context"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) ListRates(ctx context.Context, branchID *int64) ([]domain.ResolvedRate, domain.RatesMeta, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, domain.RatesMeta{}, args.Error(2)
	}
	return args.Get(0).([]domain.ResolvedRate), args.Get(1).(domain.RatesMeta), args.Error(2)
}

func (m *MockRateService) EditBranchRate(ctx context.Context, branchID int64, code string, req dto.EditBranchRateRequest, adminID string) (*domain.BranchRate, error) {
	args := m.Called(ctx, branchID, code, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BranchRate), args.Error(1)
}

func (m *MockRateService) RevertBranchRate(ctx context.Context, branchID int64, code string, adminID string) error {
	args := m.Called(ctx, branchID, code, adminID)
	return args.Error(0)
}

var _ portssvc.RateSvcFacade = (*MockRateService)(nil)

// --- Mock UploadService ---
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, filename string, data []byte, adminID string) (*domain.UploadSummary, error) {
	args := m.Called(ctx, filename, data, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadSummary), args.Error(1)
}

func (m *MockUploadService) ExportTemplate(ctx context.Context) (*bytes.Buffer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bytes.Buffer), args.Error(1)
}

var _ portssvc.RateUploadSvc = (*MockUploadService)(nil)

// --- Mock CurrencyAdminService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) ListAllCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, adminID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) UpdateCurrency(ctx context.Context, code string, req dto.UpdateCurrencyRequest, adminID string) (*domain.Currency, error) {
	args := m.Called(ctx, code, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

var _ portssvc.CurrencyAdminSvcFacade = (*MockCurrencyService)(nil)

// --- Mock BranchService ---
type MockBranchService struct {
	mock.Mock
}

func (m *MockBranchService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

func (m *MockBranchService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest, adminID string) (*domain.Branch, error) {
	args := m.Called(ctx, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

var _ portssvc.BranchSvcFacade = (*MockBranchService)(nil)

// --- Mock ReservationService ---
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockReservationService) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) ListReservations(ctx context.Context, params dto.ListReservationsParams) (*dto.ListReservationsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListReservationsResponse), args.Error(1)
}

func (m *MockReservationService) CreateReservation(ctx context.Context, req dto.CreateReservationRequest) (*domain.Reservation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) TransitionReservation(ctx context.Context, id string, status domain.ReservationStatus, note string) (*domain.Reservation, error) {
	args := m.Called(ctx, id, status, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

var _ portssvc.ReservationSvcFacade = (*MockReservationService)(nil)
