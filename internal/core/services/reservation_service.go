package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
	"github.com/SscSPs/exchange_rates_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientAmountTolerance is the relative difference under which the amount the
// client displayed is accepted instead of the server's own figure.
var ClientAmountTolerance = decimal.NewFromFloat(0.1)

const defaultReservationPageSize = 20

// ReservationConfig carries the settings the reservation service reads.
type ReservationConfig struct {
	LocalCurrency    string
	PrimaryBranchID  int64
	DefaultThreshold int
	TTL              time.Duration
}

type reservationService struct {
	BaseService
	store portsrepo.RateStoreWithTx
	cfg   ReservationConfig
}

// NewReservationService creates the calculator and reservation service.
func NewReservationService(store portsrepo.RateStoreWithTx, cfg ReservationConfig, opts ...ServiceOption) portssvc.ReservationSvcFacade {
	if cfg.DefaultThreshold <= 0 {
		cfg.DefaultThreshold = domain.DefaultWholesaleThreshold
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	cfg.LocalCurrency = strings.ToUpper(cfg.LocalCurrency)
	return &reservationService{
		BaseService: newBaseService(opts),
		store:       store,
		cfg:         cfg,
	}
}

var _ portssvc.ReservationSvcFacade = (*reservationService)(nil)

// Quote prices an exchange against the rates in effect at the branch.
func (s *reservationService) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error) {
	return s.quote(ctx, s.store, req)
}

func (s *reservationService) quote(ctx context.Context, store portsrepo.RateStore, req domain.QuoteRequest) (*domain.Quote, error) {
	give := strings.ToUpper(strings.TrimSpace(req.GiveCurrency))
	get := strings.ToUpper(strings.TrimSpace(req.GetCurrency))
	if !req.GiveAmount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be positive")
	}
	if (give == s.cfg.LocalCurrency) == (get == s.cfg.LocalCurrency) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("exactly one side of the exchange must be %s", s.cfg.LocalCurrency))
	}

	foreign, buying := get, true
	if give != s.cfg.LocalCurrency {
		foreign, buying = give, false
	}

	rate, err := s.effectiveRate(ctx, store, foreign, req.BranchID)
	if err != nil {
		return nil, err
	}

	q := &domain.Quote{
		GiveAmount:   req.GiveAmount,
		GiveCurrency: give,
		GetCurrency:  get,
		BranchID:     req.BranchID,
	}
	threshold := decimal.NewFromInt(int64(rate.WholesaleThreshold))

	if buying {
		// Customer gives local currency and receives foreign: priced at sell.
		if !rate.Sell.IsPositive() {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no sell rate for %s", foreign))
		}
		q.Rate = rate.Sell
		tentative := req.GiveAmount.Div(rate.Sell)
		if rate.WholesaleThreshold > 0 && tentative.GreaterThanOrEqual(threshold) && rate.WholesaleSell.IsPositive() {
			q.Rate, q.Wholesale = rate.WholesaleSell, true
		}
		q.GetAmount = req.GiveAmount.Div(q.Rate).Round(2)
		return q, nil
	}

	// Customer gives foreign currency and receives local: priced at buy.
	if !rate.Buy.IsPositive() {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no buy rate for %s", foreign))
	}
	q.Rate = rate.Buy
	if rate.WholesaleThreshold > 0 && req.GiveAmount.GreaterThanOrEqual(threshold) && rate.WholesaleBuy.IsPositive() {
		q.Rate, q.Wholesale = rate.WholesaleBuy, true
	}
	q.GetAmount = req.GiveAmount.Mul(q.Rate).Round(2)
	return q, nil
}

// effectiveRate resolves code at the requested branch, falling back to the
// primary branch's override and then to the base rate.
func (s *reservationService) effectiveRate(ctx context.Context, store portsrepo.RateStore, code string, branchID *int64) (domain.ResolvedRate, error) {
	cur, err := store.FindCurrencyByCode(ctx, code)
	if err != nil {
		return domain.ResolvedRate{}, err
	}
	if !cur.IsActive {
		return domain.ResolvedRate{}, apperrors.NewNotFoundError(fmt.Sprintf("currency %s is not available", code))
	}

	candidates := []int64{s.cfg.PrimaryBranchID}
	if branchID != nil {
		if _, err := store.FindBranchByID(ctx, *branchID); err != nil {
			return domain.ResolvedRate{}, err
		}
		if *branchID != s.cfg.PrimaryBranchID {
			candidates = []int64{*branchID, s.cfg.PrimaryBranchID}
		}
	}

	var override *domain.BranchRate
	for _, id := range candidates {
		br, err := store.FindBranchRate(ctx, id, code)
		if err == nil {
			override = br
			break
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return domain.ResolvedRate{}, err
		}
	}

	resolved := domain.ResolveRate(*cur, override, s.cfg.DefaultThreshold)
	if !resolved.IsActive {
		return domain.ResolvedRate{}, apperrors.NewNotFoundError(fmt.Sprintf("currency %s is not available at this branch", code))
	}
	return resolved, nil
}

// CreateReservation prices the request and locks the result. The client's
// displayed amount wins when it is within tolerance of the server's figure.
func (s *reservationService) CreateReservation(ctx context.Context, req dto.CreateReservationRequest) (*domain.Reservation, error) {
	var created domain.Reservation
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.RateStore) error {
		q, err := s.quote(ctx, tx, domain.QuoteRequest{
			GiveAmount:   req.GiveAmount,
			GiveCurrency: req.GiveCurrency,
			GetCurrency:  req.GetCurrency,
			BranchID:     req.BranchID,
		})
		if err != nil {
			return err
		}

		getAmount, rate := q.GetAmount, q.Rate
		if req.GetAmount != nil && withinTolerance(*req.GetAmount, q.GetAmount) {
			getAmount = *req.GetAmount
			if req.Rate != nil && req.Rate.IsPositive() {
				rate = *req.Rate
			}
		}

		now := s.Now()
		created = domain.Reservation{
			ID:           uuid.NewString(),
			GiveAmount:   q.GiveAmount,
			GiveCurrency: q.GiveCurrency,
			GetAmount:    getAmount,
			GetCurrency:  q.GetCurrency,
			Rate:         rate,
			Phone:        strings.TrimSpace(req.Phone),
			CustomerName: strings.TrimSpace(req.CustomerName),
			BranchID:     req.BranchID,
			Status:       domain.ReservationPendingAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
			ExpiresAt:    now.Add(s.cfg.TTL),
		}
		return tx.SaveReservation(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Reservation created",
		slog.String("reservation_id", created.ID),
		slog.String("give_currency", created.GiveCurrency),
		slog.String("get_currency", created.GetCurrency))
	return &created, nil
}

func withinTolerance(client, server decimal.Decimal) bool {
	if !client.IsPositive() || !server.IsPositive() {
		return false
	}
	return client.Sub(server).Abs().Div(server).LessThan(ClientAmountTolerance)
}

// GetReservation returns a reservation with its effective status.
func (s *reservationService) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	r, err := s.store.FindReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Status = r.EffectiveStatus(s.Now())
	return r, nil
}

// ListReservations pages through reservations newest first.
func (s *reservationService) ListReservations(ctx context.Context, params dto.ListReservationsParams) (*dto.ListReservationsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultReservationPageSize
	}
	filter := portsrepo.ReservationFilter{Limit: limit + 1}

	if params.Status != "" {
		st := domain.ReservationStatus(params.Status)
		switch st {
		case domain.ReservationPendingAdmin, domain.ReservationPending, domain.ReservationConfirmed,
			domain.ReservationCompleted, domain.ReservationCancelled:
			filter.Status = &st
		default:
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", params.Status))
		}
	}
	if params.NextToken != "" {
		createdAt, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid next_token")
		}
		filter.After = &portsrepo.ReservationCursor{CreatedAt: createdAt, ID: id}
	}

	rows, err := s.store.ListReservations(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListReservationsResponse{Reservations: []dto.ReservationResponse{}}
	if len(rows) > limit {
		last := rows[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ID)
		resp.NextToken = &token
		rows = rows[:limit]
	}
	now := s.Now()
	for i := range rows {
		rows[i].Status = rows[i].EffectiveStatus(now)
		resp.Reservations = append(resp.Reservations, dto.ToReservationResponse(&rows[i]))
	}
	return resp, nil
}

// TransitionReservation moves a reservation along its lifecycle. An open
// reservation past its expiry can only be cancelled.
func (s *reservationService) TransitionReservation(ctx context.Context, id string, status domain.ReservationStatus, note string) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.RateStore) error {
		r, err := tx.FindReservationByID(ctx, id)
		if err != nil {
			return err
		}
		now := s.Now()
		current := r.EffectiveStatus(now)
		if !domain.CanTransition(current, status) {
			return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, current, status)
		}

		var completedAt *time.Time
		if status == domain.ReservationCompleted {
			completedAt = &now
		}
		if err := tx.UpdateReservationStatus(ctx, id, status, note, completedAt, now); err != nil {
			return err
		}
		out, err = tx.FindReservationByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Reservation status changed",
		slog.String("reservation_id", id), slog.String("status", string(status)))
	return out, nil
}
