// Package memory is an in-process RateStore. Transactions work on a copy of
// the data that replaces the live copy on commit, so a failed unit of work
// leaves nothing behind.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
)

type rateKey struct {
	branchID int64
	code     string
}

type state struct {
	currencies   map[string]domain.Currency
	branches     map[int64]domain.Branch
	branchRates  map[rateKey]domain.BranchRate
	reservations map[string]domain.Reservation
	meta         domain.RatesMeta
	nextBranchID int64
	nextRateID   int64
}

func newState() *state {
	return &state{
		currencies:   make(map[string]domain.Currency),
		branches:     make(map[int64]domain.Branch),
		branchRates:  make(map[rateKey]domain.BranchRate),
		reservations: make(map[string]domain.Reservation),
		nextBranchID: 1,
		nextRateID:   1,
	}
}

func (s *state) clone() *state {
	c := &state{
		currencies:   make(map[string]domain.Currency, len(s.currencies)),
		branches:     make(map[int64]domain.Branch, len(s.branches)),
		branchRates:  make(map[rateKey]domain.BranchRate, len(s.branchRates)),
		reservations: make(map[string]domain.Reservation, len(s.reservations)),
		meta:         s.meta,
		nextBranchID: s.nextBranchID,
		nextRateID:   s.nextRateID,
	}
	for k, v := range s.currencies {
		c.currencies[k] = v
	}
	for k, v := range s.branches {
		c.branches[k] = v
	}
	for k, v := range s.branchRates {
		c.branchRates[k] = v
	}
	for k, v := range s.reservations {
		c.reservations[k] = v
	}
	return c
}

// repo implements every repository over one state.
type repo struct {
	mu *sync.RWMutex
	st *state
}

// Store is the top-level in-memory store.
type Store struct {
	repo
	txMu sync.Mutex
}

var (
	_ portsrepo.RateStoreWithTx = (*Store)(nil)
	_ portsrepo.RateStore       = (*repo)(nil)
)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{repo: repo{mu: &sync.RWMutex{}, st: newState()}}
}

// WithinTransaction runs fn against a private copy and publishes it when fn
// succeeds. Transactions are serialized.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, store portsrepo.RateStore) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	working := s.st.clone()
	s.mu.RUnlock()

	if err := fn(ctx, &repo{mu: &sync.RWMutex{}, st: working}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}

	s.mu.Lock()
	*s.st = *working
	s.mu.Unlock()
	return nil
}

// --- currencies ---

func (r *repo) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.st.currencies[strings.ToUpper(currencyCode)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r *repo) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Currency, 0, len(r.st.currencies))
	for _, c := range r.st.currencies {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (r *repo) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	currency.Code = strings.ToUpper(currency.Code)
	if existing, ok := r.st.currencies[currency.Code]; ok && !existing.CreatedAt.IsZero() {
		currency.CreatedAt = existing.CreatedAt
		currency.CreatedBy = existing.CreatedBy
	}
	r.st.currencies[currency.Code] = currency
	return nil
}

func (r *repo) DeactivateCurrenciesExcept(ctx context.Context, codes []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	keep := toSet(codes)
	n := 0
	for code, c := range r.st.currencies {
		if c.IsActive && !keep[code] {
			c.IsActive = false
			r.st.currencies[code] = c
			n++
		}
	}
	return n, nil
}

// --- branches ---

func (r *repo) FindBranchByID(ctx context.Context, id int64) (*domain.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.st.branches[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &b, nil
}

func (r *repo) FindBranchByNumber(ctx context.Context, number int) (*domain.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.sortedBranches() {
		if b.Number != nil && *b.Number == number {
			return &b, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *repo) FindBranchesByAddress(ctx context.Context, address string) ([]domain.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Branch
	for _, b := range r.sortedBranches() {
		if b.Address == address {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *repo) FindBranchByCashier(ctx context.Context, cashier string) (*domain.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	want := strings.ToLower(strings.TrimSpace(cashier))
	for _, b := range r.sortedBranches() {
		if b.Cashier != nil && strings.ToLower(strings.TrimSpace(*b.Cashier)) == want {
			return &b, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *repo) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedBranches(), nil
}

func (r *repo) CountBranches(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.st.branches), nil
}

func (r *repo) CreateBranch(ctx context.Context, branch *domain.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	branch.ID = r.st.nextBranchID
	r.st.nextBranchID++
	r.st.branches[branch.ID] = *branch
	return nil
}

func (r *repo) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.st.branches[branch.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.st.branches[branch.ID] = branch
	return nil
}

// sortedBranches must be called with the lock held.
func (r *repo) sortedBranches() []domain.Branch {
	out := make([]domain.Branch, 0, len(r.st.branches))
	for _, b := range r.st.branches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// --- branch rates ---

func (r *repo) FindBranchRate(ctx context.Context, branchID int64, currencyCode string) (*domain.BranchRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	br, ok := r.st.branchRates[rateKey{branchID, strings.ToUpper(currencyCode)}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &br, nil
}

func (r *repo) ListBranchRatesByBranch(ctx context.Context, branchID int64) ([]domain.BranchRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.BranchRate
	for _, br := range r.sortedRates() {
		if br.BranchID == branchID {
			out = append(out, br)
		}
	}
	return out, nil
}

func (r *repo) ListBranchRates(ctx context.Context) ([]domain.BranchRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedRates(), nil
}

func (r *repo) SaveBranchRate(ctx context.Context, rate domain.BranchRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rate.CurrencyCode = strings.ToUpper(rate.CurrencyCode)
	if _, ok := r.st.branches[rate.BranchID]; !ok {
		return fmt.Errorf("%w: branch %d does not exist", apperrors.ErrValidation, rate.BranchID)
	}
	if _, ok := r.st.currencies[rate.CurrencyCode]; !ok {
		return fmt.Errorf("%w: currency %s does not exist", apperrors.ErrValidation, rate.CurrencyCode)
	}
	key := rateKey{rate.BranchID, rate.CurrencyCode}
	if existing, ok := r.st.branchRates[key]; ok {
		rate.ID = existing.ID
		rate.CreatedAt = existing.CreatedAt
		rate.CreatedBy = existing.CreatedBy
	} else {
		rate.ID = r.st.nextRateID
		r.st.nextRateID++
	}
	r.st.branchRates[key] = rate
	return nil
}

func (r *repo) DeleteBranchRate(ctx context.Context, branchID int64, currencyCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := rateKey{branchID, strings.ToUpper(currencyCode)}
	if _, ok := r.st.branchRates[key]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.st.branchRates, key)
	return nil
}

func (r *repo) DeactivateBranchRatesExcept(ctx context.Context, codes []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	keep := toSet(codes)
	n := 0
	for k, br := range r.st.branchRates {
		if br.IsActive && !keep[k.code] {
			br.IsActive = false
			r.st.branchRates[k] = br
			n++
		}
	}
	return n, nil
}

func (r *repo) sortedRates() []domain.BranchRate {
	out := make([]domain.BranchRate, 0, len(r.st.branchRates))
	for _, br := range r.st.branchRates {
		out = append(out, br)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BranchID != out[j].BranchID {
			return out[i].BranchID < out[j].BranchID
		}
		return out[i].CurrencyCode < out[j].CurrencyCode
	})
	return out
}

// --- reservations ---

func (r *repo) SaveReservation(ctx context.Context, reservation domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.st.reservations[reservation.ID]; dup {
		return apperrors.ErrDuplicate
	}
	r.st.reservations[reservation.ID] = reservation
	return nil
}

func (r *repo) FindReservationByID(ctx context.Context, id string) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.st.reservations[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &res, nil
}

func (r *repo) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus, note string, completedAt *time.Time, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.st.reservations[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	res.Status = status
	if note != "" {
		res.OperatorNote = note
	}
	if completedAt != nil {
		res.CompletedAt = completedAt
	}
	res.UpdatedAt = updatedAt
	r.st.reservations[id] = res
	return nil
}

func (r *repo) ListReservations(ctx context.Context, filter portsrepo.ReservationFilter) ([]domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.Reservation, 0, len(r.st.reservations))
	for _, res := range r.st.reservations {
		if filter.Status != nil && res.Status != *filter.Status {
			continue
		}
		if filter.After != nil && !before(res, *filter.After) {
			continue
		}
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool {
		return before(all[j], portsrepo.ReservationCursor{CreatedAt: all[i].CreatedAt, ID: all[i].ID})
	})
	if filter.Limit > 0 && len(all) > filter.Limit {
		all = all[:filter.Limit]
	}
	return all, nil
}

// before reports whether res sorts after the cursor in newest-first order.
func before(res domain.Reservation, c portsrepo.ReservationCursor) bool {
	if !res.CreatedAt.Equal(c.CreatedAt) {
		return res.CreatedAt.Before(c.CreatedAt)
	}
	return res.ID < c.ID
}

// --- meta ---

func (r *repo) GetRatesMeta(ctx context.Context) (domain.RatesMeta, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.st.meta, nil
}

func (r *repo) TouchRatesMeta(ctx context.Context, at time.Time, by string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.meta = domain.RatesMeta{UpdatedAt: at, UpdatedBy: by}
	return nil
}

func toSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[strings.ToUpper(c)] = true
	}
	return set
}
