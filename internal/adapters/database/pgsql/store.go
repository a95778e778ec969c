// Package pgsql is the PostgreSQL RateStore.
package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// repo implements every repository over a pool or an open transaction.
type repo struct {
	db querier
}

// Store is the pool-backed RateStore that can open transactions.
type Store struct {
	BaseRepository
	repo
}

// Ensure implementation matches interface
var (
	_ portsrepo.RateStoreWithTx = (*Store)(nil)
	_ portsrepo.RateStore       = (*repo)(nil)
)

// NewStore creates a store over dbPool.
func NewStore(dbPool *pgxpool.Pool) *Store {
	return &Store{
		BaseRepository: BaseRepository{Pool: dbPool},
		repo:           repo{db: dbPool},
	}
}

// WithinTransaction runs fn inside a single database transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, store portsrepo.RateStore) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.Rollback(ctx, tx) //nolint:errcheck

	if err := fn(ctx, &repo{db: tx}); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}
