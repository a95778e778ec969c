package repositories

import "context"

// TransactionManager runs a unit of work atomically. The store handed to fn is
// bound to the transaction; fn must not retain it after returning. Returning an
// error from fn rolls everything back.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, store RateStore) error) error
}
