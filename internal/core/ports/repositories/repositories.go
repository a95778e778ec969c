package repositories

// RateStore is every repository the rate aggregate needs, bound either to the
// connection pool or to an open transaction.
type RateStore interface {
	CurrencyRepositoryFacade
	BranchRepositoryFacade
	BranchRateRepositoryFacade
	ReservationRepositoryFacade
	RatesMetaRepository
}

// RateStoreWithTx is a RateStore that can also open transactions.
type RateStoreWithTx interface {
	RateStore
	TransactionManager
}
