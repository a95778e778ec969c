package services

import (
	"github.com/SscSPs/exchange_rates_app/internal/catalog"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, store portsrepo.RateStoreWithTx, cat *catalog.Catalog, opts ...ServiceOption) *portssvc.ServiceContainer {
	defaults := BranchDefaults{
		Lat:   cfg.DefaultBranchLat,
		Lng:   cfg.DefaultBranchLng,
		Hours: cfg.DefaultBranchHours,
	}

	return &portssvc.ServiceContainer{
		Rates:    NewRateService(store, cat, cfg.PrimaryBranchID, cfg.DefaultWholesaleThreshold, opts...),
		Upload:   NewRateUploadService(store, cat, defaults, cfg.DefaultWholesaleThreshold, opts...),
		Currency: NewCurrencyAdminService(store, cat, cfg.DefaultWholesaleThreshold, opts...),
		Branch:   NewBranchService(store, defaults, opts...),
		Reservation: NewReservationService(store, ReservationConfig{
			LocalCurrency:    cfg.LocalCurrency,
			PrimaryBranchID:  cfg.PrimaryBranchID,
			DefaultThreshold: cfg.DefaultWholesaleThreshold,
			TTL:              cfg.ReservationTTL,
		}, opts...),
	}
}
