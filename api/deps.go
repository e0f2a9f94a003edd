package api

import (
	"go.uber.org/zap"

	"storefront.GO/config"
	"storefront.GO/core/storage"
	"storefront.GO/service/checkout"
	"storefront.GO/service/guest"
)

// NewDeps wires the services over kv.
func NewDeps(cfg *config.Config, kv storage.KeyValue, logger *zap.Logger) *Deps {
	if logger == nil {
		logger = zap.NewNop()
	}
	guestOpts := []guest.Option{guest.WithLogger(logger)}
	if cfg.GuestIdleTTL > 0 {
		guestOpts = append(guestOpts, guest.WithIdleTTL(cfg.GuestIdleTTL))
	}
	if cfg.GuestMaxSessions > 0 {
		guestOpts = append(guestOpts, guest.WithMaxSessions(cfg.GuestMaxSessions))
	}
	return &Deps{
		Config:   cfg,
		Guests:   guest.NewRegistry(kv, cfg.StoragePrefix, guestOpts...),
		Checkout: checkout.NewService(checkout.NewOrderClient(cfg.APIBaseURL, logger), cfg.FreeShippingThreshold, cfg.ShippingFee, logger),
		Admin:    storage.Namespace(kv, storage.AdminNamespace),
		Logger:   logger,
	}
}
