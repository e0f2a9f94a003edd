// Package jobs holds the storefront's scheduled jobs. The server hands its
// own storage to Use; under cron:start the storage is opened from config.
package jobs

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"storefront.GO/config"
	"storefront.GO/core/storage"
	"storefront.GO/cron"
)

var (
	mu     sync.Mutex
	kv     storage.KeyValue
	logger *zap.Logger
)

// Use sets the storage and logger jobs run against.
func Use(store storage.KeyValue, l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	kv = store
	logger = l
}

// Configure applies the schedules that come from cfg. Call it before the
// scheduler starts.
func Configure(cfg *config.Config) error {
	if cfg.SessionCheckInterval > 0 {
		if err := cron.Reschedule(SessionExpiryJob, every(cfg.SessionCheckInterval)); err != nil {
			return fmt.Errorf("configure %s: %w", SessionExpiryJob, err)
		}
	}
	return nil
}

func runtime() (storage.KeyValue, *zap.Logger, error) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		config.LoadAppConfig()
		logger = config.NewLogger(config.AppConfig.Debug)
	}
	if kv == nil {
		config.LoadAppConfig()
		store, err := storage.Open(config.AppConfig)
		if err != nil {
			return nil, logger, err
		}
		kv = store
	}
	return kv, logger, nil
}
