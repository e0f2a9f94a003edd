package storage

import (
	"fmt"
	"log"

	"storefront.GO/config"
)

// Open builds the backend named by cfg.StorageDriver.
func Open(cfg *config.Config) (KeyValue, error) {
	switch cfg.StorageDriver {
	case "", "memory":
		m := NewMemory()
		if path := config.GetEnv("STORAGE_SNAPSHOT", ""); path != "" {
			if err := m.Restore(path); err != nil {
				log.Printf("storage snapshot %s not restored: %v", path, err)
			}
		}
		return m, nil
	case "redis":
		config.InitRedis()
		if config.RedisClient == nil {
			return nil, fmt.Errorf("storage driver redis: REDIS_ADDR is not set")
		}
		if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err != nil {
			return nil, fmt.Errorf("storage driver redis: %w", err)
		}
		return NewRedis(config.RedisClient), nil
	case "sql":
		db, err := config.NewDB()
		if err != nil {
			return nil, fmt.Errorf("storage driver sql: %w", err)
		}
		return NewSQL(db)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
