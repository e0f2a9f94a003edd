package jobs

import (
	"go.uber.org/zap"

	"storefront.GO/config"
	"storefront.GO/core/storage"
	"storefront.GO/cron"
)

const StorageSnapshotJob = "storage_snapshot"

func init() {
	cron.Register(StorageSnapshotJob, "@every 10m", RunStorageSnapshot)
}

// RunStorageSnapshot writes the in-memory backend to STORAGE_SNAPSHOT, or to
// the path given as first argument. Other backends are durable already.
func RunStorageSnapshot(args ...string) {
	kv, logger, err := runtime()
	if err != nil {
		logger.Error("storage_snapshot: open storage", zap.Error(err))
		return
	}
	mem, ok := kv.(*storage.Memory)
	if !ok {
		return
	}
	path := config.GetEnv("STORAGE_SNAPSHOT", "")
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}
	if path == "" {
		return
	}
	if err := mem.Snapshot(path); err != nil {
		logger.Error("storage_snapshot: write", zap.String("path", path), zap.Error(err))
		return
	}
	logger.Debug("storage snapshot written", zap.String("path", path))
}
