package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"storefront.GO/core/notify"
	"storefront.GO/core/session"
	"storefront.GO/core/storage"
	"storefront.GO/cron"
)

const SessionExpiryJob = "session_expiry"

func init() {
	cron.Register(SessionExpiryJob, every(session.DefaultInterval), RunSessionExpiry)
}

func every(d time.Duration) string {
	return "@every " + d.String()
}

// RunSessionExpiry checks the admin token once and logs out when it expired.
func RunSessionExpiry(args ...string) {
	kv, logger, err := runtime()
	if err != nil {
		logger.Error("session_expiry: open storage", zap.Error(err))
		return
	}
	m := AdminMonitor(kv, logger)
	m.CheckNow(context.Background())
}

// AdminMonitor watches the accessToken of the admin namespace in kv.
func AdminMonitor(kv storage.KeyValue, logger *zap.Logger) *session.Monitor {
	admin := storage.Namespace(kv, storage.AdminNamespace)
	return &session.Monitor{
		Tokens:   session.StorageTokens(admin),
		Logout:   session.StorageLogout(admin),
		Notifier: notify.Log{Logger: logger},
		Logger:   logger,
	}
}
