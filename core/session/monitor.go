package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"storefront.GO/core/notify"
	"storefront.GO/core/storage"
)

const DefaultInterval = 5 * time.Minute

// TokenSource returns the current bearer token, or "" when logged out.
type TokenSource func(ctx context.Context) (string, error)

// LogoutFunc ends the session.
type LogoutFunc func(ctx context.Context) error

// Monitor periodically checks the token from Tokens. An expired token causes
// exactly one Logout call per check.
type Monitor struct {
	Tokens   TokenSource
	Logout   LogoutFunc
	Notifier notify.Notifier
	Logger   *zap.Logger
	Interval time.Duration
	Clock    func() time.Time

	mu    sync.Mutex
	sched *cron.Cron
	// closed by Stop to release the goroutine of the current run
	done chan struct{}
}

// CheckNow runs a single check and applies its outcome.
func (m *Monitor) CheckNow(ctx context.Context) Status {
	logger := m.logger()
	token, err := m.Tokens(ctx)
	if err != nil {
		logger.Warn("read session token", zap.Error(err))
		return StatusSkipped
	}
	status := Check(token, m.now())
	switch status {
	case StatusWarning:
		notify.Warning(m.notifier(), MsgExpiringSoon)
	case StatusExpired:
		notify.Error(m.notifier(), MsgExpired)
		if m.Logout != nil {
			if err := m.Logout(ctx); err != nil {
				logger.Error("logout expired session", zap.Error(err))
			}
		}
	}
	logger.Debug("session checked", zap.Stringer("status", status))
	return status
}

// Start checks once immediately and then every Interval until Stop is called
// or ctx is done. A stopped monitor can be started again.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sched != nil {
		return fmt.Errorf("session monitor already started")
	}
	interval := m.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() { m.CheckNow(ctx) }); err != nil {
		return fmt.Errorf("schedule session check: %w", err)
	}
	m.CheckNow(ctx)
	c.Start()
	done := make(chan struct{})
	m.sched, m.done = c, done
	go func() {
		select {
		case <-ctx.Done():
			m.stopRun(c)
		case <-done:
		}
	}()
	return nil
}

// Stop removes the schedule. It is safe to call more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	c, done := m.sched, m.done
	m.sched, m.done = nil, nil
	m.mu.Unlock()
	if c == nil {
		return
	}
	close(done)
	<-c.Stop().Done()
}

// Running reports whether a schedule is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sched != nil
}

// stopRun stops c only if it is still the active schedule.
func (m *Monitor) stopRun(c *cron.Cron) {
	m.mu.Lock()
	if m.sched != c {
		m.mu.Unlock()
		return
	}
	m.sched, m.done = nil, nil
	m.mu.Unlock()
	<-c.Stop().Done()
}

func (m *Monitor) now() time.Time {
	if m.Clock != nil {
		return m.Clock()
	}
	return time.Now()
}

func (m *Monitor) notifier() notify.Notifier {
	if m.Notifier != nil {
		return m.Notifier
	}
	return notify.Discard
}

func (m *Monitor) logger() *zap.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return zap.NewNop()
}

// StorageTokens reads the raw token stored under the accessToken key.
func StorageTokens(kv storage.KeyValue) TokenSource {
	return func(ctx context.Context) (string, error) {
		token, _, err := kv.Get(ctx, storage.KeyAccessToken)
		return token, err
	}
}

// StorageLogout deletes the stored token.
func StorageLogout(kv storage.KeyValue) LogoutFunc {
	return func(ctx context.Context) error {
		return kv.Delete(ctx, storage.KeyAccessToken)
	}
}
