package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront.GO/core/notify"
	"storefront.GO/core/storage"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

// rawToken joins header and claims without signing them.
func rawToken(t *testing.T, header string, claims jwt.MapClaims) string {
	t.Helper()
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(header)) + "." + enc.EncodeToString(payload) + ".sig"
}

func TestCheck(t *testing.T) {
	cases := []struct {
		name  string
		token string
		want  Status
	}{
		{"empty", "", StatusSkipped},
		{"two segments", "abc.def", StatusSkipped},
		{"bad payload", "abc.!!!.def", StatusSkipped},
		{"no exp", token(t, jwt.MapClaims{"sub": "admin"}), StatusSkipped},
		{"far", token(t, jwt.MapClaims{"exp": now.Add(2 * time.Hour).Unix()}), StatusValid},
		{"ten minutes", token(t, jwt.MapClaims{"exp": now.Add(10 * time.Minute).Unix()}), StatusWarning},
		{"exactly now", token(t, jwt.MapClaims{"exp": now.Unix()}), StatusExpired},
		{"past", token(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), StatusExpired},
		{"header without alg", rawToken(t, `{"typ":"JWT"}`, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), StatusExpired},
		{"garbage header", "xx." + base64.RawURLEncoding.EncodeToString([]byte(`{"exp":1}`)) + ".", StatusExpired},
		{"payload not json", "e30.bm90IGpzb24.x", StatusSkipped},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Check(tc.token, now))
		})
	}
}

func TestMonitor_WarnsWithoutLogout(t *testing.T) {
	q := &notify.Queue{}
	logouts := 0
	m := &Monitor{
		Tokens:   func(context.Context) (string, error) { return token(t, jwt.MapClaims{"exp": now.Add(10 * time.Minute).Unix()}), nil },
		Logout:   func(context.Context) error { logouts++; return nil },
		Notifier: q,
		Clock:    func() time.Time { return now },
	}

	assert.Equal(t, StatusWarning, m.CheckNow(context.Background()))
	assert.Equal(t, 0, logouts)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelWarning, Message: MsgExpiringSoon}}, q.Drain())
}

func TestMonitor_ExpiredLogsOutOncePerCheck(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, storage.KeyAccessToken, token(t, jwt.MapClaims{"exp": now.Add(-time.Second).Unix()})))

	q := &notify.Queue{}
	logouts := 0
	logout := StorageLogout(kv)
	m := &Monitor{
		Tokens: StorageTokens(kv),
		Logout: func(ctx context.Context) error {
			logouts++
			return logout(ctx)
		},
		Notifier: q,
		Clock:    func() time.Time { return now },
	}

	assert.Equal(t, StatusExpired, m.CheckNow(ctx))
	assert.Equal(t, 1, logouts)
	assert.Equal(t, MsgExpired, q.Drain()[0].Message)

	_, ok, err := kv.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	// token is gone, so the next check does nothing
	assert.Equal(t, StatusSkipped, m.CheckNow(ctx))
	assert.Equal(t, 1, logouts)
	assert.Equal(t, 0, q.Len())
}

func TestMonitor_TokenSourceError(t *testing.T) {
	m := &Monitor{
		Tokens: func(context.Context) (string, error) { return "", errors.New("backend down") },
		Logout: func(context.Context) error { t.Fatal("unexpected logout"); return nil },
	}
	assert.Equal(t, StatusSkipped, m.CheckNow(context.Background()))
}

func TestMonitor_StartChecksImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checked := make(chan struct{}, 4)
	m := &Monitor{
		Tokens: func(context.Context) (string, error) {
			checked <- struct{}{}
			return "", nil
		},
		Interval: time.Hour,
	}
	require.NoError(t, m.Start(ctx))
	defer m.Stop()

	select {
	case <-checked:
	default:
		t.Fatal("Start did not run an immediate check")
	}
	assert.Error(t, m.Start(ctx))
}

func TestMonitor_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Monitor{Tokens: func(context.Context) (string, error) { return "", nil }, Interval: time.Hour}
	require.NoError(t, m.Start(ctx))
	assert.True(t, m.Running())

	cancel()
	assert.Eventually(t, func() bool { return !m.Running() }, time.Second, 5*time.Millisecond)
}

func TestMonitor_RestartIgnoresEarlierContext(t *testing.T) {
	var checks int32
	m := &Monitor{
		Tokens: func(context.Context) (string, error) {
			atomic.AddInt32(&checks, 1)
			return "", nil
		},
		Interval: time.Hour,
	}

	ctx1, cancel1 := context.WithCancel(context.Background())
	require.NoError(t, m.Start(ctx1))
	m.Stop()
	assert.False(t, m.Running())
	m.Stop()

	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()
	cancel1()

	assert.Never(t, func() bool { return !m.Running() }, 50*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&checks))
}
