package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront.GO/config"
)

func backends(t *testing.T) map[string]KeyValue {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlBackend, err := NewSQL(db)
	require.NoError(t, err)

	return map[string]KeyValue{
		"memory": NewMemory(),
		"redis":  NewRedis(rdb),
		"sql":    sqlBackend,
	}
}

func TestBackends_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set(ctx, "k", `[1,2]`))
			v, ok, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			require.True(t, ok)
			assert.JSONEq(t, `[1,2]`, v)

			require.NoError(t, kv.Set(ctx, "k", `[]`))
			v, _, err = kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.JSONEq(t, `[]`, v)

			require.NoError(t, kv.Delete(ctx, "k"))
			_, ok, err = kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

type row struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

func TestLoadSave_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			in := []row{{"a", 1}, {"b", 2}}
			require.NoError(t, Save(ctx, kv, KeyGuestCart, in))

			var out []row
			require.NoError(t, Load(ctx, kv, KeyGuestCart, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	var out []row
	err := Load(context.Background(), NewMemory(), KeyWishlist, &out)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Empty(t, out)
}

func TestLoad_Corrupt(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	require.NoError(t, kv.Set(ctx, KeyGuestCart, "{not json"))

	var out []row
	err := Load(ctx, kv, KeyGuestCart, &out)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Empty(t, out)
}

func TestNamespace_IsolatesKeys(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	a := Namespace(kv, "guest:a")
	b := Namespace(kv, "guest:b")

	require.NoError(t, a.Set(ctx, KeyGuestCart, `["a"]`))
	_, ok, err := b.Get(ctx, KeyGuestCart)
	require.NoError(t, err)
	assert.False(t, ok)

	raw, ok, err := kv.Get(ctx, "guest:a:guestCart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["a"]`, raw)

	require.NoError(t, a.Delete(ctx, KeyGuestCart))
	_, ok, _ = kv.Get(ctx, "guest:a:guestCart")
	assert.False(t, ok)
}

func TestMemory_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/snapshot.json"

	m := NewMemory()
	require.NoError(t, m.Set(ctx, "guest:a:wishlist", `[{"_id":"p1"}]`))
	require.NoError(t, m.Snapshot(path))

	restored := NewMemory()
	require.NoError(t, restored.Restore(path))
	v, ok, err := restored.Get(ctx, "guest:a:wishlist")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"_id":"p1"}]`, v)

	assert.NoError(t, NewMemory().Restore(t.TempDir()+"/missing.json"))
}

func TestOpen_Drivers(t *testing.T) {
	kv, err := Open(&config.Config{StorageDriver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, kv)

	mr := miniredis.RunT(t)
	t.Setenv("REDIS_ADDR", mr.Addr())
	kv, err = Open(&config.Config{StorageDriver: "redis"})
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, kv)

	t.Setenv("SQLITE_PATH", t.TempDir()+"/storefront.db")
	t.Setenv("GORM_LOG", "off")
	kv, err = Open(&config.Config{StorageDriver: "sql"})
	require.NoError(t, err)
	assert.IsType(t, &SQL{}, kv)

	_, err = Open(&config.Config{StorageDriver: "etcd"})
	assert.Error(t, err)
}
