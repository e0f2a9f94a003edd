package storage

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection, so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestStorageRepository_UpsertAndFind(t *testing.T) {
	repo := NewStorageRepository(testDB(t))
	require.NoError(t, repo.Migrate())

	require.NoError(t, repo.Upsert("guest:a:guestCart", []byte(`[{"id":"p1-M"}]`)))
	item, err := repo.FindByKey("guest:a:guestCart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1-M"}]`, string(item.Value))

	require.NoError(t, repo.Upsert("guest:a:guestCart", []byte(`[]`)))
	item, err = repo.FindByKey("guest:a:guestCart")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(item.Value))
}

func TestStorageRepository_FindMissing(t *testing.T) {
	repo := NewStorageRepository(testDB(t))
	require.NoError(t, repo.Migrate())

	_, err := repo.FindByKey("nope")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestStorageRepository_DeleteAndKeys(t *testing.T) {
	repo := NewStorageRepository(testDB(t))
	require.NoError(t, repo.Migrate())

	require.NoError(t, repo.Upsert("guest:a:wishlist", []byte(`[]`)))
	require.NoError(t, repo.Upsert("guest:a:guestCart", []byte(`[]`)))
	require.NoError(t, repo.Upsert("guest:b:wishlist", []byte(`[]`)))

	keys, err := repo.KeysWithPrefix("guest:a:")
	require.NoError(t, err)
	assert.Equal(t, []string{"guest:a:guestCart", "guest:a:wishlist"}, keys)

	require.NoError(t, repo.Delete("guest:a:wishlist"))
	_, err = repo.FindByKey("guest:a:wishlist")
	assert.Error(t, err)
}
