package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	storageRepo "storefront.GO/model/repository/storage"
)

// SQL stores values in the storage_item table.
type SQL struct {
	repo *storageRepo.StorageRepository
}

// NewSQL migrates the storage table and returns the backend.
func NewSQL(db *gorm.DB) (*SQL, error) {
	repo := storageRepo.NewStorageRepository(db)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}
	return &SQL{repo: repo}, nil
}

func (s *SQL) Get(_ context.Context, key string) (string, bool, error) {
	item, err := s.repo.FindByKey(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(item.Value), true, nil
}

func (s *SQL) Set(_ context.Context, key, value string) error {
	return s.repo.Upsert(key, []byte(value))
}

func (s *SQL) Delete(_ context.Context, key string) error {
	return s.repo.Delete(key)
}
