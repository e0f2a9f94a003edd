package storage

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "storefront.GO/model/entity"
)

type StorageRepository struct {
	db *gorm.DB
}

func NewStorageRepository(db *gorm.DB) *StorageRepository {
	return &StorageRepository{db: db}
}

// Migrate creates the storage_item table.
func (r *StorageRepository) Migrate() error {
	return r.db.AutoMigrate(&entity.StorageItem{})
}

// FindByKey returns the row for key or gorm.ErrRecordNotFound.
func (r *StorageRepository) FindByKey(key string) (*entity.StorageItem, error) {
	var item entity.StorageItem
	err := r.db.Where("storage_key = ?", key).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert overwrites the value stored under key.
func (r *StorageRepository) Upsert(key string, value []byte) error {
	item := entity.StorageItem{Key: key, Value: datatypes.JSON(value)}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&item).Error
}

func (r *StorageRepository) Delete(key string) error {
	return r.db.Where("storage_key = ?", key).Delete(&entity.StorageItem{}).Error
}

// KeysWithPrefix lists stored keys starting with prefix.
func (r *StorageRepository) KeysWithPrefix(prefix string) ([]string, error) {
	var keys []string
	err := r.db.Model(&entity.StorageItem{}).
		Where("storage_key LIKE ?", prefix+"%").
		Order("storage_key").
		Pluck("storage_key", &keys).Error
	return keys, err
}
