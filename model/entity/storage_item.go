package entity

import (
	"time"

	"gorm.io/datatypes"
)

// StorageItem is one persisted key of the SQL storage backend.
type StorageItem struct {
	Key       string         `gorm:"column:storage_key;primaryKey;type:varchar(255)"`
	Value     datatypes.JSON `gorm:"column:value"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (StorageItem) TableName() string {
	return "storage_item"
}
