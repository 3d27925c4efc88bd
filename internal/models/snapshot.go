package models

import (
	"time"

	"gorm.io/datatypes"
)

// Snapshot stores one store's persisted state as a JSON blob under a fixed key.
type Snapshot struct {
	Key       string         `gorm:"size:100;primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName specifies the table name for Snapshot.
func (Snapshot) TableName() string {
	return "snapshots"
}
