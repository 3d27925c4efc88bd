package storage

import (
	"errors"
	"fmt"

	"github.com/homedash/homedash-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSnapshots stores snapshot blobs in the snapshots table.
type GormSnapshots struct {
	db *gorm.DB
}

func NewGormSnapshots(db *gorm.DB) *GormSnapshots {
	return &GormSnapshots{db: db}
}

func (s *GormSnapshots) Get(key string) ([]byte, error) {
	var row models.Snapshot
	if err := s.db.First(&row, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot %q: %w", key, err)
	}
	return []byte(row.Value), nil
}

func (s *GormSnapshots) Put(key string, value []byte) error {
	row := models.Snapshot{
		Key:   key,
		Value: datatypes.JSON(value),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write snapshot %q: %w", key, err)
	}
	return nil
}

func (s *GormSnapshots) Delete(key string) error {
	return s.db.Delete(&models.Snapshot{}, "key = ?", key).Error
}
