package providers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/homedash/homedash-backend/internal/database"
	"github.com/homedash/homedash-backend/internal/models"
	"gorm.io/gorm"
)

// Database reads the per-user rows the stores hydrate from: the user's
// profile and the connected-service records. ProfileByUser returns nil with
// no error when no profile row exists.
type Database interface {
	ProfileByUser(ctx context.Context, userID string) (*models.ProfileRow, error)
	ListServices(ctx context.Context, userID string) ([]models.ConnectedServiceRow, error)
}

// GormDatabase reads rows from PostgreSQL.
type GormDatabase struct {
	db *gorm.DB
}

func NewGormDatabase(db *gorm.DB) *GormDatabase {
	return &GormDatabase{db: db}
}

func (p *GormDatabase) ProfileByUser(ctx context.Context, userID string) (*models.ProfileRow, error) {
	var row models.ProfileRow
	err := p.db.WithContext(ctx).Scopes(database.ForUser(userID)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &row, nil
}

func (p *GormDatabase) ListServices(ctx context.Context, userID string) ([]models.ConnectedServiceRow, error) {
	var rows []models.ConnectedServiceRow
	err := p.db.WithContext(ctx).Scopes(database.ForUser(userID)).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load connected services: %w", err)
	}
	return rows, nil
}

// MemoryDatabase serves seeded rows from memory. Used in demo mode and tests.
type MemoryDatabase struct {
	mu       sync.RWMutex
	profiles map[string]models.ProfileRow
	services map[string][]models.ConnectedServiceRow
}

func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{
		profiles: make(map[string]models.ProfileRow),
		services: make(map[string][]models.ConnectedServiceRow),
	}
}

func (p *MemoryDatabase) SeedProfile(userID string, row models.ProfileRow) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profiles[userID] = row
}

func (p *MemoryDatabase) SeedServices(userID string, rows []models.ConnectedServiceRow) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.services[userID] = rows
}

func (p *MemoryDatabase) ProfileByUser(_ context.Context, userID string) (*models.ProfileRow, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	row, ok := p.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (p *MemoryDatabase) ListServices(_ context.Context, userID string) ([]models.ConnectedServiceRow, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	rows := p.services[userID]
	out := make([]models.ConnectedServiceRow, len(rows))
	copy(out, rows)
	return out, nil
}
