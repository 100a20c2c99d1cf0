package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/souqmarket/backend/internal/domain/settings"
	"github.com/souqmarket/backend/internal/domain/shared"
)

// GormSettingsRepository implements settings.Reader using GORM.
// The settings table holds a single row seeded by migration.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get returns the marketplace-wide defaults
func (r *GormSettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	var s settings.Settings
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

var _ settings.Reader = (*GormSettingsRepository)(nil)
