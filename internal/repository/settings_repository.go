package repository

import (
	"context"
	"errors"

	"github.com/graficaflow/grafica-api/internal/models"
	"gorm.io/gorm"
)

// SettingsRepository defines the interface for system settings access
type SettingsRepository interface {
	Get(ctx context.Context) (*models.SystemSettings, error)
	Save(ctx context.Context, settings *models.SystemSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the settings row, creating an empty one on first access
func (r *settingsRepository) Get(ctx context.Context) (*models.SystemSettings, error) {
	var settings models.SystemSettings
	err := r.db.WithContext(ctx).First(&settings, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.SystemSettings{ID: 1}
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *models.SystemSettings) error {
	settings.ID = 1
	return r.db.WithContext(ctx).Save(settings).Error
}
