package services

import (
	"context"
	"mime/multipart"

	"github.com/graficaflow/grafica-api/internal/events"
	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/repository"
	"github.com/graficaflow/grafica-api/internal/storage"
)

type SettingsService struct {
	repo    repository.SettingsRepository
	storage *storage.LocalStorage
	broker  *events.Broker
}

func NewSettingsService(repo repository.SettingsRepository, storage *storage.LocalStorage, broker *events.Broker) *SettingsService {
	return &SettingsService{repo: repo, storage: storage, broker: broker}
}

// Get returns the company settings, creating the row on first access
func (s *SettingsService) Get(ctx context.Context) (*models.SystemSettings, error) {
	return s.repo.Get(ctx)
}

// Update saves the company identity fields, keeping the stored logo
func (s *SettingsService) Update(ctx context.Context, input *models.SystemSettings) (*models.SystemSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.CompanyName = input.CompanyName
	settings.LegalID = input.LegalID
	settings.Phone = input.Phone
	settings.Email = input.Email
	settings.Address = input.Address
	settings.PixKey = input.PixKey

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	s.broker.Publish(events.TopicSettings, "updated", "1")
	return settings, nil
}

// UploadLogo stores a new company logo and records its path
func (s *SettingsService) UploadLogo(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*models.SystemSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	path, err := s.storage.Upload(file, header, "logos")
	if err != nil {
		return nil, err
	}

	if settings.LogoPath != "" {
		s.storage.Delete(settings.LogoPath)
	}
	settings.LogoPath = path

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	s.broker.Publish(events.TopicSettings, "updated", "1")
	return settings, nil
}

// LogoPath resolves the absolute path of the stored logo, empty when unset
func (s *SettingsService) LogoPath(ctx context.Context) string {
	settings, err := s.repo.Get(ctx)
	if err != nil || settings.LogoPath == "" {
		return ""
	}
	if !s.storage.Exists(settings.LogoPath) {
		return ""
	}
	return s.storage.GetFullPath(settings.LogoPath)
}
