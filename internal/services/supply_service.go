package services

import (
	"context"
	"fmt"

	"github.com/graficaflow/grafica-api/internal/events"
	"github.com/graficaflow/grafica-api/internal/jobs"
	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/repository"
	"github.com/graficaflow/grafica-api/pkg/logger"
)

type SupplyService struct {
	repo   repository.SupplyRepository
	broker *events.Broker
	worker *jobs.Worker
}

func NewSupplyService(repo repository.SupplyRepository, broker *events.Broker, worker *jobs.Worker) *SupplyService {
	return &SupplyService{repo: repo, broker: broker, worker: worker}
}

func (s *SupplyService) FindByID(ctx context.Context, id uint) (*models.Supply, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SupplyService) List(ctx context.Context, query *repository.ListQuery) ([]models.Supply, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *SupplyService) Create(ctx context.Context, supply *models.Supply) error {
	if supply.Name == "" {
		return ErrValidation
	}
	if err := s.repo.Create(ctx, supply); err != nil {
		return err
	}
	s.broker.Publish(events.TopicSupplies, "created", fmt.Sprint(supply.ID))
	return nil
}

func (s *SupplyService) Update(ctx context.Context, supply *models.Supply) error {
	if supply.Name == "" {
		return ErrValidation
	}
	if err := s.repo.Update(ctx, supply); err != nil {
		return err
	}
	s.broker.Publish(events.TopicSupplies, "updated", fmt.Sprint(supply.ID))
	return nil
}

// Adjust adds (or subtracts) stock for a supply
func (s *SupplyService) Adjust(ctx context.Context, id uint, delta float64) (*models.Supply, error) {
	supply, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	supply.Quantity += delta
	if supply.Quantity < 0 {
		supply.Quantity = 0
	}
	if err := s.repo.Update(ctx, supply); err != nil {
		return nil, err
	}
	s.broker.Publish(events.TopicSupplies, "updated", fmt.Sprint(id))

	// Stock just moved, surface a low-stock warning without holding the request
	if s.worker != nil {
		s.worker.Enqueue(s.CheckLowStock)
	}
	return supply, nil
}

func (s *SupplyService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.broker.Publish(events.TopicSupplies, "deleted", fmt.Sprint(id))
	return nil
}

// LowStock lists supplies at or below their minimum quantity
func (s *SupplyService) LowStock(ctx context.Context) ([]models.Supply, error) {
	return s.repo.FindLowStock(ctx)
}

// CheckLowStock logs the supplies running low; used by the scheduled job
func (s *SupplyService) CheckLowStock(ctx context.Context) error {
	supplies, err := s.repo.FindLowStock(ctx)
	if err != nil {
		return err
	}
	for _, supply := range supplies {
		logger.Warn(fmt.Sprintf("[Estoque] %s abaixo do mínimo: %.2f (mínimo %.2f)",
			supply.Name, supply.Quantity, supply.MinQuantity))
	}
	return nil
}
