package services

import (
	"context"
	"fmt"

	"github.com/graficaflow/grafica-api/internal/events"
	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/repository"
)

type ProductService struct {
	repo   repository.ProductRepository
	broker *events.Broker
}

func NewProductService(repo repository.ProductRepository, broker *events.Broker) *ProductService {
	return &ProductService{repo: repo, broker: broker}
}

func (s *ProductService) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, query *repository.ListQuery) ([]models.Product, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return ErrValidation
	}
	if product.Unit == "" {
		product.Unit = "un"
	}
	product.Active = true
	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}
	s.broker.Publish(events.TopicProducts, "created", fmt.Sprint(product.ID))
	return nil
}

func (s *ProductService) Update(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return ErrValidation
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}
	s.broker.Publish(events.TopicProducts, "updated", fmt.Sprint(product.ID))
	return nil
}

// Deactivate hides a product from the catalog without losing the
// snapshots on existing orders
func (s *ProductService) Deactivate(ctx context.Context, id uint) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	product.Active = false
	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}
	s.broker.Publish(events.TopicProducts, "updated", fmt.Sprint(id))
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.broker.Publish(events.TopicProducts, "deleted", fmt.Sprint(id))
	return nil
}
