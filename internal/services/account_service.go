package services

import (
	"context"
	"fmt"

	"github.com/graficaflow/grafica-api/internal/events"
	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/repository"
)

type AccountService struct {
	repo   repository.AccountRepository
	broker *events.Broker
}

func NewAccountService(repo repository.AccountRepository, broker *events.Broker) *AccountService {
	return &AccountService{repo: repo, broker: broker}
}

func (s *AccountService) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AccountService) ListAll(ctx context.Context) ([]models.Account, error) {
	return s.repo.ListAll(ctx)
}

func (s *AccountService) Create(ctx context.Context, account *models.Account) error {
	if account.Name == "" {
		return ErrValidation
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return err
	}
	s.broker.Publish(events.TopicFinancial, "created", fmt.Sprint(account.ID))
	return nil
}

func (s *AccountService) Update(ctx context.Context, account *models.Account) error {
	if account.Name == "" {
		return ErrValidation
	}
	if err := s.repo.Update(ctx, account); err != nil {
		return err
	}
	s.broker.Publish(events.TopicFinancial, "updated", fmt.Sprint(account.ID))
	return nil
}

// Delete removes an account with no ledger movement
func (s *AccountService) Delete(ctx context.Context, id uint) error {
	count, err := s.repo.CountEntries(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAccountInUse
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.broker.Publish(events.TopicFinancial, "deleted", fmt.Sprint(id))
	return nil
}
