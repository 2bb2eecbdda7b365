package services

import (
	"context"
	"fmt"

	"github.com/graficaflow/grafica-api/internal/events"
	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/repository"
)

type ClientService struct {
	repo     repository.ClientRepository
	auditSvc *AuditService
	broker   *events.Broker
}

func NewClientService(repo repository.ClientRepository, auditSvc *AuditService, broker *events.Broker) *ClientService {
	return &ClientService{repo: repo, auditSvc: auditSvc, broker: broker}
}

func (s *ClientService) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context, query *repository.ListQuery) ([]models.Client, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ClientService) Create(ctx context.Context, client *models.Client) error {
	if client.Name == "" {
		return ErrValidation
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, "CREATE", "Client", fmt.Sprint(client.ID),
		fmt.Sprintf("Cliente %s cadastrado", client.Name), "", "")
	s.broker.Publish(events.TopicClients, "created", fmt.Sprint(client.ID))
	return nil
}

func (s *ClientService) Update(ctx context.Context, client *models.Client) error {
	if client.Name == "" {
		return ErrValidation
	}
	if err := s.repo.Update(ctx, client); err != nil {
		return err
	}
	s.broker.Publish(events.TopicClients, "updated", fmt.Sprint(client.ID))
	return nil
}

// Delete removes a client. Clients with orders on file are kept so the
// order history stays resolvable.
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	count, err := s.repo.CountOrders(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrClientHasOrders
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, "DELETE", "Client", fmt.Sprint(id), "Cliente removido", "", "")
	s.broker.Publish(events.TopicClients, "deleted", fmt.Sprint(id))
	return nil
}
