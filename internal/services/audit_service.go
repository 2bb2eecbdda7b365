package services

import (
	"context"

	"github.com/graficaflow/grafica-api/internal/jobs"
	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/repository"
)

type AuditService struct {
	repo   repository.AuditRepository
	worker *jobs.Worker
}

func NewAuditService(repo repository.AuditRepository, worker *jobs.Worker) *AuditService {
	return &AuditService{repo: repo, worker: worker}
}

// Log records an audit entry. Writes go through the worker so a slow or
// failing audit insert never delays or fails the operation being logged.
func (s *AuditService) Log(ctx context.Context, action, entity, entityID, details, ip, userAgent string) {
	logEntry := &models.AuditLog{
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if s.worker == nil {
		s.repo.Create(ctx, logEntry)
		return
	}
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.repo.Create(ctx, logEntry)
	})
}

// List retrieves audit logs with filters
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, query)
}
