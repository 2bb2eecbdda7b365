package services

import (
	"context"
	"fmt"
	"time"

	"github.com/graficaflow/grafica-api/internal/events"
	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/repository"
	"github.com/graficaflow/grafica-api/pkg/logger"
	"gorm.io/gorm"
)

// FinancialEntryInput carries the fields accepted for manual ledger entries
type FinancialEntryInput struct {
	Description        string     `json:"description" binding:"required"`
	Amount             float64    `json:"amount" binding:"required,gt=0"`
	Type               string     `json:"type" binding:"required,oneof=income expense"`
	Date               time.Time  `json:"date" binding:"required"`
	Category           string     `json:"category"`
	AccountID          *uint      `json:"account_id"`
	Method             string     `json:"method"`
	Status             string     `json:"status"`
	Recurring          bool       `json:"recurring"`
	RecurrenceInterval string     `json:"recurrence_interval"`
	RecurrenceEnd      *time.Time `json:"recurrence_end"`
}

type FinanceService struct {
	repo        repository.FinancialRepository
	accountRepo repository.AccountRepository
	auditSvc    *AuditService
	broker      *events.Broker
}

func NewFinanceService(
	repo repository.FinancialRepository,
	accountRepo repository.AccountRepository,
	auditSvc *AuditService,
	broker *events.Broker,
) *FinanceService {
	return &FinanceService{
		repo:        repo,
		accountRepo: accountRepo,
		auditSvc:    auditSvc,
		broker:      broker,
	}
}

func (s *FinanceService) FindByID(ctx context.Context, id string) (*models.FinancialEntry, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *FinanceService) List(ctx context.Context, query *repository.FinancialQuery) ([]models.FinancialEntry, int64, error) {
	return s.repo.List(ctx, query)
}

// Create records a manual income or expense entry
func (s *FinanceService) Create(ctx context.Context, input *FinancialEntryInput) (*models.FinancialEntry, error) {
	entry := &models.FinancialEntry{
		Description:        input.Description,
		Amount:             input.Amount,
		Type:               input.Type,
		Date:               input.Date,
		Category:           input.Category,
		AccountID:          input.AccountID,
		Method:             input.Method,
		Status:             input.Status,
		Recurring:          input.Recurring,
		RecurrenceInterval: input.RecurrenceInterval,
		RecurrenceEnd:      input.RecurrenceEnd,
	}
	if entry.Status == "" {
		entry.Status = models.EntryStatusPending
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, "CREATE", "FinancialEntry", entry.ID,
		fmt.Sprintf("Lançamento %s de %.2f: %s", entry.Type, entry.Amount, entry.Description), "", "")
	s.broker.Publish(events.TopicFinancial, "created", entry.ID)

	return entry, nil
}

// Update edits a manual entry. Order-derived rows are managed by the
// projector and cannot be edited directly.
func (s *FinanceService) Update(ctx context.Context, id string, input *FinancialEntryInput) (*models.FinancialEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if entry.OrderID != nil {
		return nil, ErrValidation
	}

	entry.Description = input.Description
	entry.Amount = input.Amount
	entry.Type = input.Type
	entry.Date = input.Date
	entry.Category = input.Category
	entry.AccountID = input.AccountID
	entry.Method = input.Method
	if input.Status != "" {
		entry.Status = input.Status
	}
	entry.Recurring = input.Recurring
	entry.RecurrenceInterval = input.RecurrenceInterval
	entry.RecurrenceEnd = input.RecurrenceEnd

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.broker.Publish(events.TopicFinancial, "updated", entry.ID)
	return entry, nil
}

// MarkPaid settles a pending entry
func (s *FinanceService) MarkPaid(ctx context.Context, id string, accountID *uint, method string) (*models.FinancialEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if entry.IsPaid() {
		return entry, nil
	}

	entry.Status = models.EntryStatusPaid
	if accountID != nil {
		entry.AccountID = accountID
	}
	if method != "" {
		entry.Method = method
	}
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, "PAYMENT", "FinancialEntry", entry.ID,
		fmt.Sprintf("Lançamento quitado: %s (%.2f)", entry.Description, entry.Amount), "", "")
	s.broker.Publish(events.TopicFinancial, "payment", entry.ID)

	return entry, nil
}

// Delete removes a manual entry
func (s *FinanceService) Delete(ctx context.Context, id string) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if entry.OrderID != nil {
		return ErrValidation
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, "DELETE", "FinancialEntry", entry.ID,
		fmt.Sprintf("Lançamento removido: %s", entry.Description), "", "")
	s.broker.Publish(events.TopicFinancial, "deleted", entry.ID)

	return nil
}

// Summary aggregates paid and pending movement over a period
func (s *FinanceService) Summary(ctx context.Context, start, end time.Time) (*repository.FinancialSummary, error) {
	return s.repo.Summary(ctx, start, end)
}

// SummaryByCategory breaks the paid movement of a period down per category
func (s *FinanceService) SummaryByCategory(ctx context.Context, start, end time.Time) ([]repository.CategorySum, error) {
	return s.repo.SumByCategory(ctx, start, end)
}

// AccountBalances computes the balance of every account from paid entries
func (s *FinanceService) AccountBalances(ctx context.Context) ([]models.AccountBalance, error) {
	accounts, err := s.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sums, err := s.repo.SumByAccount(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[uint]float64, len(sums))
	for _, sum := range sums {
		totals[sum.AccountID] = sum.Total
	}

	balances := make([]models.AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		balances = append(balances, models.AccountBalance{
			Account: account,
			Balance: totals[account.ID],
		})
	}
	return balances, nil
}

// DueBetween lists pending entries due inside the range
func (s *FinanceService) DueBetween(ctx context.Context, start, end time.Time) ([]models.FinancialEntry, error) {
	return s.repo.FindDueBetween(ctx, start, end)
}

// MaterializeRecurring spawns the next occurrence of each recurring
// template whose date has come due. Safe to run repeatedly: an
// occurrence is only created once per template and date.
func (s *FinanceService) MaterializeRecurring(ctx context.Context) error {
	templates, err := s.repo.FindRecurringTemplates(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for i := range templates {
		template := &templates[i]
		next := template.NextOccurrence(template.Date)
		for !next.After(now) {
			if template.RecurrenceEnd != nil && next.After(*template.RecurrenceEnd) {
				break
			}
			if next.Equal(template.Date) {
				// Unknown interval, nothing to spawn
				break
			}

			_, err := s.repo.FindByRecurrenceSource(ctx, template.ID, next)
			if err == nil {
				next = template.NextOccurrence(next)
				continue
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}

			occurrence := models.FinancialEntry{
				OrderID:            nil,
				Description:        template.Description,
				Amount:             template.Amount,
				Type:               template.Type,
				Date:               next,
				Category:           template.Category,
				AccountID:          template.AccountID,
				Method:             template.Method,
				Status:             models.EntryStatusPending,
				RecurrenceSourceID: &template.ID,
			}
			if err := s.repo.Create(ctx, &occurrence); err != nil {
				return err
			}
			logger.Info(fmt.Sprintf("[Finance] Lançamento recorrente gerado: %s em %s",
				template.Description, next.Format("2006-01-02")))
			s.broker.Publish(events.TopicFinancial, "created", occurrence.ID)

			next = template.NextOccurrence(next)
		}
	}
	return nil
}
