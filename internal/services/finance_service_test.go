package services

import (
	"context"
	"testing"
	"time"

	"github.com/graficaflow/grafica-api/internal/events"
	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

// Mock AccountRepository
type mockAccountRepository struct {
	repository.AccountRepository
	mockListAll func(ctx context.Context) ([]models.Account, error)
}

func (m *mockAccountRepository) ListAll(ctx context.Context) ([]models.Account, error) {
	if m.mockListAll != nil {
		return m.mockListAll(ctx)
	}
	return nil, nil
}

func newFinanceServiceForTest(financialRepo *mockFinancialRepository, accountRepo *mockAccountRepository) *FinanceService {
	auditSvc := NewAuditService(&mockAuditRepository{}, nil)
	return NewFinanceService(financialRepo, accountRepo, auditSvc, events.NewBroker())
}

func TestCreateEntry_DefaultsToPending(t *testing.T) {
	financialRepo := &mockFinancialRepository{}
	service := newFinanceServiceForTest(financialRepo, &mockAccountRepository{})

	entry, err := service.Create(context.Background(), &FinancialEntryInput{
		Description: "Aluguel",
		Amount:      1500,
		Type:        models.EntryTypeExpense,
		Date:        date(2025, time.February, 5),
	})
	assert.NoError(t, err)
	assert.Equal(t, models.EntryStatusPending, entry.Status)
	assert.Len(t, financialRepo.created, 1)
}

func TestUpdateEntry_RejectsOrderDerivedRows(t *testing.T) {
	orderID := "order-1"
	financialRepo := &mockFinancialRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.FinancialEntry, error) {
			return &models.FinancialEntry{ID: id, OrderID: &orderID}, nil
		},
	}
	service := newFinanceServiceForTest(financialRepo, &mockAccountRepository{})

	_, err := service.Update(context.Background(), "entry-1", &FinancialEntryInput{
		Description: "Tentativa",
		Amount:      10,
		Type:        models.EntryTypeIncome,
		Date:        time.Now(),
	})
	assert.ErrorIs(t, err, ErrValidation)

	err = service.Delete(context.Background(), "entry-1")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, financialRepo.deletedIDs)
}

func TestMarkPaid_Idempotent(t *testing.T) {
	financialRepo := &mockFinancialRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.FinancialEntry, error) {
			return &models.FinancialEntry{ID: id, Status: models.EntryStatusPaid, Amount: 100}, nil
		},
	}
	service := newFinanceServiceForTest(financialRepo, &mockAccountRepository{})

	entry, err := service.MarkPaid(context.Background(), "entry-1", nil, "Pix")
	assert.NoError(t, err)
	assert.Equal(t, models.EntryStatusPaid, entry.Status)
	assert.Empty(t, financialRepo.updated)
}

func TestMarkPaid_SettlesPendingEntry(t *testing.T) {
	financialRepo := &mockFinancialRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.FinancialEntry, error) {
			return &models.FinancialEntry{ID: id, Status: models.EntryStatusPending, Amount: 100}, nil
		},
	}
	service := newFinanceServiceForTest(financialRepo, &mockAccountRepository{})

	accountID := uint(2)
	entry, err := service.MarkPaid(context.Background(), "entry-1", &accountID, "Dinheiro")
	assert.NoError(t, err)
	assert.Equal(t, models.EntryStatusPaid, entry.Status)
	assert.Equal(t, "Dinheiro", entry.Method)
	assert.Equal(t, accountID, *entry.AccountID)
	assert.Len(t, financialRepo.updated, 1)
}

func TestAccountBalances(t *testing.T) {
	accountRepo := &mockAccountRepository{
		mockListAll: func(ctx context.Context) ([]models.Account, error) {
			return []models.Account{
				{ID: 1, Name: "Caixa"},
				{ID: 2, Name: "Banco"},
			}, nil
		},
	}
	financialRepo := &mockFinancialRepository{}
	financialRepo.FinancialRepository = &sumByAccountStub{sums: []repository.AccountSum{
		{AccountID: 1, Total: 350.0},
	}}
	service := newFinanceServiceForTest(financialRepo, accountRepo)

	balances, err := service.AccountBalances(context.Background())
	assert.NoError(t, err)
	assert.Len(t, balances, 2)
	assert.Equal(t, 350.0, balances[0].Balance)

	// Accounts without movement still show up, zeroed
	assert.Equal(t, "Banco", balances[1].Account.Name)
	assert.Equal(t, 0.0, balances[1].Balance)
}

// sumByAccountStub backs the embedded interface for methods the main mock
// does not override
type sumByAccountStub struct {
	repository.FinancialRepository
	sums []repository.AccountSum
}

func (s *sumByAccountStub) SumByAccount(ctx context.Context) ([]repository.AccountSum, error) {
	return s.sums, nil
}

func TestMaterializeRecurring_SpawnsDueOccurrences(t *testing.T) {
	template := models.FinancialEntry{
		ID:                 "template-1",
		Description:        "Aluguel",
		Amount:             1500,
		Type:               models.EntryTypeExpense,
		Date:               time.Now().AddDate(0, 0, -16),
		Recurring:          true,
		RecurrenceInterval: models.RecurrenceWeekly,
	}
	financialRepo := &mockFinancialRepository{
		mockFindTemplates: func(ctx context.Context) ([]models.FinancialEntry, error) {
			return []models.FinancialEntry{template}, nil
		},
	}
	service := newFinanceServiceForTest(financialRepo, &mockAccountRepository{})

	err := service.MaterializeRecurring(context.Background())
	assert.NoError(t, err)

	// Two weekly occurrences have come due since the template date
	assert.Len(t, financialRepo.created, 2)
	for _, occ := range financialRepo.created {
		assert.Equal(t, "Aluguel", occ.Description)
		assert.Equal(t, models.EntryStatusPending, occ.Status)
		assert.NotNil(t, occ.RecurrenceSourceID)
		assert.Equal(t, "template-1", *occ.RecurrenceSourceID)
	}
}

func TestMaterializeRecurring_SkipsExistingOccurrences(t *testing.T) {
	template := models.FinancialEntry{
		ID:                 "template-1",
		Description:        "Internet",
		Amount:             120,
		Type:               models.EntryTypeExpense,
		Date:               time.Now().AddDate(0, -1, 0),
		Recurring:          true,
		RecurrenceInterval: models.RecurrenceMonthly,
	}
	financialRepo := &mockFinancialRepository{
		mockFindTemplates: func(ctx context.Context) ([]models.FinancialEntry, error) {
			return []models.FinancialEntry{template}, nil
		},
		mockFindBySource: func(ctx context.Context, sourceID string, d time.Time) (*models.FinancialEntry, error) {
			return &models.FinancialEntry{ID: "existing"}, nil
		},
	}
	service := newFinanceServiceForTest(financialRepo, &mockAccountRepository{})

	err := service.MaterializeRecurring(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, financialRepo.created)
}

func TestMaterializeRecurring_StopsAtRecurrenceEnd(t *testing.T) {
	end := time.Now().AddDate(0, -1, -15)
	template := models.FinancialEntry{
		ID:                 "template-1",
		Description:        "Assinatura",
		Amount:             80,
		Type:               models.EntryTypeExpense,
		Date:               time.Now().AddDate(0, -2, 0),
		Recurring:          true,
		RecurrenceInterval: models.RecurrenceMonthly,
		RecurrenceEnd:      &end,
	}
	financialRepo := &mockFinancialRepository{
		mockFindTemplates: func(ctx context.Context) ([]models.FinancialEntry, error) {
			return []models.FinancialEntry{template}, nil
		},
	}
	service := newFinanceServiceForTest(financialRepo, &mockAccountRepository{})

	err := service.MaterializeRecurring(context.Background())
	assert.NoError(t, err)

	// Only the occurrence inside the recurrence window is spawned
	assert.Empty(t, financialRepo.created)
}

func TestMaterializeRecurring_UnknownIntervalIsNoOp(t *testing.T) {
	template := models.FinancialEntry{
		ID:          "template-1",
		Description: "Sem intervalo",
		Amount:      50,
		Type:        models.EntryTypeExpense,
		Date:        time.Now().AddDate(0, -1, 0),
		Recurring:   true,
	}
	financialRepo := &mockFinancialRepository{
		mockFindTemplates: func(ctx context.Context) ([]models.FinancialEntry, error) {
			return []models.FinancialEntry{template}, nil
		},
	}
	service := newFinanceServiceForTest(financialRepo, &mockAccountRepository{})

	err := service.MaterializeRecurring(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, financialRepo.created)
}
