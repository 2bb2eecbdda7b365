package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/repository"
	"gorm.io/gorm"
)

// MethodPlaceholder marks scheduled installments whose payment method is
// not yet known.
const MethodPlaceholder = "Boleto/Cartão"

// LedgerProjector derives financial entries from order state so the
// cash-flow ledger never has to be maintained by hand.
//
// Paid rows are immutable payment history. Pending rows are a forecast:
// they are regenerated whenever the order changes and settled in place
// when the matching installment is paid.
type LedgerProjector struct {
	financialRepo repository.FinancialRepository
	schedule      *ScheduleService
}

// NewLedgerProjector creates a new ledger projector
func NewLedgerProjector(financialRepo repository.FinancialRepository, schedule *ScheduleService) *LedgerProjector {
	return &LedgerProjector{
		financialRepo: financialRepo,
		schedule:      schedule,
	}
}

// Project rebuilds the pending forecast for an order and records the
// entry payment when none exists yet. Called on order create and edit.
func (p *LedgerProjector) Project(ctx context.Context, order *models.Order, accountID *uint) error {
	if err := p.financialRepo.DeletePendingByOrderID(ctx, order.ID); err != nil {
		return err
	}

	existing, err := p.financialRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}

	// Entry payment: recorded once, on first projection
	if order.Entry > 0 && len(existing) == 0 {
		entry := models.FinancialEntry{
			OrderID:     &order.ID,
			Description: fmt.Sprintf("Entrada - %s", order.Reference()),
			Amount:      order.Entry,
			Type:        models.EntryTypeIncome,
			Date:        time.Now(),
			Category:    models.CategorySales,
			AccountID:   accountID,
			Method:      order.EntryMethod,
			Status:      models.EntryStatusPaid,
		}
		if err := p.financialRepo.Create(ctx, &entry); err != nil {
			return err
		}
	}

	balance := order.Balance()
	if balance <= models.PaidTolerance {
		return nil
	}

	if order.HasInstallmentPlan() {
		return p.projectInstallments(ctx, order, accountID)
	}

	// Single pending row for the open balance
	dueDate := time.Now()
	if order.DeliveryDate != nil {
		dueDate = *order.DeliveryDate
	}
	pending := models.FinancialEntry{
		OrderID:     &order.ID,
		Description: fmt.Sprintf("Saldo - %s", order.Reference()),
		Amount:      balance,
		Type:        models.EntryTypeIncome,
		Date:        dueDate,
		Category:    models.CategorySales,
		Method:      MethodPlaceholder,
		Status:      models.EntryStatusPending,
	}
	return p.financialRepo.Create(ctx, &pending)
}

// projectInstallments emits one pending row per unpaid installment
func (p *LedgerProjector) projectInstallments(ctx context.Context, order *models.Order, accountID *uint) error {
	schedule := p.schedule.Schedule(
		*order.FirstInstallmentDate,
		order.InstallmentsCount,
		order.InstallmentIntervalDays,
		order.InstallmentValue,
		order.PaidInstallments,
	)

	var entries []models.FinancialEntry
	for _, inst := range schedule {
		if inst.Paid {
			continue
		}
		index := inst.Index
		entries = append(entries, models.FinancialEntry{
			OrderID:           &order.ID,
			InstallmentNumber: &index,
			Description: fmt.Sprintf("Parcela %d/%d - %s",
				inst.Index, order.InstallmentsCount, order.Reference()),
			Amount:   inst.Value,
			Type:     models.EntryTypeIncome,
			Date:     inst.DueDate,
			Category: models.CategorySales,
			Method:   MethodPlaceholder,
			Status:   models.EntryStatusPending,
		})
	}
	return p.financialRepo.CreateBatch(ctx, entries)
}

// RecordPayment appends the paid row for a payment against an order.
//
// An installment payment settles its own pending row in place, keeping
// one ledger line per installment. A generic payment appends a new paid
// row; when it clears the balance, the remaining forecast rows are
// removed so the ledger does not keep charging a settled order.
func (p *LedgerProjector) RecordPayment(ctx context.Context, order *models.Order, amount float64, method string, accountID *uint, date time.Time, installment *int) error {
	if installment != nil {
		pending, err := p.financialRepo.FindPendingInstallment(ctx, order.ID, *installment)
		if err == nil {
			pending.Status = models.EntryStatusPaid
			pending.Amount = amount
			pending.Method = method
			pending.AccountID = accountID
			pending.Date = date
			return p.financialRepo.Update(ctx, pending)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		// No forecast row survived (e.g. edited plan); fall through and append
	}

	description := fmt.Sprintf("Pagamento - %s", order.Reference())
	if installment != nil {
		description = fmt.Sprintf("Parcela %d/%d - %s",
			*installment, order.InstallmentsCount, order.Reference())
	}

	paid := models.FinancialEntry{
		OrderID:           &order.ID,
		InstallmentNumber: installment,
		Description:       description,
		Amount:            amount,
		Type:              models.EntryTypeIncome,
		Date:              date,
		Category:          models.CategorySales,
		AccountID:         accountID,
		Method:            method,
		Status:            models.EntryStatusPaid,
	}
	if err := p.financialRepo.Create(ctx, &paid); err != nil {
		return err
	}

	if installment == nil && order.FullyPaid() {
		return p.financialRepo.DeletePendingByOrderID(ctx, order.ID)
	}
	return nil
}

// Purge removes every ledger row belonging to an order. Called on delete.
func (p *LedgerProjector) Purge(ctx context.Context, orderID string) error {
	return p.financialRepo.DeleteByOrderID(ctx, orderID)
}
