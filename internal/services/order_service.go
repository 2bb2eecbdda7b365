package services

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/graficaflow/grafica-api/internal/events"
	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/repository"
	"github.com/graficaflow/grafica-api/internal/statemachine"
)

// OrderItemInput is one requested line of an order
type OrderItemInput struct {
	ProductID *uint   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price"`
	Notes     string  `json:"notes"`
}

// InstallmentPlanInput describes how the balance should be split
type InstallmentPlanInput struct {
	Count        int        `json:"count"`
	IntervalDays int        `json:"interval_days"`
	FirstDate    *time.Time `json:"first_date"`
}

// OrderInput carries the fields accepted on order create and edit
type OrderInput struct {
	ClientID        uint                  `json:"client_id"`
	Items           []OrderItemInput      `json:"items"`
	Date            *time.Time            `json:"date"`
	DeliveryDate    *time.Time            `json:"delivery_date"`
	Entry           float64               `json:"entry"`
	EntryMethod     string                `json:"entry_method"`
	AccountID       *uint                 `json:"account_id"`
	InstallmentPlan *InstallmentPlanInput `json:"installment_plan"`
}

type OrderService struct {
	repo          repository.OrderRepository
	clientRepo    repository.ClientRepository
	productRepo   repository.ProductRepository
	financialRepo repository.FinancialRepository
	projector     *LedgerProjector
	schedule      *ScheduleService
	auditSvc      *AuditService
	broker        *events.Broker
}

func NewOrderService(
	repo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	financialRepo repository.FinancialRepository,
	projector *LedgerProjector,
	schedule *ScheduleService,
	auditSvc *AuditService,
	broker *events.Broker,
) *OrderService {
	return &OrderService{
		repo:          repo,
		clientRepo:    clientRepo,
		productRepo:   productRepo,
		financialRepo: financialRepo,
		projector:     projector,
		schedule:      schedule,
		auditSvc:      auditSvc,
		broker:        broker,
	}
}

// FindByID gets an order by ID
func (s *OrderService) FindByID(ctx context.Context, id string) (*models.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context, query *repository.OrderQuery) ([]models.Order, int64, error) {
	return s.repo.List(ctx, query)
}

// Create validates the input, derives totals and the installment plan,
// persists the order and projects its ledger entries
func (s *OrderService) Create(ctx context.Context, input *OrderInput) (*models.Order, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		return nil, ErrNotFound
	}

	items, total, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.repo.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber: number,
		ClientID:    client.ID,
		ClientName:  client.Name,
		Items:       items,
		Total:       total,
		Entry:       input.Entry,
		EntryMethod: input.EntryMethod,
		Status:      models.OrderStatusOpen,
		Date:        time.Now(),
	}
	if input.Date != nil {
		order.Date = *input.Date
	}
	order.DeliveryDate = input.DeliveryDate
	s.applyPlan(order, input.InstallmentPlan)
	order.RecalculateArchived()

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.projector.Project(ctx, order, input.AccountID); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, "CREATE", "Order", order.ID,
		fmt.Sprintf("%s criado para %s, total %.2f", order.Reference(), order.ClientName, order.Total), "", "")
	s.broker.Publish(events.TopicOrders, "created", order.ID)
	s.broker.Publish(events.TopicFinancial, "created", order.ID)

	return order, nil
}

// Update recomputes an order from fresh input, keeping its identity,
// number and paid-installment history, then regenerates the pending
// ledger forecast
func (s *OrderService) Update(ctx context.Context, id string, input *OrderInput) (*models.Order, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	client, err := s.clientRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		return nil, ErrNotFound
	}

	items, total, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	order.ClientID = client.ID
	order.ClientName = client.Name
	order.Total = total
	// Date is the creation date and stays fixed on edit
	var entryDelta float64
	if input.Entry > order.Entry {
		entryDelta = input.Entry - order.Entry
		order.Entry = input.Entry
	}
	if input.EntryMethod != "" {
		order.EntryMethod = input.EntryMethod
	}
	order.DeliveryDate = input.DeliveryDate
	s.applyPlan(order, input.InstallmentPlan)
	order.RecalculateArchived()

	if err := s.repo.ReplaceItems(ctx, order, items); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	// A raised entry on edit is new money. Record it before rebuilding the
	// forecast so paid ledger rows keep summing to the order entry.
	if entryDelta > 0 {
		if err := s.projector.RecordPayment(ctx, order, entryDelta, order.EntryMethod, input.AccountID, time.Now(), nil); err != nil {
			return nil, err
		}
	}
	if err := s.projector.Project(ctx, order, input.AccountID); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, "UPDATE", "Order", order.ID,
		fmt.Sprintf("%s atualizado, total %.2f", order.Reference(), order.Total), "", "")
	s.broker.Publish(events.TopicOrders, "updated", order.ID)
	s.broker.Publish(events.TopicFinancial, "updated", order.ID)

	return order, nil
}

// ChangeStatus moves the order through the production board and
// re-evaluates archival
func (s *OrderService) ChangeStatus(ctx context.Context, id, status string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	fsm := statemachine.NewOrderFSM(order)
	if err := fsm.Transition(ctx, status); err != nil {
		return nil, ErrInvalidState
	}

	order.RecalculateArchived()
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, "STATUS", "Order", order.ID,
		fmt.Sprintf("%s movido para %s", order.Reference(), order.Status), "", "")
	s.broker.Publish(events.TopicOrders, "status_changed", order.ID)

	return order, nil
}

// RegisterPayment credits a payment against the order balance
func (s *OrderService) RegisterPayment(ctx context.Context, id string, amount float64, method string, accountID *uint, date time.Time) (*models.Order, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	order.Entry += amount
	order.RecalculateArchived()
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err := s.projector.RecordPayment(ctx, order, amount, method, accountID, date, nil); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, "PAYMENT", "Order", order.ID,
		fmt.Sprintf("Pagamento de %.2f em %s", amount, order.Reference()), "", "")
	s.broker.Publish(events.TopicOrders, "payment", order.ID)
	s.broker.Publish(events.TopicFinancial, "payment", order.ID)

	return order, nil
}

// PayInstallment settles one installment of the plan. Paying an already
// settled index is a no-op.
func (s *OrderService) PayInstallment(ctx context.Context, id string, index int, amount float64, method string, accountID *uint) (*models.Order, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if index < 1 || index > order.InstallmentsCount {
		return nil, ErrInvalidInstallment
	}
	if order.InstallmentPaid(index) {
		return order, nil
	}

	order.Entry += amount
	order.PaidInstallments = append(order.PaidInstallments, index)
	order.RecalculateArchived()
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err := s.projector.RecordPayment(ctx, order, amount, method, accountID, time.Now(), &index); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, "PAYMENT", "Order", order.ID,
		fmt.Sprintf("Parcela %d de %s paga (%.2f)", index, order.Reference(), amount), "", "")
	s.broker.Publish(events.TopicOrders, "payment", order.ID)
	s.broker.Publish(events.TopicFinancial, "payment", order.ID)

	return order, nil
}

// Delete removes the order and every ledger row derived from it
func (s *OrderService) Delete(ctx context.Context, id string) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	if err := s.projector.Purge(ctx, order.ID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, order.ID); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, "DELETE", "Order", order.ID,
		fmt.Sprintf("%s removido", order.Reference()), "", "")
	s.broker.Publish(events.TopicOrders, "deleted", order.ID)
	s.broker.Publish(events.TopicFinancial, "deleted", order.ID)

	return nil
}

// Schedule returns the installment schedule of an order
func (s *OrderService) Schedule(ctx context.Context, id string) ([]ScheduledInstallment, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !order.HasInstallmentPlan() {
		return []ScheduledInstallment{}, nil
	}
	return s.schedule.Schedule(
		*order.FirstInstallmentDate,
		order.InstallmentsCount,
		order.InstallmentIntervalDays,
		order.InstallmentValue,
		order.PaidInstallments,
	), nil
}

// Calendar returns the active orders with a delivery date inside the range
func (s *OrderService) Calendar(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	return s.repo.FindByDeliveryRange(ctx, start, end)
}

// GetStats returns order counts per status plus the archive size
func (s *OrderService) GetStats(ctx context.Context) (*repository.OrderStats, error) {
	return s.repo.GetStats(ctx)
}

var nonDigits = regexp.MustCompile(`\D`)

// WhatsAppLink builds a wa.me link with a status message for the client
func (s *OrderService) WhatsAppLink(ctx context.Context, id string) (string, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", ErrNotFound
	}
	client, err := s.clientRepo.FindByID(ctx, order.ClientID)
	if err != nil {
		return "", ErrNotFound
	}
	if !client.HasPhone() {
		return "", ErrNoPhone
	}

	phone := nonDigits.ReplaceAllString(client.Phone, "")
	message := fmt.Sprintf("Olá %s! Sobre o seu %s: total R$ %.2f, saldo R$ %.2f.",
		client.Name, order.Reference(), order.Total, order.Balance())
	if order.DeliveryDate != nil {
		message += fmt.Sprintf(" Entrega prevista para %s.", order.DeliveryDate.Format("02/01/2006"))
	}

	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message)), nil
}

func (s *OrderService) validate(input *OrderInput) error {
	if input.ClientID == 0 {
		return ErrClientRequired
	}
	if len(input.Items) == 0 {
		return ErrItemsRequired
	}
	if input.Entry < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// buildItems resolves catalog snapshots and computes the order total
func (s *OrderService) buildItems(ctx context.Context, inputs []OrderItemInput) ([]models.OrderItem, float64, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	var total float64

	for _, in := range inputs {
		item := models.OrderItem{
			ProductID: in.ProductID,
			Name:      in.Name,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			Notes:     in.Notes,
		}
		if in.ProductID != nil {
			product, err := s.productRepo.FindByID(ctx, *in.ProductID)
			if err != nil {
				return nil, 0, ErrNotFound
			}
			if item.Name == "" {
				item.Name = product.Name
			}
			if item.UnitPrice == 0 {
				item.UnitPrice = product.UnitPrice
			}
		}
		if item.Name == "" {
			return nil, 0, ErrItemsRequired
		}
		total += item.Subtotal()
		items = append(items, item)
	}
	return items, total, nil
}

// applyPlan copies the installment plan onto the order, deriving the
// per-installment value from the balance
func (s *OrderService) applyPlan(order *models.Order, plan *InstallmentPlanInput) {
	if plan == nil || plan.Count <= 1 {
		order.InstallmentsCount = 0
		order.InstallmentValue = 0
		order.FirstInstallmentDate = nil
		return
	}

	order.InstallmentsCount = plan.Count
	order.InstallmentIntervalDays = plan.IntervalDays
	if order.InstallmentIntervalDays <= 0 {
		order.InstallmentIntervalDays = 30
	}
	order.FirstInstallmentDate = plan.FirstDate
	order.InstallmentValue = s.schedule.InstallmentValue(order.Total, order.Entry, plan.Count)
}
