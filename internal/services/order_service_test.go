package services

import (
	"context"
	"testing"
	"time"

	"github.com/graficaflow/grafica-api/internal/events"
	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// Mock OrderRepository (using embedding to avoid implementing all methods)
type mockOrderRepository struct {
	repository.OrderRepository
	mockFindByID        func(ctx context.Context, id string) (*models.Order, error)
	mockCreate          func(ctx context.Context, order *models.Order) error
	mockUpdate          func(ctx context.Context, order *models.Order) error
	mockReplaceItems    func(ctx context.Context, order *models.Order, items []models.OrderItem) error
	mockDelete          func(ctx context.Context, id string) error
	mockNextOrderNumber func(ctx context.Context) (string, error)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, order)
	}
	return nil
}
func (m *mockOrderRepository) Update(ctx context.Context, order *models.Order) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, order)
	}
	return nil
}
func (m *mockOrderRepository) ReplaceItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	if m.mockReplaceItems != nil {
		return m.mockReplaceItems(ctx, order, items)
	}
	order.Items = items
	return nil
}
func (m *mockOrderRepository) Delete(ctx context.Context, id string) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, id)
	}
	return nil
}
func (m *mockOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	if m.mockNextOrderNumber != nil {
		return m.mockNextOrderNumber(ctx)
	}
	return "0001", nil
}

// Mock ClientRepository
type mockClientRepository struct {
	repository.ClientRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Client, error)
}

func (m *mockClientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return &models.Client{ID: id, Name: "Cliente Teste"}, nil
}

// Mock ProductRepository
type mockProductRepository struct {
	repository.ProductRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Product, error)
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

// Mock FinancialRepository, recording the ledger rows it receives
type mockFinancialRepository struct {
	repository.FinancialRepository
	created                []models.FinancialEntry
	updated                []models.FinancialEntry
	deletedPendingOrderIDs []string
	deletedOrderIDs        []string
	deletedIDs             []string
	mockFindByID           func(ctx context.Context, id string) (*models.FinancialEntry, error)
	mockFindByOrderID      func(ctx context.Context, orderID string) ([]models.FinancialEntry, error)
	mockFindPendingInst    func(ctx context.Context, orderID string, installment int) (*models.FinancialEntry, error)
	mockFindTemplates      func(ctx context.Context) ([]models.FinancialEntry, error)
	mockFindBySource       func(ctx context.Context, sourceID string, date time.Time) (*models.FinancialEntry, error)
}

func (m *mockFinancialRepository) FindByID(ctx context.Context, id string) (*models.FinancialEntry, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockFinancialRepository) Delete(ctx context.Context, id string) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}
func (m *mockFinancialRepository) FindRecurringTemplates(ctx context.Context) ([]models.FinancialEntry, error) {
	if m.mockFindTemplates != nil {
		return m.mockFindTemplates(ctx)
	}
	return nil, nil
}
func (m *mockFinancialRepository) FindByRecurrenceSource(ctx context.Context, sourceID string, date time.Time) (*models.FinancialEntry, error) {
	if m.mockFindBySource != nil {
		return m.mockFindBySource(ctx, sourceID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFinancialRepository) Create(ctx context.Context, entry *models.FinancialEntry) error {
	m.created = append(m.created, *entry)
	return nil
}
func (m *mockFinancialRepository) CreateBatch(ctx context.Context, entries []models.FinancialEntry) error {
	m.created = append(m.created, entries...)
	return nil
}
func (m *mockFinancialRepository) Update(ctx context.Context, entry *models.FinancialEntry) error {
	m.updated = append(m.updated, *entry)
	return nil
}
func (m *mockFinancialRepository) FindByOrderID(ctx context.Context, orderID string) ([]models.FinancialEntry, error) {
	if m.mockFindByOrderID != nil {
		return m.mockFindByOrderID(ctx, orderID)
	}
	return nil, nil
}
func (m *mockFinancialRepository) FindPendingInstallment(ctx context.Context, orderID string, installment int) (*models.FinancialEntry, error) {
	if m.mockFindPendingInst != nil {
		return m.mockFindPendingInst(ctx, orderID, installment)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockFinancialRepository) DeleteByOrderID(ctx context.Context, orderID string) error {
	m.deletedOrderIDs = append(m.deletedOrderIDs, orderID)
	return nil
}
func (m *mockFinancialRepository) DeletePendingByOrderID(ctx context.Context, orderID string) error {
	m.deletedPendingOrderIDs = append(m.deletedPendingOrderIDs, orderID)
	return nil
}

// Mock AuditRepository
type mockAuditRepository struct {
	repository.AuditRepository
	mockCreate func(ctx context.Context, log *models.AuditLog) error
}

func (m *mockAuditRepository) Create(ctx context.Context, log *models.AuditLog) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, log)
	}
	return nil
}

func newOrderServiceForTest(orderRepo *mockOrderRepository, clientRepo *mockClientRepository, productRepo *mockProductRepository, financialRepo *mockFinancialRepository) *OrderService {
	schedule := NewScheduleService()
	projector := NewLedgerProjector(financialRepo, schedule)
	auditSvc := NewAuditService(&mockAuditRepository{}, nil)
	broker := events.NewBroker()
	return NewOrderService(orderRepo, clientRepo, productRepo, financialRepo, projector, schedule, auditSvc, broker)
}

func TestCreateOrder_ProjectsLedger(t *testing.T) {
	orderRepo := &mockOrderRepository{}
	financialRepo := &mockFinancialRepository{}
	service := newOrderServiceForTest(orderRepo, &mockClientRepository{}, &mockProductRepository{}, financialRepo)

	orderRepo.mockCreate = func(ctx context.Context, order *models.Order) error {
		order.ID = "order-1"
		return nil
	}

	input := &OrderInput{
		ClientID: 1,
		Items: []OrderItemInput{
			{Name: "Cartão de visita", Quantity: 2, UnitPrice: 100},
			{Name: "Banner", Quantity: 1, UnitPrice: 50},
		},
		Entry:       100,
		EntryMethod: "Pix",
	}

	order, err := service.Create(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, "0001", order.OrderNumber)
	assert.Equal(t, 250.0, order.Total)
	assert.Equal(t, models.OrderStatusOpen, order.Status)
	assert.False(t, order.Archived)

	// One paid entry row plus one pending balance row
	assert.Len(t, financialRepo.created, 2)

	paid := financialRepo.created[0]
	assert.Equal(t, "Entrada - Pedido #0001", paid.Description)
	assert.Equal(t, 100.0, paid.Amount)
	assert.Equal(t, models.EntryStatusPaid, paid.Status)
	assert.Equal(t, "Pix", paid.Method)

	pending := financialRepo.created[1]
	assert.Equal(t, "Saldo - Pedido #0001", pending.Description)
	assert.Equal(t, 150.0, pending.Amount)
	assert.Equal(t, models.EntryStatusPending, pending.Status)
	assert.Equal(t, MethodPlaceholder, pending.Method)
	assert.Equal(t, models.CategorySales, pending.Category)
}

func TestCreateOrder_Validation(t *testing.T) {
	service := newOrderServiceForTest(&mockOrderRepository{}, &mockClientRepository{}, &mockProductRepository{}, &mockFinancialRepository{})

	_, err := service.Create(context.Background(), &OrderInput{
		Items: []OrderItemInput{{Name: "Banner", Quantity: 1, UnitPrice: 50}},
	})
	assert.ErrorIs(t, err, ErrClientRequired)

	_, err = service.Create(context.Background(), &OrderInput{ClientID: 1})
	assert.ErrorIs(t, err, ErrItemsRequired)

	_, err = service.Create(context.Background(), &OrderInput{
		ClientID: 1,
		Items:    []OrderItemInput{{Name: "Banner", Quantity: 1, UnitPrice: 50}},
		Entry:    -10,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCreateOrder_ResolvesProductSnapshot(t *testing.T) {
	productRepo := &mockProductRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Product, error) {
			return &models.Product{ID: id, Name: "Adesivo vinil", UnitPrice: 15}, nil
		},
	}
	service := newOrderServiceForTest(&mockOrderRepository{}, &mockClientRepository{}, productRepo, &mockFinancialRepository{})

	productID := uint(7)
	order, err := service.Create(context.Background(), &OrderInput{
		ClientID: 1,
		Items:    []OrderItemInput{{ProductID: &productID, Quantity: 10}},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Adesivo vinil", order.Items[0].Name)
	assert.Equal(t, 15.0, order.Items[0].UnitPrice)
	assert.Equal(t, 150.0, order.Total)
}

func TestCreateOrder_InstallmentPlan(t *testing.T) {
	orderRepo := &mockOrderRepository{}
	financialRepo := &mockFinancialRepository{}
	service := newOrderServiceForTest(orderRepo, &mockClientRepository{}, &mockProductRepository{}, financialRepo)

	first := date(2025, time.January, 1)
	order, err := service.Create(context.Background(), &OrderInput{
		ClientID:        1,
		Items:           []OrderItemInput{{Name: "Catálogo", Quantity: 1, UnitPrice: 1000}},
		Entry:           100,
		InstallmentPlan: &InstallmentPlanInput{Count: 3, IntervalDays: 30, FirstDate: &first},
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, order.InstallmentsCount)
	assert.Equal(t, 300.0, order.InstallmentValue)

	// Entry row plus three pending installment rows
	assert.Len(t, financialRepo.created, 4)

	inst1 := financialRepo.created[1]
	assert.Equal(t, "Parcela 1/3 - Pedido #0001", inst1.Description)
	assert.Equal(t, first, inst1.Date)
	assert.Equal(t, models.EntryStatusPending, inst1.Status)
	assert.NotNil(t, inst1.InstallmentNumber)
	assert.Equal(t, 1, *inst1.InstallmentNumber)

	inst3 := financialRepo.created[3]
	assert.Equal(t, "Parcela 3/3 - Pedido #0001", inst3.Description)
	assert.Equal(t, first.AddDate(0, 0, 60), inst3.Date)
}

func TestCreateOrder_SinglePaymentResetsPlan(t *testing.T) {
	service := newOrderServiceForTest(&mockOrderRepository{}, &mockClientRepository{}, &mockProductRepository{}, &mockFinancialRepository{})

	first := date(2025, time.January, 1)
	order, err := service.Create(context.Background(), &OrderInput{
		ClientID:        1,
		Items:           []OrderItemInput{{Name: "Banner", Quantity: 1, UnitPrice: 200}},
		InstallmentPlan: &InstallmentPlanInput{Count: 1, IntervalDays: 30, FirstDate: &first},
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, order.InstallmentsCount)
	assert.Equal(t, 0.0, order.InstallmentValue)
	assert.Nil(t, order.FirstInstallmentDate)
}

func TestChangeStatus(t *testing.T) {
	existing := &models.Order{
		ID:          "order-1",
		OrderNumber: "0001",
		Status:      models.OrderStatusOpen,
		Total:       500,
		Entry:       0,
	}
	orderRepo := &mockOrderRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.Order, error) {
			return existing, nil
		},
	}
	service := newOrderServiceForTest(orderRepo, &mockClientRepository{}, &mockProductRepository{}, &mockFinancialRepository{})

	_, err := service.ChangeStatus(context.Background(), "order-1", "bogus")
	assert.ErrorIs(t, err, ErrInvalidState)

	order, err := service.ChangeStatus(context.Background(), "order-1", models.OrderStatusProduction)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusProduction, order.Status)
	assert.False(t, order.Archived)

	// Completing an unpaid order must not archive it
	order, err = service.ChangeStatus(context.Background(), "order-1", models.OrderStatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.False(t, order.Archived)
}

func TestChangeStatus_ArchivesCompletedPaidOrder(t *testing.T) {
	existing := &models.Order{
		ID:          "order-1",
		OrderNumber: "0001",
		Status:      models.OrderStatusShipping,
		Total:       500,
		Entry:       500,
	}
	orderRepo := &mockOrderRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.Order, error) {
			return existing, nil
		},
	}
	service := newOrderServiceForTest(orderRepo, &mockClientRepository{}, &mockProductRepository{}, &mockFinancialRepository{})

	order, err := service.ChangeStatus(context.Background(), "order-1", models.OrderStatusCompleted)
	assert.NoError(t, err)
	assert.True(t, order.Archived)

	// Reopening pulls it back off the archive
	order, err = service.ChangeStatus(context.Background(), "order-1", models.OrderStatusOpen)
	assert.NoError(t, err)
	assert.False(t, order.Archived)
}

func TestRegisterPayment(t *testing.T) {
	existing := &models.Order{
		ID:          "order-1",
		OrderNumber: "0001",
		Status:      models.OrderStatusCompleted,
		Total:       500,
		Entry:       200,
	}
	orderRepo := &mockOrderRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.Order, error) {
			return existing, nil
		},
	}
	financialRepo := &mockFinancialRepository{}
	service := newOrderServiceForTest(orderRepo, &mockClientRepository{}, &mockProductRepository{}, financialRepo)

	_, err := service.RegisterPayment(context.Background(), "order-1", 0, "Pix", nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidAmount)

	order, err := service.RegisterPayment(context.Background(), "order-1", 300, "Pix", nil, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 500.0, order.Entry)
	assert.True(t, order.FullyPaid())
	assert.True(t, order.Archived)

	// Payment appended as a paid row and the forecast cleared
	assert.Len(t, financialRepo.created, 1)
	assert.Equal(t, "Pagamento - Pedido #0001", financialRepo.created[0].Description)
	assert.Equal(t, models.EntryStatusPaid, financialRepo.created[0].Status)
	assert.Equal(t, []string{"order-1"}, financialRepo.deletedPendingOrderIDs)
}

func TestPayInstallment(t *testing.T) {
	first := date(2025, time.January, 1)
	existing := &models.Order{
		ID:                      "order-1",
		OrderNumber:             "0001",
		Status:                  models.OrderStatusOpen,
		Total:                   1000,
		Entry:                   100,
		InstallmentsCount:       3,
		InstallmentIntervalDays: 30,
		FirstInstallmentDate:    &first,
		InstallmentValue:        300,
		PaidInstallments:        []int{1},
	}
	orderRepo := &mockOrderRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.Order, error) {
			return existing, nil
		},
	}
	two := 2
	pendingRow := models.FinancialEntry{
		ID:                "entry-2",
		InstallmentNumber: &two,
		Description:       "Parcela 2/3 - Pedido #0001",
		Amount:            300,
		Status:            models.EntryStatusPending,
	}
	financialRepo := &mockFinancialRepository{
		mockFindPendingInst: func(ctx context.Context, orderID string, installment int) (*models.FinancialEntry, error) {
			if installment == 2 {
				row := pendingRow
				return &row, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := newOrderServiceForTest(orderRepo, &mockClientRepository{}, &mockProductRepository{}, financialRepo)

	_, err := service.PayInstallment(context.Background(), "order-1", 4, 300, "Pix", nil)
	assert.ErrorIs(t, err, ErrInvalidInstallment)

	_, err = service.PayInstallment(context.Background(), "order-1", 0, 300, "Pix", nil)
	assert.ErrorIs(t, err, ErrInvalidInstallment)

	// Paying an already settled index is a no-op
	order, err := service.PayInstallment(context.Background(), "order-1", 1, 300, "Pix", nil)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, order.Entry)
	assert.Empty(t, financialRepo.updated)

	// Paying an open index settles its pending row in place
	order, err = service.PayInstallment(context.Background(), "order-1", 2, 300, "Pix", nil)
	assert.NoError(t, err)
	assert.Equal(t, 400.0, order.Entry)
	assert.Contains(t, order.PaidInstallments, 2)
	assert.Empty(t, financialRepo.created)
	assert.Len(t, financialRepo.updated, 1)
	assert.Equal(t, "entry-2", financialRepo.updated[0].ID)
	assert.Equal(t, models.EntryStatusPaid, financialRepo.updated[0].Status)
	assert.Equal(t, "Pix", financialRepo.updated[0].Method)
}

func TestPayInstallment_AppendsWhenForecastMissing(t *testing.T) {
	first := date(2025, time.January, 1)
	existing := &models.Order{
		ID:                      "order-1",
		OrderNumber:             "0001",
		Status:                  models.OrderStatusOpen,
		Total:                   600,
		Entry:                   0,
		InstallmentsCount:       2,
		InstallmentIntervalDays: 30,
		FirstInstallmentDate:    &first,
		InstallmentValue:        300,
	}
	orderRepo := &mockOrderRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.Order, error) {
			return existing, nil
		},
	}
	financialRepo := &mockFinancialRepository{}
	service := newOrderServiceForTest(orderRepo, &mockClientRepository{}, &mockProductRepository{}, financialRepo)

	_, err := service.PayInstallment(context.Background(), "order-1", 1, 300, "Dinheiro", nil)
	assert.NoError(t, err)
	assert.Len(t, financialRepo.created, 1)
	assert.Equal(t, "Parcela 1/2 - Pedido #0001", financialRepo.created[0].Description)
	assert.Equal(t, models.EntryStatusPaid, financialRepo.created[0].Status)
}

func TestUpdateOrder_KeepsEntryMonotonic(t *testing.T) {
	first := date(2025, time.January, 1)
	existing := &models.Order{
		ID:                      "order-1",
		OrderNumber:             "0001",
		Status:                  models.OrderStatusOpen,
		Total:                   1000,
		Entry:                   400,
		InstallmentsCount:       3,
		InstallmentIntervalDays: 30,
		FirstInstallmentDate:    &first,
		InstallmentValue:        300,
		PaidInstallments:        []int{1},
	}
	orderRepo := &mockOrderRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.Order, error) {
			return existing, nil
		},
	}
	orderID := "order-1"
	financialRepo := &mockFinancialRepository{
		mockFindByOrderID: func(ctx context.Context, id string) ([]models.FinancialEntry, error) {
			return []models.FinancialEntry{
				{OrderID: &orderID, Status: models.EntryStatusPaid, Amount: 100},
			}, nil
		},
	}
	service := newOrderServiceForTest(orderRepo, &mockClientRepository{}, &mockProductRepository{}, financialRepo)

	order, err := service.Update(context.Background(), "order-1", &OrderInput{
		ClientID:        1,
		Items:           []OrderItemInput{{Name: "Catálogo", Quantity: 1, UnitPrice: 1000}},
		Entry:           50,
		InstallmentPlan: &InstallmentPlanInput{Count: 3, IntervalDays: 30, FirstDate: &first},
	})
	assert.NoError(t, err)

	// A lower entry on edit never erases recorded payments
	assert.Equal(t, 400.0, order.Entry)
	assert.Equal(t, "0001", order.OrderNumber)
	assert.Equal(t, []int{1}, order.PaidInstallments)

	// Forecast purged and regenerated, skipping the settled index
	assert.Equal(t, []string{"order-1"}, financialRepo.deletedPendingOrderIDs)
	assert.Len(t, financialRepo.created, 2)
	assert.Equal(t, "Parcela 2/3 - Pedido #0001", financialRepo.created[0].Description)
	assert.Equal(t, "Parcela 3/3 - Pedido #0001", financialRepo.created[1].Description)
}

func TestUpdateOrder_RecordsRaisedEntryAsPayment(t *testing.T) {
	existing := &models.Order{
		ID:          "order-1",
		OrderNumber: "0001",
		Status:      models.OrderStatusOpen,
		Total:       1000,
		Entry:       100,
		EntryMethod: "Pix",
	}
	orderRepo := &mockOrderRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.Order, error) {
			return existing, nil
		},
	}
	orderID := "order-1"
	financialRepo := &mockFinancialRepository{
		mockFindByOrderID: func(ctx context.Context, id string) ([]models.FinancialEntry, error) {
			return []models.FinancialEntry{
				{OrderID: &orderID, Status: models.EntryStatusPaid, Amount: 100},
			}, nil
		},
	}
	service := newOrderServiceForTest(orderRepo, &mockClientRepository{}, &mockProductRepository{}, financialRepo)

	order, err := service.Update(context.Background(), "order-1", &OrderInput{
		ClientID:    1,
		Items:       []OrderItemInput{{Name: "Catálogo", Quantity: 1, UnitPrice: 1000}},
		Entry:       300,
		EntryMethod: "Pix",
	})
	assert.NoError(t, err)
	assert.Equal(t, 300.0, order.Entry)

	// The raise lands as its own paid row, then the forecast is rebuilt
	assert.Len(t, financialRepo.created, 2)

	payment := financialRepo.created[0]
	assert.Equal(t, "Pagamento - Pedido #0001", payment.Description)
	assert.Equal(t, 200.0, payment.Amount)
	assert.Equal(t, models.EntryStatusPaid, payment.Status)
	assert.Equal(t, "Pix", payment.Method)

	// Paid rows (the original entry plus the raise) sum to the order entry
	assert.Equal(t, order.Entry, 100.0+payment.Amount)

	pending := financialRepo.created[1]
	assert.Equal(t, "Saldo - Pedido #0001", pending.Description)
	assert.Equal(t, 700.0, pending.Amount)
	assert.Equal(t, models.EntryStatusPending, pending.Status)
}

func TestUpdateOrder_PreservesCreationDate(t *testing.T) {
	created := date(2025, time.January, 10)
	existing := &models.Order{
		ID:          "order-1",
		OrderNumber: "0001",
		Status:      models.OrderStatusOpen,
		Total:       500,
		Entry:       0,
		Date:        created,
	}
	orderRepo := &mockOrderRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.Order, error) {
			return existing, nil
		},
	}
	service := newOrderServiceForTest(orderRepo, &mockClientRepository{}, &mockProductRepository{}, &mockFinancialRepository{})

	other := date(2025, time.March, 5)
	order, err := service.Update(context.Background(), "order-1", &OrderInput{
		ClientID: 1,
		Items:    []OrderItemInput{{Name: "Banner", Quantity: 1, UnitPrice: 500}},
		Date:     &other,
	})
	assert.NoError(t, err)
	assert.Equal(t, created, order.Date)
}

func TestDeleteOrder_PurgesLedger(t *testing.T) {
	existing := &models.Order{ID: "order-1", OrderNumber: "0001", Status: models.OrderStatusOpen}
	deleted := false
	orderRepo := &mockOrderRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.Order, error) {
			return existing, nil
		},
		mockDelete: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	financialRepo := &mockFinancialRepository{}
	service := newOrderServiceForTest(orderRepo, &mockClientRepository{}, &mockProductRepository{}, financialRepo)

	err := service.Delete(context.Background(), "order-1")
	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"order-1"}, financialRepo.deletedOrderIDs)
}

func TestWhatsAppLink(t *testing.T) {
	delivery := date(2025, time.February, 10)
	existing := &models.Order{
		ID:           "order-1",
		OrderNumber:  "0001",
		ClientID:     1,
		Status:       models.OrderStatusProduction,
		Total:        500,
		Entry:        200,
		DeliveryDate: &delivery,
	}
	orderRepo := &mockOrderRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.Order, error) {
			return existing, nil
		},
	}
	clientRepo := &mockClientRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Client, error) {
			return &models.Client{ID: id, Name: "Maria", Phone: "(11) 98765-4321"}, nil
		},
	}
	service := newOrderServiceForTest(orderRepo, clientRepo, &mockProductRepository{}, &mockFinancialRepository{})

	link, err := service.WhatsAppLink(context.Background(), "order-1")
	assert.NoError(t, err)
	assert.Contains(t, link, "https://wa.me/11987654321?text=")
	assert.Contains(t, link, "Pedido+%230001")

	clientRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Client, error) {
		return &models.Client{ID: id, Name: "Maria"}, nil
	}
	_, err = service.WhatsAppLink(context.Background(), "order-1")
	assert.ErrorIs(t, err, ErrNoPhone)
}
