package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/graficaflow/grafica-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	ReplaceItems(ctx context.Context, order *models.Order, items []models.OrderItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, query *OrderQuery) ([]models.Order, int64, error)
	FindByDeliveryRange(ctx context.Context, start, end time.Time) ([]models.Order, error)
	NextOrderNumber(ctx context.Context) (string, error)
	GetStats(ctx context.Context) (*OrderStats, error)
}

// OrderQuery extends ListQuery with order-specific filters
type OrderQuery struct {
	*ListQuery
	Status   string
	ClientID uint
	// Archived selects the archive view when true; active views exclude
	// archived orders.
	Archived bool
}

// OrderStats holds order count statistics per status
type OrderStats struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	Art        int64 `json:"art"`
	Production int64 `json:"production"`
	Shipping   int64 `json:"shipping"`
	Completed  int64 `json:"completed"`
	Archived   int64 `json:"archived"`
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Client").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	// Omit Items: line items are replaced explicitly via ReplaceItems so a
	// stale slice never resurrects deleted rows.
	return r.db.WithContext(ctx).Omit("Items", "Client").Save(order).Error
}

func (r *orderRepository) ReplaceItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, "id = ?", id).Error
	})
}

func (r *orderRepository) List(ctx context.Context, query *OrderQuery) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Order{})

	db = db.Where("orders.archived = ?", query.Archived)

	if query.Status != "" {
		db = db.Where("orders.status = ?", query.Status)
	}
	if query.ClientID > 0 {
		db = db.Where("orders.client_id = ?", query.ClientID)
	}

	if query.Filters != nil {
		if val, ok := query.Filters["start_date"]; ok && val != "" {
			db = db.Where("orders.date >= ?", val)
		}
		if val, ok := query.Filters["end_date"]; ok && val != "" {
			db = db.Where("orders.date <= ?", val)
		}
	}

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("orders.order_number ILIKE ? OR orders.client_name ILIKE ?", search, search)
	}

	// Count total using a separate session so the main query is not altered by Count()
	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("orders.created_at DESC")
	}

	err := db.Preload("Items").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) FindByDeliveryRange(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("archived = ? AND delivery_date IS NOT NULL AND delivery_date BETWEEN ? AND ?", false, start, end).
		Order("delivery_date ASC").
		Find(&orders).Error
	return orders, err
}

// NextOrderNumber increments the persisted sequence and returns the new
// number zero-padded to 4 digits. The row lock keeps numbers unique even
// under concurrent creates.
func (r *orderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	var seq models.OrderSequence
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			FirstOrCreate(&seq, models.OrderSequence{ID: 1}).Error; err != nil {
			return err
		}
		seq.LastNumber++
		return tx.Save(&seq).Error
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", seq.LastNumber), nil
}

func (r *orderRepository) GetStats(ctx context.Context) (*OrderStats, error) {
	stats := &OrderStats{}
	db := r.db.WithContext(ctx).Model(&models.Order{})

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := db.Session(&gorm.Session{}).
		Select("status, COUNT(*) as count").
		Where("archived = ?", false).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	for _, c := range counts {
		stats.Total += c.Count
		switch c.Status {
		case models.OrderStatusOpen:
			stats.Open = c.Count
		case models.OrderStatusArt:
			stats.Art = c.Count
		case models.OrderStatusProduction:
			stats.Production = c.Count
		case models.OrderStatusShipping:
			stats.Shipping = c.Count
		case models.OrderStatusCompleted:
			stats.Completed = c.Count
		}
	}

	if err := db.Session(&gorm.Session{}).
		Where("archived = ?", true).
		Count(&stats.Archived).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
