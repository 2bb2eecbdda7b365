package repository

import (
	"context"
	"time"

	"github.com/graficaflow/grafica-api/internal/models"
	"gorm.io/gorm"
)

// FinancialRepository defines the interface for financial entry data access
type FinancialRepository interface {
	FindByID(ctx context.Context, id string) (*models.FinancialEntry, error)
	Create(ctx context.Context, entry *models.FinancialEntry) error
	CreateBatch(ctx context.Context, entries []models.FinancialEntry) error
	Update(ctx context.Context, entry *models.FinancialEntry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, query *FinancialQuery) ([]models.FinancialEntry, int64, error)
	FindByOrderID(ctx context.Context, orderID string) ([]models.FinancialEntry, error)
	FindPendingInstallment(ctx context.Context, orderID string, installment int) (*models.FinancialEntry, error)
	DeleteByOrderID(ctx context.Context, orderID string) error
	DeletePendingByOrderID(ctx context.Context, orderID string) error
	SumByAccount(ctx context.Context) ([]AccountSum, error)
	SumByCategory(ctx context.Context, start, end time.Time) ([]CategorySum, error)
	Summary(ctx context.Context, start, end time.Time) (*FinancialSummary, error)
	FindDueBetween(ctx context.Context, start, end time.Time) ([]models.FinancialEntry, error)
	FindRecurringTemplates(ctx context.Context) ([]models.FinancialEntry, error)
	FindByRecurrenceSource(ctx context.Context, sourceID string, date time.Time) (*models.FinancialEntry, error)
}

// FinancialQuery extends ListQuery with ledger-specific filters
type FinancialQuery struct {
	*ListQuery
	Type      string
	Status    string
	Category  string
	AccountID uint
	OrderID   string
	StartDate *time.Time
	EndDate   *time.Time
}

// AccountSum is the paid movement total of a single account
type AccountSum struct {
	AccountID uint    `json:"account_id"`
	Total     float64 `json:"total"`
}

// CategorySum is the paid movement of one category over a period
type CategorySum struct {
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Total    float64 `json:"total"`
}

// FinancialSummary aggregates paid and pending movement over a period
type FinancialSummary struct {
	TotalIncome    float64 `json:"total_income"`
	TotalExpense   float64 `json:"total_expense"`
	Balance        float64 `json:"balance"`
	PendingIncome  float64 `json:"pending_income"`
	PendingExpense float64 `json:"pending_expense"`
}

type financialRepository struct {
	db *gorm.DB
}

// NewFinancialRepository creates a new financial entry repository
func NewFinancialRepository(db *gorm.DB) FinancialRepository {
	return &financialRepository{db: db}
}

func (r *financialRepository) FindByID(ctx context.Context, id string) (*models.FinancialEntry, error) {
	var entry models.FinancialEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *financialRepository) Create(ctx context.Context, entry *models.FinancialEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *financialRepository) CreateBatch(ctx context.Context, entries []models.FinancialEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *financialRepository) Update(ctx context.Context, entry *models.FinancialEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *financialRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.FinancialEntry{}, "id = ?", id).Error
}

func (r *financialRepository) List(ctx context.Context, query *FinancialQuery) ([]models.FinancialEntry, int64, error) {
	var entries []models.FinancialEntry
	var total int64

	db := r.db.WithContext(ctx).Model(&models.FinancialEntry{})

	if query.Type != "" {
		db = db.Where("type = ?", query.Type)
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Category != "" {
		db = db.Where("category = ?", query.Category)
	}
	if query.AccountID > 0 {
		db = db.Where("account_id = ?", query.AccountID)
	}
	if query.OrderID != "" {
		db = db.Where("order_id = ?", query.OrderID)
	}
	if query.StartDate != nil {
		db = db.Where("date >= ?", query.StartDate)
	}
	if query.EndDate != nil {
		db = db.Where("date <= ?", query.EndDate)
	}
	if query.Search != "" {
		db = db.Where("description ILIKE ?", "%"+query.Search+"%")
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("date DESC, created_at DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&entries).Error
	return entries, total, err
}

func (r *financialRepository) FindByOrderID(ctx context.Context, orderID string) ([]models.FinancialEntry, error) {
	var entries []models.FinancialEntry
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("date ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *financialRepository) FindPendingInstallment(ctx context.Context, orderID string, installment int) (*models.FinancialEntry, error) {
	var entry models.FinancialEntry
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND installment_number = ? AND status = ?",
			orderID, installment, models.EntryStatusPending).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *financialRepository) DeleteByOrderID(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.FinancialEntry{}).Error
}

func (r *financialRepository) DeletePendingByOrderID(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID, models.EntryStatusPending).
		Delete(&models.FinancialEntry{}).Error
}

func (r *financialRepository) SumByAccount(ctx context.Context) ([]AccountSum, error) {
	var sums []AccountSum
	err := r.db.WithContext(ctx).Model(&models.FinancialEntry{}).
		Select("account_id, SUM(CASE WHEN type = ? THEN amount ELSE -amount END) as total",
			models.EntryTypeIncome).
		Where("status = ? AND account_id IS NOT NULL", models.EntryStatusPaid).
		Group("account_id").
		Scan(&sums).Error
	return sums, err
}

func (r *financialRepository) SumByCategory(ctx context.Context, start, end time.Time) ([]CategorySum, error) {
	var sums []CategorySum
	err := r.db.WithContext(ctx).Model(&models.FinancialEntry{}).
		Select("category, type, SUM(amount) as total").
		Where("status = ? AND date BETWEEN ? AND ?", models.EntryStatusPaid, start, end).
		Group("category, type").
		Order("total DESC").
		Scan(&sums).Error
	return sums, err
}

func (r *financialRepository) Summary(ctx context.Context, start, end time.Time) (*FinancialSummary, error) {
	type row struct {
		Type   string
		Status string
		Total  float64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.FinancialEntry{}).
		Select("type, status, SUM(amount) as total").
		Where("date BETWEEN ? AND ?", start, end).
		Group("type, status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &FinancialSummary{}
	for _, r := range rows {
		switch {
		case r.Type == models.EntryTypeIncome && r.Status == models.EntryStatusPaid:
			summary.TotalIncome = r.Total
		case r.Type == models.EntryTypeExpense && r.Status == models.EntryStatusPaid:
			summary.TotalExpense = r.Total
		case r.Type == models.EntryTypeIncome && r.Status == models.EntryStatusPending:
			summary.PendingIncome = r.Total
		case r.Type == models.EntryTypeExpense && r.Status == models.EntryStatusPending:
			summary.PendingExpense = r.Total
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense
	return summary, nil
}

func (r *financialRepository) FindDueBetween(ctx context.Context, start, end time.Time) ([]models.FinancialEntry, error) {
	var entries []models.FinancialEntry
	err := r.db.WithContext(ctx).
		Where("status = ? AND date BETWEEN ? AND ?", models.EntryStatusPending, start, end).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *financialRepository) FindRecurringTemplates(ctx context.Context) ([]models.FinancialEntry, error) {
	var entries []models.FinancialEntry
	err := r.db.WithContext(ctx).
		Where("recurring = ? AND recurrence_source_id IS NULL", true).
		Find(&entries).Error
	return entries, err
}

func (r *financialRepository) FindByRecurrenceSource(ctx context.Context, sourceID string, date time.Time) (*models.FinancialEntry, error) {
	var entry models.FinancialEntry
	err := r.db.WithContext(ctx).
		Where("recurrence_source_id = ? AND date = ?", sourceID, date).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
