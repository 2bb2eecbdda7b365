package repository

import (
	"context"

	"github.com/graficaflow/grafica-api/internal/models"
	"gorm.io/gorm"
)

// SupplyRepository defines the interface for stock item access
type SupplyRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Supply, error)
	Create(ctx context.Context, supply *models.Supply) error
	Update(ctx context.Context, supply *models.Supply) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Supply, int64, error)
	FindLowStock(ctx context.Context) ([]models.Supply, error)
}

type supplyRepository struct {
	db *gorm.DB
}

// NewSupplyRepository creates a new supply repository
func NewSupplyRepository(db *gorm.DB) SupplyRepository {
	return &supplyRepository{db: db}
}

func (r *supplyRepository) FindByID(ctx context.Context, id uint) (*models.Supply, error) {
	var supply models.Supply
	if err := r.db.WithContext(ctx).First(&supply, id).Error; err != nil {
		return nil, err
	}
	return &supply, nil
}

func (r *supplyRepository) Create(ctx context.Context, supply *models.Supply) error {
	return r.db.WithContext(ctx).Create(supply).Error
}

func (r *supplyRepository) Update(ctx context.Context, supply *models.Supply) error {
	return r.db.WithContext(ctx).Save(supply).Error
}

func (r *supplyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Supply{}, id).Error
}

func (r *supplyRepository) List(ctx context.Context, query *ListQuery) ([]models.Supply, int64, error) {
	var supplies []models.Supply
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Supply{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR supplier ILIKE ?", search, search)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("name ASC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&supplies).Error
	return supplies, total, err
}

func (r *supplyRepository) FindLowStock(ctx context.Context) ([]models.Supply, error) {
	var supplies []models.Supply
	err := r.db.WithContext(ctx).
		Where("min_quantity > 0 AND quantity <= min_quantity").
		Order("name ASC").
		Find(&supplies).Error
	return supplies, err
}
