package repository

import (
	"gorm.io/gorm"
)

// Repositories holds every repository used by the services layer
type Repositories struct {
	Order     OrderRepository
	Financial FinancialRepository
	Client    ClientRepository
	Product   ProductRepository
	Supply    SupplyRepository
	Account   AccountRepository
	Settings  SettingsRepository
	Audit     AuditRepository
}

// NewRepositories creates all repositories backed by the given database
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Order:     NewOrderRepository(db),
		Financial: NewFinancialRepository(db),
		Client:    NewClientRepository(db),
		Product:   NewProductRepository(db),
		Supply:    NewSupplyRepository(db),
		Account:   NewAccountRepository(db),
		Settings:  NewSettingsRepository(db),
		Audit:     NewAuditRepository(db),
	}
}
