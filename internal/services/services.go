package services

import (
	"github.com/graficaflow/grafica-api/internal/config"
	"github.com/graficaflow/grafica-api/internal/events"
	"github.com/graficaflow/grafica-api/internal/jobs"
	"github.com/graficaflow/grafica-api/internal/repository"
	"github.com/graficaflow/grafica-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth     *AuthService
	Order    *OrderService
	Finance  *FinanceService
	Client   *ClientService
	Product  *ProductService
	Supply   *SupplyService
	Account  *AccountService
	Settings *SettingsService
	Report   *ReportService
	Export   *ExportService
	Audit    *AuditService
	Job      *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, broker *events.Broker, cfg *config.Config) (*Services, error) {
	authSvc, err := NewAuthService(cfg)
	if err != nil {
		return nil, err
	}

	auditSvc := NewAuditService(repos.Audit, worker)
	scheduleSvc := NewScheduleService()
	projector := NewLedgerProjector(repos.Financial, scheduleSvc)
	settingsSvc := NewSettingsService(repos.Settings, store, broker)

	return &Services{
		Auth:     authSvc,
		Order:    NewOrderService(repos.Order, repos.Client, repos.Product, repos.Financial, projector, scheduleSvc, auditSvc, broker),
		Finance:  NewFinanceService(repos.Financial, repos.Account, auditSvc, broker),
		Client:   NewClientService(repos.Client, auditSvc, broker),
		Product:  NewProductService(repos.Product, broker),
		Supply:   NewSupplyService(repos.Supply, broker, worker),
		Account:  NewAccountService(repos.Account, broker),
		Settings: settingsSvc,
		Report:   NewReportService(repos.Order, repos.Client, settingsSvc, scheduleSvc),
		Export:   NewExportService(repos.Financial),
		Audit:    auditSvc,
		Job:      NewJobService(worker),
	}, nil
}
