package handlers

import (
	"github.com/graficaflow/grafica-api/internal/events"
	"github.com/graficaflow/grafica-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Order    *OrderHandler
	Finance  *FinanceHandler
	Client   *ClientHandler
	Product  *ProductHandler
	Supply   *SupplyHandler
	Account  *AccountHandler
	Settings *SettingsHandler
	Report   *ReportHandler
	Audit    *AuditHandler
	Events   *EventsHandler
	Job      *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, broker *events.Broker) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(),
		Auth:     NewAuthHandler(svcs.Auth),
		Order:    NewOrderHandler(svcs.Order),
		Finance:  NewFinanceHandler(svcs.Finance),
		Client:   NewClientHandler(svcs.Client),
		Product:  NewProductHandler(svcs.Product),
		Supply:   NewSupplyHandler(svcs.Supply),
		Account:  NewAccountHandler(svcs.Account),
		Settings: NewSettingsHandler(svcs.Settings),
		Report:   NewReportHandler(svcs.Report, svcs.Export),
		Audit:    NewAuditHandler(svcs.Audit),
		Events:   NewEventsHandler(broker),
		Job:      NewJobHandler(svcs.Job, broker),
	}
}
