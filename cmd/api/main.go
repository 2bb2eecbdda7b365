package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/graficaflow/grafica-api/docs" // Swagger docs
	"github.com/graficaflow/grafica-api/internal/config"
	"github.com/graficaflow/grafica-api/internal/database"
	"github.com/graficaflow/grafica-api/internal/events"
	"github.com/graficaflow/grafica-api/internal/handlers"
	"github.com/graficaflow/grafica-api/internal/jobs"
	"github.com/graficaflow/grafica-api/internal/middleware"
	"github.com/graficaflow/grafica-api/internal/repository"
	"github.com/graficaflow/grafica-api/internal/services"
	"github.com/graficaflow/grafica-api/internal/storage"
	"github.com/graficaflow/grafica-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title GraficaFlow API
// @version 1.0
// @description REST API for the GraficaFlow print shop management system
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("Database migrations applied")

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize change feed broker
	broker := events.NewBroker()

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs, err := services.NewServices(repos, worker, store, broker, cfg)
	if err != nil {
		logger.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, broker)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Redirect root to swagger
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		})

		// Swagger documentation
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		// Health check (public)
		v1.GET("/health", h.Health.Check)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Orders. Static routes first so "stats" and "calendar" are
			// not matched as :order_id
			orders := protected.Group("/orders")
			{
				orders.GET("", h.Order.Index)
				orders.GET("/stats", h.Order.GetStats)
				orders.GET("/calendar", h.Order.Calendar)
				orders.POST("", h.Order.Create)
				orders.GET("/:order_id", h.Order.Show)
				orders.PUT("/:order_id", h.Order.Update)
				orders.DELETE("/:order_id", h.Order.Destroy)
				orders.PATCH("/:order_id/status", h.Order.ChangeStatus)
				orders.POST("/:order_id/payments", h.Order.RegisterPayment)
				orders.POST("/:order_id/installments/:index/pay", h.Order.PayInstallment)
				orders.GET("/:order_id/schedule", h.Order.Schedule)
				orders.GET("/:order_id/whatsapp", h.Order.WhatsAppLink)
			}

			// Financial ledger
			financial := protected.Group("/financial_entries")
			{
				financial.GET("", h.Finance.Index)
				financial.GET("/summary", h.Finance.Summary)
				financial.GET("/balances", h.Finance.Balances)
				financial.GET("/due", h.Finance.Due)
				financial.POST("", h.Finance.Create)
				financial.GET("/:entry_id", h.Finance.Show)
				financial.PUT("/:entry_id", h.Finance.Update)
				financial.PATCH("/:entry_id/pay", h.Finance.MarkPaid)
				financial.DELETE("/:entry_id", h.Finance.Destroy)
			}

			// Clients
			clients := protected.Group("/clients")
			{
				clients.GET("", h.Client.Index)
				clients.POST("", h.Client.Create)
				clients.GET("/:client_id", h.Client.Show)
				clients.PUT("/:client_id", h.Client.Update)
				clients.DELETE("/:client_id", h.Client.Destroy)
			}

			// Product catalog
			products := protected.Group("/products")
			{
				products.GET("", h.Product.Index)
				products.POST("", h.Product.Create)
				products.PUT("/:product_id", h.Product.Update)
				products.PATCH("/:product_id/deactivate", h.Product.Deactivate)
				products.DELETE("/:product_id", h.Product.Destroy)
			}

			// Supply stock
			supplies := protected.Group("/supplies")
			{
				supplies.GET("", h.Supply.Index)
				supplies.GET("/low_stock", h.Supply.LowStock)
				supplies.POST("", h.Supply.Create)
				supplies.PUT("/:supply_id", h.Supply.Update)
				supplies.PATCH("/:supply_id/adjust", h.Supply.Adjust)
				supplies.DELETE("/:supply_id", h.Supply.Destroy)
			}

			// Payment accounts
			accounts := protected.Group("/accounts")
			{
				accounts.GET("", h.Account.Index)
				accounts.POST("", h.Account.Create)
				accounts.PUT("/:account_id", h.Account.Update)
				accounts.DELETE("/:account_id", h.Account.Destroy)
			}

			// Company settings
			settings := protected.Group("/settings")
			{
				settings.GET("", h.Settings.Show)
				settings.PUT("", h.Settings.Update)
				settings.GET("/logo", h.Settings.ServeLogo)
				settings.POST("/logo", h.Settings.UploadLogo)
			}

			// Reports and exports
			reports := protected.Group("/reports")
			{
				reports.GET("/orders/csv", h.Report.OrdersCSV)
				reports.GET("/orders/:order_id/pdf", h.Report.OrderPDF)
				reports.GET("/orders/:order_id/service_order", h.Report.ServiceOrderPDF)
				reports.GET("/cash_flow/:format", h.Report.CashFlowExport)
			}

			// Audit log
			protected.GET("/audit_logs", h.Audit.Index)

			// Change feed
			protected.GET("/events", h.Events.Stream)

			// Worker stats
			protected.GET("/jobs/stats", h.Job.Stats)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Materialize recurring ledger entries daily
	worker.ScheduleEveryImmediate(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Materializing recurring entries...")
		return svcs.Finance.MaterializeRecurring(ctx)
	})

	// Log upcoming deliveries daily
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking upcoming deliveries...")
		start := time.Now()
		end := start.AddDate(0, 0, 3)
		due, err := svcs.Order.Calendar(ctx, start, end)
		if err != nil {
			return err
		}
		for _, order := range due {
			logger.Info("[Entrega] Pedido com entrega próxima",
				"order_number", order.OrderNumber,
				"client", order.ClientName,
				"delivery_date", order.DeliveryDate)
		}
		return nil
	})

	// Check supply stock levels every hour
	worker.ScheduleEvery(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking supply stock levels...")
		return svcs.Supply.CheckLowStock(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
