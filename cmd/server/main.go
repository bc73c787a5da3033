package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	httpapi "fleetpay-backend/internal/api/http"
	"fleetpay-backend/internal/config"
	"fleetpay-backend/internal/logger"
	"fleetpay-backend/internal/repository/postgres"
	"fleetpay-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting FleetPay Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	// Initialize Services
	commissionSvc := service.NewCommissionService(store.CustomerRepository)
	loanSvc := service.NewLoanService(
		store.LoanRepository,
		store.CustomerRepository,
		store.NotificationRepository,
		emailSvc,
		service.LoanParams{
			MinAmount:        decimal.NewFromFloat(cfg.Engine.MinLoanAmount),
			SetupFee:         decimal.NewFromFloat(cfg.Engine.LoanSetupFee),
			MinMonths:        cfg.Engine.MinRepaymentMonths,
			PaymentTolerance: decimal.NewFromFloat(cfg.Engine.PaymentTolerance),
		},
	)
	checkoutSvc := service.NewCheckoutService(
		store.CheckoutRepository,
		store.BookingRepository,
		store.VehicleRepository,
		store.FineRepository,
		emailSvc,
		service.CheckoutParams{
			FuelTolerancePct:   decimal.NewFromFloat(cfg.Engine.FuelTolerancePct),
			FuelTankLiters:     decimal.NewFromFloat(cfg.Engine.FuelTankLiters),
			FuelPricePerLiter:  decimal.NewFromFloat(cfg.Engine.FuelPricePerLiter),
			FuelShortfallFee:   decimal.NewFromFloat(cfg.Engine.FuelShortfallFee),
			DefaultExtraKmRate: decimal.NewFromFloat(cfg.Engine.DefaultExtraKmRate),
		},
	)
	settlementSvc := service.NewSettlementService(
		store.SettlementRepository,
		store.CustomerRepository,
		store.VehicleRepository,
		store.BookingRepository,
		store.LoanRepository,
		store.NotificationRepository,
		emailSvc,
		service.SettlementParams{GuaranteeTargetDays: cfg.Engine.GuaranteeTargetDays},
	)
	guaranteeSvc := service.NewGuaranteeService(
		store.VehicleRepository,
		store.BookingRepository,
		cfg.Engine.GuaranteeTargetDays,
	)

	// Build router
	router := httpapi.NewRouter(httpapi.Services{
		Commission: commissionSvc,
		Loan:       loanSvc,
		Checkout:   checkoutSvc,
		Settlement: settlementSvc,
		Guarantee:  guaranteeSvc,
	})

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("HTTP server failed", "error", err)
		log.Fatalf("HTTP server failed: %v", err)
	}
}
