// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "printer-service/docs"
	"printer-service/internal/config"
	"printer-service/internal/database"
	"printer-service/internal/printer"
	"printer-service/internal/repository"
	"printer-service/internal/routes"
	"printer-service/internal/serialhost"
	"printer-service/internal/service"
	"printer-service/internal/ticket"
	"printer-service/internal/transport"
	"printer-service/internal/utils"
)

// Application represents the main application
type Application struct {
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
	database *database.DB

	// Services
	printService *service.PrintService

	// Repositories
	printerRepo repository.PrinterRepository

	// Printer core
	printerCore *printer.Printer
	setup       *printer.Setup
}

// @title Receipt Printer Service API
// @version 1.0.0
// @description Bill and report printing service for serial ESC/POS thermal printers
// @termsOfService http://swagger.io/terms/

// @contact.name Printer Service API Support
// @contact.email support@terrazamadero.mx

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8084
// @BasePath /api/v1
func main() {
	// Initialize application
	app, err := NewApplication()
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Start the application
	if err := app.Start(); err != nil {
		app.logger.Fatal("Failed to start application", zap.Error(err))
	}
}

// NewApplication creates a new application instance
func NewApplication() (*Application, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	serviceLogger := utils.NewServiceLogger(logger, "printer-service")
	serviceLogger.LogServiceStart(cfg.App.Version, cfg)

	app := &Application{
		config: cfg,
		logger: logger,
	}

	// Initialize components
	if err := app.initializeDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initializePrinterCore(); err != nil {
		return nil, fmt.Errorf("failed to initialize printer core: %w", err)
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.initializeServer(); err != nil {
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}

	return app, nil
}

// initializeDatabase sets up database connection and runs migrations
func (app *Application) initializeDatabase() error {
	db, err := database.NewConnection(&app.config.Database, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create database connection: %w", err)
	}

	app.database = db

	if err := db.WaitForConnection(10, 3*time.Second); err != nil {
		return fmt.Errorf("database never became reachable: %w", err)
	}

	migrator := database.NewMigrator(db, app.logger)
	if err := migrator.Up(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	app.logger.Info("Database initialized successfully")
	return nil
}

// initializePrinterCore wires the serial host, transport and formatter
func (app *Application) initializePrinterCore() error {
	app.printerRepo = repository.NewPrinterRepository(app.database, app.logger)

	usbScanner := serialhost.NewUSBScanner(app.logger)
	host := serialhost.NewSystemHost(app.printerRepo, serialhost.AutoChooser{}, usbScanner, app.logger)
	acquirer := serialhost.NewAcquirer(host, app.logger)

	lineConfig := serialhost.LineConfig{
		BaudRate: app.config.Printer.BaudRate,
		DataBits: app.config.Printer.DataBits,
		StopBits: app.config.Printer.StopBits,
		Parity:   app.config.Printer.Parity,
	}
	driver := transport.NewDriver(lineConfig, app.config.Printer.WriteTimeout, app.logger)

	formatter := ticket.NewFormatter(app.config.Printer.VenueName)

	vendorFilter := app.config.Printer.VendorIDs()
	if len(vendorFilter) == 0 {
		vendorFilter = serialhost.DefaultVendorFilter()
	}

	app.printerCore = printer.New(acquirer, driver, formatter, vendorFilter, app.logger)
	app.setup = printer.NewSetup(acquirer, vendorFilter, app.logger)

	// Run the initial availability check so status is meaningful right away
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	snapshot := app.setup.Mount(ctx)

	app.logger.Info("Printer core initialized",
		zap.String("setup_state", string(snapshot.State)),
		zap.Int("vendor_filter_size", len(vendorFilter)),
	)
	return nil
}

// initializeServices creates service instances
func (app *Application) initializeServices() error {
	app.printService = service.NewPrintService(
		app.printerCore,
		app.setup,
		app.printerRepo,
		app.config,
		app.logger,
	)

	app.logger.Info("Services initialized successfully")
	return nil
}

// initializeServer sets up HTTP server and routes
func (app *Application) initializeServer() error {
	routerManager := routes.NewRouter(
		app.config,
		app.logger,
		app.database,
		app.printService,
		app.setup,
	)

	router := routerManager.SetupRouter()

	app.server = &http.Server{
		Addr:         app.config.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		IdleTimeout:  app.config.Server.IdleTimeout,
	}

	app.logger.Info("HTTP server initialized",
		zap.String("address", app.config.GetServerAddr()),
	)

	return nil
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	app.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	app.shutdown()
}

// shutdown performs graceful shutdown
func (app *Application) shutdown() {
	serviceLogger := utils.NewServiceLogger(app.logger, "printer-service")
	serviceLogger.LogServiceStop("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		app.logger.Info("HTTP server stopped")
	}

	if app.database != nil {
		if err := app.database.Close(); err != nil {
			app.logger.Error("Database close error", zap.Error(err))
		} else {
			app.logger.Info("Database connection closed")
		}
	}

	if err := utils.CloseLogger(app.logger); err != nil {
		fmt.Printf("Logger close error: %v\n", err)
	}
}

func (app *Application) Start() error {
	// Start server in goroutine
	go func() {
		app.logger.Info("Starting HTTP server",
			zap.String("address", app.server.Addr),
		)

		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()

	return nil
}
