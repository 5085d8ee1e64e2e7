// Package app wires configuration, logging, the pipeline and the
// reporting API into a runnable application.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"salespipe/internal/config"
	"salespipe/internal/exporter"
	"salespipe/internal/infrastructure"
	"salespipe/internal/ingestion"
	"salespipe/internal/operations"
	"salespipe/internal/reporting"
	"salespipe/internal/services"
	httptransport "salespipe/internal/transport/http"
	"salespipe/internal/validation"
	"salespipe/pkg/contracts"
	"salespipe/pkg/contracts/domain"
)

// Application holds all initialized components.
type Application struct {
	Config      *config.Config
	Logger      *slog.Logger
	DataService *services.DataService
	Manager     *operations.Manager
	Exporter    *exporter.Exporter
	Server      *httptransport.Server

	logCloser io.Closer
}

// NewApplication loads configuration and constructs every component.
// Environment variables from a .env file are loaded first so they can
// participate in config resolution.
func NewApplication() (*Application, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(logger)
	logger.Info("application initialized", slog.String("version", contracts.GetVersionString()))

	dataService := services.NewDataService()

	app := &Application{
		Config:      cfg,
		Logger:      logger,
		DataService: dataService,
		Manager:     operations.NewManager(logger),
		Exporter:    exporter.NewExporter(cfg, logger),
		Server:      httptransport.NewServer(cfg.Server, dataService, logger),
		logCloser:   closer,
	}
	return app, nil
}

// ExecutePipeline ingests the three sources, runs the full pipeline,
// exports the outputs and publishes the result to the data service.
// When a reporting DSN is configured the cleaned tables are also
// loaded into the reporting database.
func (a *Application) ExecutePipeline(ctx context.Context) (*operations.RunResult, error) {
	a.Logger.InfoContext(ctx, "starting pipeline run",
		slog.String("data_dir", a.Config.Paths.DataDir),
		slog.String("output_dir", a.Config.Paths.OutputDir))

	inputs, err := a.ingest(ctx)
	if err != nil {
		return nil, err
	}

	result, err := a.Manager.Run(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("pipeline run failed: %w", err)
	}

	if err := a.Exporter.ExportRun(result); err != nil {
		return nil, fmt.Errorf("failed to export run outputs: %w", err)
	}

	a.DataService.SetResult(result)

	if a.Config.Reporting.DSN != "" {
		if err := a.runReporting(ctx, result); err != nil {
			// Reporting is best effort, a run is still usable without it.
			a.Logger.ErrorContext(ctx, "reporting analysis failed",
				slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "pipeline run complete",
		slog.String("run_id", result.RunID),
		slog.Int("facts", len(result.Facts)),
		slog.Int("warnings", len(result.Warnings())))
	return result, nil
}

func (a *Application) ingest(ctx context.Context) (operations.RawInputs, error) {
	var inputs operations.RawInputs

	validator := validation.NewFileValidator(a.Logger)
	for role, path := range map[string]string{
		"customers": a.Config.CustomersPath(),
		"orders":    a.Config.OrdersPath(),
		"payments":  a.Config.PaymentsPath(),
	} {
		if err := validator.ValidateSourceFile(role, path); err != nil {
			return inputs, err
		}
	}
	if err := validator.ValidateOutputDirectory(a.Config.Paths.OutputDir); err != nil {
		return inputs, err
	}

	customers, customersReport, err := ingestion.ReadCustomersCSV(a.Config.CustomersPath(), a.Logger)
	if err != nil {
		return inputs, fmt.Errorf("failed to read customers: %w", err)
	}
	orders, ordersReport, err := ingestion.ReadOrdersJSON(a.Config.OrdersPath(), a.Logger)
	if err != nil {
		return inputs, fmt.Errorf("failed to read orders: %w", err)
	}
	payments, paymentsReport, err := ingestion.ReadPaymentsExcel(a.Config.PaymentsPath(), a.Logger)
	if err != nil {
		return inputs, fmt.Errorf("failed to read payments: %w", err)
	}

	inputs = operations.RawInputs{
		Customers:     customers,
		Orders:        orders,
		Payments:      payments,
		SourceReports: []*domain.StageReport{customersReport, ordersReport, paymentsReport},
	}
	return inputs, nil
}

func (a *Application) runReporting(ctx context.Context, result *operations.RunResult) error {
	svc, err := reporting.Open(ctx, a.Config.Reporting, a.Logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	return svc.RunAnalysis(ctx, reporting.AnalysisInput{
		Customers: result.Customers,
		Orders:    result.Orders,
		Payments:  result.Payments,
	}, a.Config.Reporting.TopCustomers)
}

// StartServer runs the pipeline once and then serves the reporting
// API until ctx is cancelled.
func (a *Application) StartServer(ctx context.Context) error {
	if _, err := a.ExecutePipeline(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Server.ListenAndServe()
	}()
	a.Logger.InfoContext(ctx, "reporting API listening",
		slog.Int("port", a.Config.Server.Port))

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	a.Logger.Info("application shutdown complete")
	return nil
}

// Run runs the server application until interrupted.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer a.Close()

	return a.StartServer(ctx)
}

// Close releases resources held by the application.
func (a *Application) Close() {
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}
