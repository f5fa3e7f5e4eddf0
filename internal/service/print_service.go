// internal/service/print_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"printer-service/internal/config"
	"printer-service/internal/model"
	"printer-service/internal/printer"
	"printer-service/internal/repository"
	"printer-service/internal/utils"
)

// BillItem represents a single line item in a print request
type BillItem struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
}

// BillRequest represents a bill print request
type BillRequest struct {
	OrderID       int64      `json:"order_id" binding:"required"`
	Table         string     `json:"table" binding:"required"`
	Items         []BillItem `json:"items"`
	Status        string     `json:"status"`
	Total         string     `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	CreatedAt     *time.Time `json:"created_at"`
	PaidAt        *time.Time `json:"paid_at"`
}

// ClosingReportRequest represents a daily closing report print request
type ClosingReportRequest struct {
	Date          string `json:"date" binding:"required"`
	CashTotal     string `json:"cash_total"`
	CardTotal     string `json:"card_total"`
	GrandTotal    string `json:"grand_total"`
	SettledOrders int    `json:"settled_orders"`
}

// JobResult describes a completed print job
type JobResult struct {
	JobID      uuid.UUID     `json:"job_id"`
	JobType    string        `json:"job_type"`
	Duration   time.Duration `json:"duration"`
	FinishedAt time.Time     `json:"finished_at"`
}

// PrinterStatus describes the printer and setup flow state
type PrinterStatus struct {
	Ready      bool                  `json:"ready"`
	Setup      printer.SetupSnapshot `json:"setup"`
	Authorized []*model.Printer      `json:"authorized"`
	VenueName  string                `json:"venue_name"`
	PaperWidth int                   `json:"paper_width"`
	CheckedAt  time.Time             `json:"checked_at"`
}

// PrintService handles receipt printing business logic
type PrintService struct {
	printer     *printer.Printer
	setup       *printer.Setup
	printerRepo repository.PrinterRepository
	config      *config.Config
	logger      *utils.ServiceLogger
}

// NewPrintService creates a new print service instance
func NewPrintService(
	p *printer.Printer,
	setup *printer.Setup,
	printerRepo repository.PrinterRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *PrintService {
	return &PrintService{
		printer:     p,
		setup:       setup,
		printerRepo: printerRepo,
		config:      cfg,
		logger:      utils.NewServiceLogger(logger, "print-service"),
	}
}

// PrintBill renders and prints a customer bill
func (ps *PrintService) PrintBill(ctx context.Context, req *BillRequest) (*JobResult, error) {
	order, err := ps.toOrder(req)
	if err != nil {
		return nil, err
	}

	return ps.runJob(ctx, "bill", func(ctx context.Context) error {
		return ps.printer.PrintBill(ctx, order)
	})
}

// PrintClosingReport renders and prints the daily sales report
func (ps *PrintService) PrintClosingReport(ctx context.Context, req *ClosingReportRequest) (*JobResult, error) {
	summary, err := ps.toSummary(req)
	if err != nil {
		return nil, err
	}

	return ps.runJob(ctx, "closing_report", func(ctx context.Context) error {
		return ps.printer.PrintClosingReport(ctx, summary)
	})
}

// RunSelfTest prints a short connection test page
func (ps *PrintService) RunSelfTest(ctx context.Context) (*JobResult, error) {
	return ps.runJob(ctx, "self_test", func(ctx context.Context) error {
		return ps.printer.RunSelfTest(ctx)
	})
}

// Status reports printer readiness together with the setup flow state and
// the granted devices. A grant-store failure degrades to an empty list
// rather than failing the whole status read.
func (ps *PrintService) Status(ctx context.Context) *PrinterStatus {
	authorized, err := ps.printerRepo.List(ctx)
	if err != nil {
		ps.logger.Warn("Failed to load authorized printers for status", zap.Error(err))
		authorized = []*model.Printer{}
	}

	return &PrinterStatus{
		Ready:      ps.printer.IsReady(ctx),
		Setup:      ps.setup.Snapshot(),
		Authorized: authorized,
		VenueName:  ps.config.Printer.VenueName,
		PaperWidth: ps.config.Printer.PaperWidth,
		CheckedAt:  time.Now(),
	}
}

// ListAuthorized returns the granted printers with their metadata
func (ps *PrintService) ListAuthorized(ctx context.Context) ([]*model.Printer, error) {
	printers, err := ps.printerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list printers: %w", err)
	}
	return printers, nil
}

// Revoke removes a printer grant
func (ps *PrintService) Revoke(ctx context.Context, portName string) error {
	if err := ps.printerRepo.Revoke(ctx, portName); err != nil {
		return err
	}

	ps.logger.Info("Printer grant revoked", zap.String("port", portName))
	return nil
}

// runJob executes a print job and records its outcome against the device
// it ran on.
func (ps *PrintService) runJob(ctx context.Context, jobType string, fn func(context.Context) error) (*JobResult, error) {
	jobID := uuid.New()
	startTime := time.Now()

	ps.logger.Info("Print job started",
		zap.String("job_id", jobID.String()),
		zap.String("job_type", jobType),
	)

	err := fn(ctx)

	ps.printerLogger().LogJob(jobType, jobID.String(), time.Since(startTime), err)
	if err != nil {
		return nil, err
	}

	return &JobResult{
		JobID:      jobID,
		JobType:    jobType,
		Duration:   time.Since(startTime),
		FinishedAt: time.Now(),
	}, nil
}

// printerLogger scopes job logging to the currently connected device. Jobs
// can run against an authorized device the setup flow never saw, so an
// empty port is possible and fine.
func (ps *PrintService) printerLogger() *utils.PrinterLogger {
	port, vendor := "", ""
	if device := ps.setup.Snapshot().Device; device != nil {
		port, vendor = device.Port, device.Label
	}
	return utils.NewPrinterLogger(ps.logger.Logger, port, vendor)
}

func (ps *PrintService) toOrder(req *BillRequest) (*model.Order, error) {
	order := &model.Order{
		ID:            req.OrderID,
		Table:         req.Table,
		Status:        model.OrderStatus(req.Status),
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		PaidAt:        req.PaidAt,
	}

	if req.CreatedAt != nil {
		order.CreatedAt = *req.CreatedAt
	} else {
		order.CreatedAt = time.Now()
	}

	for _, item := range req.Items {
		order.Items = append(order.Items, model.LineItem{
			Name:  item.Name,
			Price: item.Price,
		})
	}

	if req.Total != "" {
		total, err := decimal.NewFromString(req.Total)
		if err != nil {
			return nil, fmt.Errorf("invalid total amount: %w", err)
		}
		order.Total = total
	}

	return order, nil
}

func (ps *PrintService) toSummary(req *ClosingReportRequest) (*model.DailySalesSummary, error) {
	summary := &model.DailySalesSummary{
		Date:          req.Date,
		SettledOrders: req.SettledOrders,
	}

	parse := func(name, value string) (decimal.Decimal, error) {
		if value == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid %s amount: %w", name, err)
		}
		return d, nil
	}

	var err error
	if summary.CashTotal, err = parse("cash_total", req.CashTotal); err != nil {
		return nil, err
	}
	if summary.CardTotal, err = parse("card_total", req.CardTotal); err != nil {
		return nil, err
	}
	if summary.GrandTotal, err = parse("grand_total", req.GrandTotal); err != nil {
		return nil, err
	}

	return summary, nil
}
