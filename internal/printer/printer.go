// internal/printer/printer.go
package printer

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"printer-service/internal/model"
	"printer-service/internal/serialhost"
	"printer-service/internal/ticket"
	"printer-service/pkg/fault"
)

// Acquirer is the slice of the device-acquisition API the facade needs.
type Acquirer interface {
	Supported() bool
	ListAuthorized(ctx context.Context) ([]serialhost.Port, error)
	Request(ctx context.Context, filter []uint16) (serialhost.Port, error)
	Candidates(ctx context.Context, filter []uint16) ([]serialhost.DeviceInfo, error)
	IsAnyPrinterAvailable(ctx context.Context) bool
}

// Sender drives the serial transport for one payload.
type Sender interface {
	Send(ctx context.Context, port serialhost.Port, payload []byte) error
}

// Printer composes acquisition, formatting and transport into the public
// print operations. The serial connection is one shared resource, so a
// facade-level mutex serializes print jobs; concurrent callers queue here
// instead of colliding on the port.
type Printer struct {
	acquirer     Acquirer
	transport    Sender
	formatter    *ticket.Formatter
	vendorFilter []uint16
	now          func() time.Time
	logger       *zap.Logger

	mu sync.Mutex
}

// New creates the printer facade. The vendor filter narrows the first
// chooser prompt; pass nil to always prompt unfiltered.
func New(acquirer Acquirer, transport Sender, formatter *ticket.Formatter, vendorFilter []uint16, logger *zap.Logger) *Printer {
	return &Printer{
		acquirer:     acquirer,
		transport:    transport,
		formatter:    formatter,
		vendorFilter: vendorFilter,
		now:          time.Now,
		logger:       logger.With(zap.String("component", "printer")),
	}
}

// IsReady reports whether an authorized printer is currently present.
func (p *Printer) IsReady(ctx context.Context) bool {
	return p.acquirer.IsAnyPrinterAvailable(ctx)
}

// PrintBill formats and prints the bill ticket for an order. Acquisition
// and transport failures propagate unchanged; user-visible messaging is the
// caller's responsibility.
func (p *Printer) PrintBill(ctx context.Context, order *model.Order) error {
	payload, err := p.formatter.FormatBill(order)
	if err != nil {
		return err
	}
	return p.print(ctx, payload)
}

// PrintClosingReport formats and prints the day's sales report.
func (p *Printer) PrintClosingReport(ctx context.Context, summary *model.DailySalesSummary) error {
	payload, err := p.formatter.FormatClosingReport(summary)
	if err != nil {
		return err
	}
	return p.print(ctx, payload)
}

// RunSelfTest prints a short diagnostic ticket to validate the end-to-end
// wiring without a real order.
func (p *Printer) RunSelfTest(ctx context.Context) error {
	return p.print(ctx, p.formatter.FormatSelfTest(p.now()))
}

func (p *Printer) print(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	port, err := p.resolvePort(ctx)
	if err != nil {
		return err
	}
	return p.transport.Send(ctx, port, payload)
}

// resolvePort prefers an already-authorized device, then prompts with the
// vendor filter, then once without it. The unfiltered fallback is a
// discovery refinement, not a fault workaround: cheap printers enumerate
// behind generic bridge chips the filter may not cover. It is skipped when
// the failure cannot be cured by widening the chooser.
func (p *Printer) resolvePort(ctx context.Context) (serialhost.Port, error) {
	ports, err := p.acquirer.ListAuthorized(ctx)
	if err == nil && len(ports) > 0 {
		return ports[0], nil
	}
	if err != nil {
		p.logger.Warn("Authorized device listing failed, falling back to chooser", zap.Error(err))
	}

	port, err := p.acquirer.Request(ctx, p.vendorFilter)
	if err != nil && len(p.vendorFilter) > 0 && wideningMayHelp(err) {
		p.logger.Info("Filtered device prompt yielded no device, retrying unfiltered",
			zap.String("fault", fault.Code(err)))
		port, err = p.acquirer.Request(ctx, nil)
	}
	return port, err
}

func wideningMayHelp(err error) bool {
	return !errors.Is(err, fault.ErrUnsupportedPlatform) &&
		!errors.Is(err, fault.ErrPermissionDenied)
}
