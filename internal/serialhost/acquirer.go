// internal/serialhost/acquirer.go
package serialhost

import (
	"context"

	"go.uber.org/zap"

	"printer-service/pkg/fault"
)

// Acquirer wraps the host's device-permission flow: enumerate previously
// authorized devices, or run the chooser to grant a new one.
type Acquirer struct {
	host   Host
	logger *zap.Logger
}

// NewAcquirer creates an acquirer over the given host.
func NewAcquirer(host Host, logger *zap.Logger) *Acquirer {
	return &Acquirer{
		host:   host,
		logger: logger.With(zap.String("component", "acquirer")),
	}
}

// Supported reports whether the host offers serial devices at all.
func (a *Acquirer) Supported() bool {
	return a.host.Supported()
}

// ListAuthorized returns whatever the host has previously authorized. It
// never prompts; an unsupported host yields an empty list, not an error.
func (a *Acquirer) ListAuthorized(ctx context.Context) ([]Port, error) {
	if !a.host.Supported() {
		return nil, nil
	}
	return a.host.AuthorizedPorts(ctx)
}

// Request runs the host-mediated device chooser, narrowed to the given USB
// vendor identifiers when a filter is supplied. The call suspends for as
// long as the chooser is open; cancellation is user-driven.
func (a *Acquirer) Request(ctx context.Context, filter []uint16) (Port, error) {
	if !a.host.Supported() {
		return nil, fault.ErrUnsupportedPlatform
	}

	port, err := a.host.RequestPort(ctx, filter)
	if err != nil {
		a.logger.Info("Device request failed",
			zap.Int("filter_size", len(filter)),
			zap.String("fault", fault.Code(err)),
		)
		return nil, err
	}

	a.logger.Info("Device acquired", zap.String("port", port.Info().Port))
	return port, nil
}

// Candidates previews the devices a chooser prompt would offer. It never
// prompts and authorizes nothing.
func (a *Acquirer) Candidates(ctx context.Context, filter []uint16) ([]DeviceInfo, error) {
	if !a.host.Supported() {
		return nil, fault.ErrUnsupportedPlatform
	}
	return a.host.Candidates(ctx, filter)
}

// IsAnyPrinterAvailable reports whether at least one authorized device is
// present. Any underlying failure counts as unavailable; this never errors.
func (a *Acquirer) IsAnyPrinterAvailable(ctx context.Context) bool {
	ports, err := a.ListAuthorized(ctx)
	if err != nil {
		a.logger.Debug("Availability check failed", zap.Error(err))
		return false
	}
	return len(ports) > 0
}
