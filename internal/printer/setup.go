// internal/printer/setup.go
package printer

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"printer-service/internal/serialhost"
	"printer-service/pkg/fault"
)

// SetupState is one state of the printer-setup flow.
type SetupState string

const (
	SetupChecking     SetupState = "checking"
	SetupNotSupported SetupState = "not_supported"
	SetupAvailable    SetupState = "available"
	SetupConnecting   SetupState = "connecting"
	SetupConnected    SetupState = "connected"
	SetupError        SetupState = "error"
)

// SetupSnapshot is the externally visible state of the setup flow.
type SetupSnapshot struct {
	State     SetupState             `json:"state"`
	Message   string                 `json:"message"`
	FaultCode string                 `json:"fault_code,omitempty"`
	Device    *serialhost.DeviceInfo `json:"device,omitempty"`
}

// Setup is the finite state machine behind the printer-setup screen:
//
//	checking -> not_supported
//	checking -> connected            (a device is already authorized)
//	checking -> available
//	available|error -> connecting -> connected | error
//	connected -> available           (explicit reset)
//
// There is no automatic transition out of error; the user retries. The
// machine is independent of any UI; handlers drive it with explicit events.
type Setup struct {
	acquirer     Acquirer
	vendorFilter []uint16
	logger       *zap.Logger

	mu      sync.Mutex
	state   SetupState
	message string
	code    string
	device  *serialhost.DeviceInfo
}

// NewSetup creates the setup machine in the checking state.
func NewSetup(acquirer Acquirer, vendorFilter []uint16, logger *zap.Logger) *Setup {
	return &Setup{
		acquirer:     acquirer,
		vendorFilter: vendorFilter,
		logger:       logger.With(zap.String("component", "printer-setup")),
		state:        SetupChecking,
		message:      "Checking serial support",
	}
}

// Snapshot returns the current state.
func (s *Setup) Snapshot() SetupSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Mount handles the setup-view mount event: probe serial support and any
// previously authorized device, without prompting.
func (s *Setup) Mount(ctx context.Context) SetupSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = SetupChecking
	s.code = ""
	s.device = nil

	switch {
	case !s.acquirer.Supported():
		s.state = SetupNotSupported
		s.message = "This host has no serial device support"
	case s.acquirer.IsAnyPrinterAvailable(ctx):
		s.state = SetupConnected
		s.message = "A printer is already authorized"
	default:
		s.state = SetupAvailable
		s.message = "Ready to connect a printer"
	}

	s.logger.Info("Setup mounted", zap.String("state", string(s.state)))
	return s.snapshotLocked()
}

// RequestAcquire handles the acquire event: run the device chooser and
// resolve to connected or error. Valid from available and from error (a
// user retry); the connecting state is visible to concurrent readers for
// the duration of the chooser.
func (s *Setup) RequestAcquire(ctx context.Context, useFilter bool) (SetupSnapshot, error) {
	s.mu.Lock()
	if s.state != SetupAvailable && s.state != SetupError {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, fmt.Errorf("cannot acquire a device while %s", s.state)
	}
	s.state = SetupConnecting
	s.message = "Waiting for device selection"
	s.code = ""
	s.mu.Unlock()

	var filter []uint16
	if useFilter {
		filter = s.vendorFilter
	}
	port, err := s.acquirer.Request(ctx, filter)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = SetupError
		s.message = setupFailureMessage(err)
		s.code = fault.Code(err)
		s.logger.Warn("Printer acquisition failed", zap.String("fault", s.code), zap.Error(err))
		return s.snapshotLocked(), nil
	}

	info := port.Info()
	s.state = SetupConnected
	s.message = "Printer connected and authorized"
	s.device = &info
	s.logger.Info("Printer acquired", zap.String("port", info.Port))
	return s.snapshotLocked(), nil
}

// Candidates previews the devices a connect attempt would offer, narrowed
// by the vendor filter when requested. It reads host state only and is
// valid in every setup state.
func (s *Setup) Candidates(ctx context.Context, useFilter bool) ([]serialhost.DeviceInfo, error) {
	var filter []uint16
	if useFilter {
		filter = s.vendorFilter
	}
	return s.acquirer.Candidates(ctx, filter)
}

// Reset handles the explicit reset event from connected back to available,
// letting the user authorize a different device.
func (s *Setup) Reset() (SetupSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SetupConnected {
		return s.snapshotLocked(), fmt.Errorf("cannot reset while %s", s.state)
	}

	s.state = SetupAvailable
	s.message = "Ready to connect a printer"
	s.code = ""
	s.device = nil
	return s.snapshotLocked(), nil
}

func (s *Setup) snapshotLocked() SetupSnapshot {
	return SetupSnapshot{
		State:     s.state,
		Message:   s.message,
		FaultCode: s.code,
		Device:    s.device,
	}
}

func setupFailureMessage(err error) string {
	switch fault.Code(err) {
	case "UNSUPPORTED_PLATFORM":
		return "This host has no serial device support"
	case "DEVICE_NOT_SELECTED":
		return "No device was selected; try again and pick your printer"
	case "PERMISSION_DENIED":
		return "Device access was denied; grant serial permissions and retry"
	default:
		return fmt.Sprintf("Connection failed: %v", err)
	}
}
