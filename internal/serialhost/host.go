// internal/serialhost/host.go
package serialhost

import (
	"context"
	"fmt"
	"time"
)

// LineConfig holds the serial line parameters a port is opened with.
type LineConfig struct {
	BaudRate int    `json:"baud_rate"`
	DataBits int    `json:"data_bits"`
	StopBits int    `json:"stop_bits"`
	Parity   string `json:"parity"`
}

// DefaultLineConfig is the standard configuration for thermal receipt
// printers: 9600 baud, 8-N-1, no flow control.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		BaudRate: 9600,
		DataBits: 8,
		StopBits: 1,
		Parity:   "none",
	}
}

// DeviceInfo describes one serial device offered by the host.
type DeviceInfo struct {
	Port      string `json:"port"`
	VendorID  uint16 `json:"vendor_id,omitempty"`
	ProductID uint16 `json:"product_id,omitempty"`
	Label     string `json:"label,omitempty"`
}

// Writer is an exclusive writer on an open port. Release must be called on
// every exit path; it is safe to call more than once.
type Writer interface {
	Write(ctx context.Context, data []byte) error
	Release()
}

// Port is one acquired, possibly-open handle to a physical serial device.
type Port interface {
	Info() DeviceInfo
	Open(cfg LineConfig) error
	IsOpen() bool

	// AcquireWriter takes the exclusive write lock on an open port. At most
	// one writer exists at a time.
	AcquireWriter() (Writer, error)

	Close() error
}

// Host is the serial-device capability this core depends on. The production
// implementation sits on the operating system's serial ports; tests inject a
// fake. Acquisition failures use the pkg/fault taxonomy.
type Host interface {
	// Supported reports whether the host offers serial devices at all.
	Supported() bool

	// AuthorizedPorts returns the previously authorized devices that are
	// currently present. It never prompts and never blocks on the user.
	AuthorizedPorts(ctx context.Context) ([]Port, error)

	// RequestPort runs the device chooser, optionally narrowed to the given
	// USB vendor identifiers. On success the chosen device is authorized for
	// future AuthorizedPorts calls without prompting again.
	RequestPort(ctx context.Context, filter []uint16) (Port, error)

	// Candidates lists the devices the chooser would offer, without
	// prompting or authorizing anything.
	Candidates(ctx context.Context, filter []uint16) ([]DeviceInfo, error)
}

// Chooser selects one device from the chooser candidates. It stands in for
// the user-facing device picker: implementations may wait indefinitely for a
// selection, and signal dismissal with fault.ErrDeviceNotSelected.
type Chooser interface {
	Choose(ctx context.Context, candidates []DeviceInfo) (DeviceInfo, error)
}

// AutoChooser selects the first candidate without user interaction. It is
// the headless default; the setup flow offers an explicit selection path for
// operators with more than one serial device attached.
type AutoChooser struct{}

func (AutoChooser) Choose(_ context.Context, candidates []DeviceInfo) (DeviceInfo, error) {
	if len(candidates) == 0 {
		return DeviceInfo{}, fmt.Errorf("no candidates offered to chooser")
	}
	return candidates[0], nil
}

// AuthorizationStore persists which devices the operator has authorized.
type AuthorizationStore interface {
	ListAuthorized(ctx context.Context) ([]string, error)
	Authorize(ctx context.Context, info DeviceInfo) error
	Touch(ctx context.Context, portName string, seenAt time.Time) error
}
