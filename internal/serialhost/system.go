// internal/serialhost/system.go
package serialhost

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"printer-service/pkg/fault"
)

// SystemHost implements Host on top of the operating system's serial ports.
// Authorization state lives in the injected store so a printer picked once
// stays usable across agent restarts without prompting again.
type SystemHost struct {
	store   AuthorizationStore
	chooser Chooser
	usb     VendorScanner
	logger  *zap.Logger
}

// NewSystemHost creates a host backed by the system serial ports.
func NewSystemHost(store AuthorizationStore, chooser Chooser, usb VendorScanner, logger *zap.Logger) *SystemHost {
	return &SystemHost{
		store:   store,
		chooser: chooser,
		usb:     usb,
		logger:  logger.With(zap.String("component", "serial-host")),
	}
}

// Supported reports whether serial enumeration works on this host.
func (h *SystemHost) Supported() bool {
	_, err := serial.GetPortsList()
	return err == nil
}

// AuthorizedPorts returns previously authorized devices that are present
// right now. Devices authorized but currently unplugged are skipped.
func (h *SystemHost) AuthorizedPorts(ctx context.Context) ([]Port, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, nil
	}

	granted, err := h.store.ListAuthorized(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load authorized devices: %w", err)
	}

	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}

	now := time.Now()
	var ports []Port
	for _, name := range granted {
		if !present[name] {
			continue
		}
		ports = append(ports, newSystemPort(DeviceInfo{Port: name}))
		if err := h.store.Touch(ctx, name, now); err != nil {
			h.logger.Warn("Failed to record device sighting",
				zap.String("port", name), zap.Error(err))
		}
	}

	return ports, nil
}

// RequestPort runs the chooser over the currently attached serial devices,
// narrowed by vendor filter when one is given, and authorizes the selection.
func (h *SystemHost) RequestPort(ctx context.Context, filter []uint16) (Port, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fault.ErrUnsupportedPlatform
	}

	candidates := h.buildCandidates(names, filter)
	if len(candidates) == 0 {
		h.logger.Info("Device chooser has no candidates to offer",
			zap.Int("ports_present", len(names)),
			zap.Int("filter_size", len(filter)),
		)
		return nil, fault.ErrDeviceNotSelected
	}

	chosen, err := h.chooser.Choose(ctx, candidates)
	if err != nil {
		return nil, err
	}

	// Persisting the grant failing does not invalidate the grant itself;
	// the device just will not be remembered after a restart.
	if err := h.store.Authorize(ctx, chosen); err != nil {
		h.logger.Warn("Failed to persist device authorization",
			zap.String("port", chosen.Port), zap.Error(err))
	}

	h.logger.Info("Serial device authorized",
		zap.String("port", chosen.Port),
		zap.Uint16("vendor_id", chosen.VendorID),
	)
	return newSystemPort(chosen), nil
}

// Candidates lists the devices the chooser would offer right now.
func (h *SystemHost) Candidates(_ context.Context, filter []uint16) ([]DeviceInfo, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fault.ErrUnsupportedPlatform
	}
	return h.buildCandidates(names, filter), nil
}

// buildCandidates lists the attached ports, dropping everything when a
// vendor filter is given and no matching vendor is on the USB bus. Ports
// and USB devices cannot be correlated one-to-one portably, so the filter
// acts at bus granularity.
func (h *SystemHost) buildCandidates(names []string, filter []uint16) []DeviceInfo {
	var matched uint16
	if len(filter) > 0 {
		vendors, err := h.usb.PresentVendors()
		if err != nil {
			h.logger.Warn("USB vendor scan failed, chooser filter skipped", zap.Error(err))
		}
		found := false
		for _, id := range filter {
			if vendors[id] {
				matched = id
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}

	candidates := make([]DeviceInfo, 0, len(names))
	for _, name := range names {
		info := DeviceInfo{Port: name}
		if matched != 0 {
			info.VendorID = matched
			info.Label = VendorName(matched)
		}
		candidates = append(candidates, info)
	}
	return candidates
}

// systemPort is one handle on a physical serial port.
type systemPort struct {
	info DeviceInfo

	mu      sync.Mutex
	writeMu sync.Mutex
	port    serial.Port
	isOpen  bool
}

func newSystemPort(info DeviceInfo) *systemPort {
	return &systemPort{info: info}
}

func (p *systemPort) Info() DeviceInfo { return p.info }

func (p *systemPort) Open(cfg LineConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isOpen {
		return nil
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
	}
	switch cfg.StopBits {
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		mode.StopBits = serial.OneStopBit
	}
	switch cfg.Parity {
	case "odd":
		mode.Parity = serial.OddParity
	case "even":
		mode.Parity = serial.EvenParity
	default:
		mode.Parity = serial.NoParity
	}

	port, err := serial.Open(p.info.Port, mode)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", p.info.Port, err)
	}

	p.port = port
	p.isOpen = true
	return nil
}

func (p *systemPort) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isOpen && p.port != nil
}

func (p *systemPort) AcquireWriter() (Writer, error) {
	p.mu.Lock()
	if !p.isOpen || p.port == nil {
		p.mu.Unlock()
		return nil, fmt.Errorf("port %s is not open", p.info.Port)
	}
	p.mu.Unlock()

	p.writeMu.Lock()
	return &systemWriter{port: p}, nil
}

func (p *systemPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isOpen || p.port == nil {
		return nil
	}

	err := p.port.Close()
	p.port = nil
	p.isOpen = false
	if err != nil {
		return fmt.Errorf("failed to close %s: %w", p.info.Port, err)
	}
	return nil
}

// systemWriter holds the exclusive write lock until released.
type systemWriter struct {
	port    *systemPort
	release sync.Once
}

func (w *systemWriter) Write(ctx context.Context, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	w.port.mu.Lock()
	port := w.port.port
	w.port.mu.Unlock()
	if port == nil {
		return fmt.Errorf("port %s closed during write", w.port.info.Port)
	}

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := port.Write(data)
		done <- result{n: n, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return res.err
		}
		if res.n != len(data) {
			return fmt.Errorf("incomplete write: wrote %d of %d bytes", res.n, len(data))
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *systemWriter) Release() {
	w.release.Do(func() {
		w.port.writeMu.Unlock()
	})
}
