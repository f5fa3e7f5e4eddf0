// internal/serialhost/usb.go
package serialhost

import (
	"github.com/google/gousb"
	"go.uber.org/zap"
)

// VendorScanner reports which USB vendors are currently present on the bus.
type VendorScanner interface {
	PresentVendors() (map[uint16]bool, error)
}

// USBScanner walks the USB bus with gousb. Serial ports cannot be mapped to
// a specific USB device portably, so the scanner answers the coarser
// question the chooser filter needs: is any device from a given vendor
// attached at all.
type USBScanner struct {
	logger *zap.Logger
}

// NewUSBScanner creates a USB bus scanner.
func NewUSBScanner(logger *zap.Logger) *USBScanner {
	return &USBScanner{
		logger: logger.With(zap.String("component", "usb-scanner")),
	}
}

// PresentVendors enumerates the bus and returns the set of vendor IDs seen.
// No device is opened; the visitor only records descriptors.
func (s *USBScanner) PresentVendors() (map[uint16]bool, error) {
	usbCtx := gousb.NewContext()
	defer usbCtx.Close()

	present := make(map[uint16]bool)
	devices, err := usbCtx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		present[uint16(desc.Vendor)] = true
		return false
	})
	for _, dev := range devices {
		dev.Close()
	}
	if err != nil {
		s.logger.Warn("USB bus enumeration finished with errors", zap.Error(err))
	}

	s.logger.Debug("USB bus scanned", zap.Int("vendors_present", len(present)))
	return present, nil
}
