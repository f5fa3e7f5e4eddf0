// pkg/fault/fault.go
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel failures shared by the acquisition and transport layers.
// Callers distinguish failure kinds with errors.Is / errors.As and decide
// retry policy themselves; no component retries internally.
var (
	// ErrUnsupportedPlatform means the host offers no serial capability at all.
	// Fatal for the session, not retryable.
	ErrUnsupportedPlatform = errors.New("serial devices are not supported on this host")

	// ErrDeviceNotSelected means the device chooser finished without a device,
	// either because the user dismissed it or because it had nothing to offer.
	ErrDeviceNotSelected = errors.New("no serial device was selected")

	// ErrPermissionDenied means the host refused access to the device.
	ErrPermissionDenied = errors.New("access to the serial device was denied")

	// ErrPrinterNotReady means the device is present but not accepting I/O,
	// typically powered off, out of paper, or held open by another process.
	ErrPrinterNotReady = errors.New("printer is not ready")
)

// CommunicationError is a write failure mid-stream. The whole ticket must be
// resent; partial output cannot be resumed.
type CommunicationError struct {
	Op  string
	Err error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("printer communication failed during %s: %v", e.Op, e.Err)
}

func (e *CommunicationError) Unwrap() error { return e.Err }

// TransportError is the catch-all for other host-reported I/O failures.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("serial transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Communication wraps err as a CommunicationError for the given operation.
func Communication(op string, err error) error {
	return &CommunicationError{Op: op, Err: err}
}

// Transport wraps err as a TransportError.
func Transport(err error) error {
	return &TransportError{Err: err}
}

// IsCommunication reports whether err is a CommunicationError.
func IsCommunication(err error) bool {
	var ce *CommunicationError
	return errors.As(err, &ce)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Code returns the machine-readable failure code for err.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedPlatform):
		return "UNSUPPORTED_PLATFORM"
	case errors.Is(err, ErrDeviceNotSelected):
		return "DEVICE_NOT_SELECTED"
	case errors.Is(err, ErrPermissionDenied):
		return "PERMISSION_DENIED"
	case errors.Is(err, ErrPrinterNotReady):
		return "PRINTER_NOT_READY"
	case IsCommunication(err):
		return "PRINTER_COMMUNICATION_ERROR"
	case IsTransport(err):
		return "TRANSPORT_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// Retryable reports whether the caller may retry immediately after err.
// PermissionDenied requires the user to grant access out-of-band first, and
// UnsupportedPlatform never recovers within a session.
func Retryable(err error) bool {
	return RetryableCode(Code(err))
}

// RetryableCode is Retryable for an already-extracted fault code, for
// callers that carry the code instead of the error itself.
func RetryableCode(code string) bool {
	switch code {
	case "DEVICE_NOT_SELECTED", "PRINTER_NOT_READY", "PRINTER_COMMUNICATION_ERROR", "TRANSPORT_ERROR":
		return true
	default:
		return false
	}
}

// HTTPStatus maps err to the status code the API surface should answer with.
func HTTPStatus(err error) int {
	switch Code(err) {
	case "":
		return http.StatusOK
	case "UNSUPPORTED_PLATFORM":
		return http.StatusNotImplemented
	case "DEVICE_NOT_SELECTED":
		return http.StatusConflict
	case "PERMISSION_DENIED":
		return http.StatusForbidden
	case "PRINTER_NOT_READY":
		return http.StatusServiceUnavailable
	case "PRINTER_COMMUNICATION_ERROR", "TRANSPORT_ERROR":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
