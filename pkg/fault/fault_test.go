package fault

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unsupported", ErrUnsupportedPlatform, "UNSUPPORTED_PLATFORM"},
		{"not_selected", ErrDeviceNotSelected, "DEVICE_NOT_SELECTED"},
		{"permission", ErrPermissionDenied, "PERMISSION_DENIED"},
		{"not_ready", ErrPrinterNotReady, "PRINTER_NOT_READY"},
		{"wrapped_not_ready", fmt.Errorf("open: %w", ErrPrinterNotReady), "PRINTER_NOT_READY"},
		{"communication", Communication("write", errors.New("pipe broken")), "PRINTER_COMMUNICATION_ERROR"},
		{"transport", Transport(errors.New("bus fault")), "TRANSPORT_ERROR"},
		{"unknown", errors.New("something else"), "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.err))
		})
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(ErrDeviceNotSelected))
	assert.True(t, Retryable(ErrPrinterNotReady))
	assert.True(t, Retryable(Communication("write", errors.New("x"))))
	assert.True(t, Retryable(Transport(errors.New("x"))))

	assert.False(t, Retryable(ErrUnsupportedPlatform))
	assert.False(t, Retryable(ErrPermissionDenied))
	assert.False(t, Retryable(errors.New("unknown")))
	assert.False(t, Retryable(nil))
}

func TestRetryableCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"DEVICE_NOT_SELECTED", true},
		{"PRINTER_NOT_READY", true},
		{"PRINTER_COMMUNICATION_ERROR", true},
		{"TRANSPORT_ERROR", true},
		{"UNSUPPORTED_PLATFORM", false},
		{"PERMISSION_DENIED", false},
		{"INTERNAL_ERROR", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, RetryableCode(tt.code))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"unsupported", ErrUnsupportedPlatform, http.StatusNotImplemented},
		{"not_selected", ErrDeviceNotSelected, http.StatusConflict},
		{"permission", ErrPermissionDenied, http.StatusForbidden},
		{"not_ready", ErrPrinterNotReady, http.StatusServiceUnavailable},
		{"communication", Communication("write", errors.New("x")), http.StatusBadGateway},
		{"transport", Transport(errors.New("x")), http.StatusBadGateway},
		{"unknown", errors.New("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("pipe broken")

	commErr := Communication("write", inner)
	assert.True(t, errors.Is(commErr, inner))
	assert.True(t, IsCommunication(commErr))
	assert.False(t, IsCommunication(inner))

	transErr := Transport(inner)
	assert.True(t, errors.Is(transErr, inner))
	assert.True(t, IsTransport(transErr))
	assert.False(t, IsTransport(commErr))
}

func TestErrorMessages(t *testing.T) {
	err := Communication("write", errors.New("pipe broken"))
	assert.Contains(t, err.Error(), "write")
	assert.Contains(t, err.Error(), "pipe broken")

	terr := Transport(errors.New("bus fault"))
	assert.Contains(t, terr.Error(), "bus fault")
}
