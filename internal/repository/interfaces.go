// internal/repository/interfaces.go
package repository

import (
	"context"
	"time"

	"printer-service/internal/model"
	"printer-service/internal/serialhost"
)

// PrinterRepository defines authorized printer data access operations.
// It persists which serial ports the operator has approved so grants
// survive service restarts.
type PrinterRepository interface {
	// AuthorizationStore operations used by port acquisition
	ListAuthorized(ctx context.Context) ([]string, error)
	Authorize(ctx context.Context, info serialhost.DeviceInfo) error
	Touch(ctx context.Context, portName string, seenAt time.Time) error

	// Management operations
	List(ctx context.Context) ([]*model.Printer, error)
	GetByPortName(ctx context.Context, portName string) (*model.Printer, error)
	Revoke(ctx context.Context, portName string) error
}
