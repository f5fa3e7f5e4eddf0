// internal/model/printer.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Printer is an authorized serial printer device. Authorization is granted
// once through the chooser flow and persists across agent restarts, so a
// previously selected printer is usable without prompting again.
type Printer struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	PortName     string     `json:"port_name" db:"port_name"`
	VendorID     *int64     `json:"vendor_id,omitempty" db:"vendor_id"`
	ProductID    *int64     `json:"product_id,omitempty" db:"product_id"`
	Label        string     `json:"label" db:"label"`
	AuthorizedAt time.Time  `json:"authorized_at" db:"authorized_at"`
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty" db:"last_seen_at"`
}
