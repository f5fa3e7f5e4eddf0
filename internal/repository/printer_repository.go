// internal/repository/printer_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"printer-service/internal/database"
	"printer-service/internal/model"
	"printer-service/internal/serialhost"
)

// printerRepository implements PrinterRepository interface
type printerRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewPrinterRepository creates a new printer repository
func NewPrinterRepository(db *database.DB, logger *zap.Logger) PrinterRepository {
	return &printerRepository{
		db:     db,
		logger: logger,
	}
}

// ListAuthorized returns the port names of all granted printers
func (r *printerRepository) ListAuthorized(ctx context.Context) ([]string, error) {
	query := `SELECT port_name FROM authorized_printers ORDER BY authorized_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list authorized printers", zap.Error(err))
		return nil, fmt.Errorf("failed to list authorized printers: %w", err)
	}
	defer rows.Close()

	var ports []string
	for rows.Next() {
		var port string
		if err := rows.Scan(&port); err != nil {
			return nil, fmt.Errorf("failed to scan port name: %w", err)
		}
		ports = append(ports, port)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authorized printers: %w", err)
	}

	return ports, nil
}

// Authorize records a grant for the given device. Re-authorizing an
// already granted port refreshes its metadata instead of failing.
func (r *printerRepository) Authorize(ctx context.Context, info serialhost.DeviceInfo) error {
	query := `
		INSERT INTO authorized_printers (id, port_name, vendor_id, product_id, label, authorized_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (port_name) DO UPDATE SET
			vendor_id = EXCLUDED.vendor_id,
			product_id = EXCLUDED.product_id,
			label = EXCLUDED.label,
			authorized_at = EXCLUDED.authorized_at
	`

	var vendorID, productID *int64
	if info.VendorID != 0 {
		v := int64(info.VendorID)
		vendorID = &v
	}
	if info.ProductID != 0 {
		p := int64(info.ProductID)
		productID = &p
	}

	_, err := r.db.ExecContext(ctx, query,
		uuid.New(), info.Port, vendorID, productID, info.Label, time.Now(),
	)

	if err != nil {
		r.logger.Error("Failed to authorize printer", zap.Error(err), zap.String("port", info.Port))
		return fmt.Errorf("failed to authorize printer: %w", err)
	}

	r.logger.Info("Printer authorized", zap.String("port", info.Port), zap.String("label", info.Label))
	return nil
}

// Touch updates the last seen timestamp for a granted port
func (r *printerRepository) Touch(ctx context.Context, portName string, seenAt time.Time) error {
	query := `UPDATE authorized_printers SET last_seen_at = $1 WHERE port_name = $2`

	_, err := r.db.ExecContext(ctx, query, seenAt, portName)
	if err != nil {
		return fmt.Errorf("failed to touch printer: %w", err)
	}

	return nil
}

// List returns all granted printers with their metadata
func (r *printerRepository) List(ctx context.Context) ([]*model.Printer, error) {
	query := `
		SELECT id, port_name, vendor_id, product_id, label, authorized_at, last_seen_at
		FROM authorized_printers ORDER BY authorized_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list printers", zap.Error(err))
		return nil, fmt.Errorf("failed to list printers: %w", err)
	}
	defer rows.Close()

	var printers []*model.Printer
	for rows.Next() {
		printer := &model.Printer{}
		err := rows.Scan(
			&printer.ID, &printer.PortName, &printer.VendorID, &printer.ProductID,
			&printer.Label, &printer.AuthorizedAt, &printer.LastSeenAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan printer: %w", err)
		}
		printers = append(printers, printer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate printers: %w", err)
	}

	return printers, nil
}

// GetByPortName retrieves a granted printer by its port name
func (r *printerRepository) GetByPortName(ctx context.Context, portName string) (*model.Printer, error) {
	query := `
		SELECT id, port_name, vendor_id, product_id, label, authorized_at, last_seen_at
		FROM authorized_printers WHERE port_name = $1
	`

	printer := &model.Printer{}
	err := r.db.QueryRowContext(ctx, query, portName).Scan(
		&printer.ID, &printer.PortName, &printer.VendorID, &printer.ProductID,
		&printer.Label, &printer.AuthorizedAt, &printer.LastSeenAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("printer not found with port: %s", portName)
		}
		r.logger.Error("Failed to get printer", zap.Error(err), zap.String("port", portName))
		return nil, fmt.Errorf("failed to get printer: %w", err)
	}

	return printer, nil
}

// Revoke removes a grant for the given port
func (r *printerRepository) Revoke(ctx context.Context, portName string) error {
	query := `DELETE FROM authorized_printers WHERE port_name = $1`

	result, err := r.db.ExecContext(ctx, query, portName)
	if err != nil {
		r.logger.Error("Failed to revoke printer", zap.Error(err), zap.String("port", portName))
		return fmt.Errorf("failed to revoke printer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("printer not found with port: %s", portName)
	}

	r.logger.Info("Printer authorization revoked", zap.String("port", portName))
	return nil
}
