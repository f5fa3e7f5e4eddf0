package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"printer-service/internal/database"
	"printer-service/internal/serialhost"
)

func newMockRepo(t *testing.T) (PrinterRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	repo := NewPrinterRepository(&database.DB{DB: sqlDB}, zap.NewNop())
	return repo, mock
}

func TestListAuthorized(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"port_name"}).
		AddRow("/dev/ttyUSB0").
		AddRow("/dev/ttyACM0")

	mock.ExpectQuery("SELECT port_name FROM authorized_printers").WillReturnRows(rows)

	ports, err := repo.ListAuthorized(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/dev/ttyUSB0", "/dev/ttyACM0"}, ports)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAuthorizedEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT port_name FROM authorized_printers").
		WillReturnRows(sqlmock.NewRows([]string{"port_name"}))

	ports, err := repo.ListAuthorized(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ports)
}

func TestAuthorize(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO authorized_printers").
		WithArgs(sqlmock.AnyArg(), "/dev/ttyUSB0", int64(0x04B8), int64(0x0202), "Epson TM-T20", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Authorize(context.Background(), serialhost.DeviceInfo{
		Port:      "/dev/ttyUSB0",
		VendorID:  0x04B8,
		ProductID: 0x0202,
		Label:     "Epson TM-T20",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthorizeWithoutUSBIdentity(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO authorized_printers").
		WithArgs(sqlmock.AnyArg(), "/dev/ttyS0", nil, nil, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Authorize(context.Background(), serialhost.DeviceInfo{Port: "/dev/ttyS0"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTouch(t *testing.T) {
	repo, mock := newMockRepo(t)

	seenAt := time.Now()
	mock.ExpectExec("UPDATE authorized_printers SET last_seen_at").
		WithArgs(seenAt, "/dev/ttyUSB0").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Touch(context.Background(), "/dev/ttyUSB0", seenAt)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	authorizedAt := time.Now()
	vendor := int64(0x04B8)

	rows := sqlmock.NewRows([]string{"id", "port_name", "vendor_id", "product_id", "label", "authorized_at", "last_seen_at"}).
		AddRow(id, "/dev/ttyUSB0", vendor, nil, "Epson TM-T20", authorizedAt, nil)

	mock.ExpectQuery("SELECT id, port_name, vendor_id, product_id, label, authorized_at, last_seen_at").
		WillReturnRows(rows)

	printers, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, printers, 1)
	assert.Equal(t, id, printers[0].ID)
	assert.Equal(t, "/dev/ttyUSB0", printers[0].PortName)
	require.NotNil(t, printers[0].VendorID)
	assert.Equal(t, vendor, *printers[0].VendorID)
	assert.Nil(t, printers[0].ProductID)
}

func TestGetByPortNameNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, port_name, vendor_id, product_id, label, authorized_at, last_seen_at").
		WithArgs("/dev/ttyUSB9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "port_name", "vendor_id", "product_id", "label", "authorized_at", "last_seen_at"}))

	_, err := repo.GetByPortName(context.Background(), "/dev/ttyUSB9")
	assert.Error(t, err)
}

func TestRevoke(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM authorized_printers").
		WithArgs("/dev/ttyUSB0").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Revoke(context.Background(), "/dev/ttyUSB0")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM authorized_printers").
		WithArgs("/dev/ttyUSB9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Revoke(context.Background(), "/dev/ttyUSB9")
	assert.Error(t, err)
}
