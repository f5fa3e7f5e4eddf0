// internal/transport/transport.go
package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"printer-service/internal/serialhost"
	"printer-service/internal/utils"
	"printer-service/pkg/fault"
)

// Driver owns the open/write/close lifecycle of a single send. Within one
// Send call: open precedes the write lock, the lock precedes the write, the
// write precedes release, release precedes close. Lock release and the
// conditional close happen on every exit path.
type Driver struct {
	line         serialhost.LineConfig
	writeTimeout time.Duration
	logger       *zap.Logger
}

// NewDriver creates a transport driver with the given line configuration.
// A non-positive writeTimeout disables the write deadline.
func NewDriver(line serialhost.LineConfig, writeTimeout time.Duration, logger *zap.Logger) *Driver {
	return &Driver{
		line:         line,
		writeTimeout: writeTimeout,
		logger:       logger.With(zap.String("component", "transport")),
	}
}

// Send writes the full payload to the device in one logical write. The port
// is opened if needed and closed again only if this call opened it: a
// connection opened by a longer-lived caller is left open. No retries are
// performed here; retry policy belongs to the caller.
func (d *Driver) Send(ctx context.Context, port serialhost.Port, payload []byte) error {
	info := port.Info()
	pl := utils.NewPrinterLogger(d.logger, info.Port, info.Label)

	wasOpen := port.IsOpen()
	if !wasOpen {
		if err := port.Open(d.line); err != nil {
			pl.LogConnection("open", err)
			return classifyOpenError(err)
		}
		pl.LogConnection("open", nil)
		defer func() {
			pl.LogConnection("close", port.Close())
		}()
	}

	writer, err := port.AcquireWriter()
	if err != nil {
		return fmt.Errorf("%w: %v", fault.ErrPrinterNotReady, err)
	}
	defer writer.Release()

	if d.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.writeTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := writer.Write(ctx, payload); err != nil {
		pl.Error("Ticket write failed",
			zap.Int("bytes", len(payload)),
			zap.Error(err),
		)
		return fault.Communication("write", err)
	}

	pl.Info("Ticket sent",
		zap.Int("bytes", len(payload)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// classifyOpenError translates a port-open failure into the fault taxonomy.
// A busy or vanished port means the device is not accepting I/O right now;
// refused access keeps its identity; anything else is a transport fault.
func classifyOpenError(err error) error {
	var portErr *serial.PortError
	if errors.As(err, &portErr) {
		switch portErr.Code() {
		case serial.PortBusy, serial.PortNotFound, serial.InvalidSerialPort:
			return fmt.Errorf("%w: %v", fault.ErrPrinterNotReady, err)
		case serial.PermissionDenied:
			return fmt.Errorf("%w: %v", fault.ErrPermissionDenied, err)
		}
	}
	return fault.Transport(err)
}
