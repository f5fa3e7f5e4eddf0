package transport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"printer-service/internal/serialhost"
	"printer-service/pkg/fault"
)

type fakeWriter struct {
	writeErr error
	written  [][]byte
	released int
}

func (w *fakeWriter) Write(_ context.Context, data []byte) error {
	if w.writeErr != nil {
		return w.writeErr
	}
	w.written = append(w.written, data)
	return nil
}

func (w *fakeWriter) Release() {
	w.released++
}

type fakePort struct {
	info       serialhost.DeviceInfo
	open       bool
	openErr    error
	acquireErr error
	writer     *fakeWriter

	openCalls  int
	closeCalls int
}

func (p *fakePort) Info() serialhost.DeviceInfo { return p.info }

func (p *fakePort) Open(_ serialhost.LineConfig) error {
	p.openCalls++
	if p.openErr != nil {
		return p.openErr
	}
	p.open = true
	return nil
}

func (p *fakePort) IsOpen() bool { return p.open }

func (p *fakePort) AcquireWriter() (serialhost.Writer, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.writer, nil
}

func (p *fakePort) Close() error {
	p.closeCalls++
	p.open = false
	return nil
}

func newDriver() *Driver {
	return NewDriver(serialhost.DefaultLineConfig(), 5*time.Second, zap.NewNop())
}

func TestSendOpensAndClosesClosedPort(t *testing.T) {
	port := &fakePort{writer: &fakeWriter{}}

	err := newDriver().Send(context.Background(), port, []byte("ticket"))
	require.NoError(t, err)

	assert.Equal(t, 1, port.openCalls)
	assert.Equal(t, 1, port.closeCalls)
	assert.Equal(t, [][]byte{[]byte("ticket")}, port.writer.written)
	assert.Equal(t, 1, port.writer.released)
}

func TestSendLeavesPreOpenedPortOpen(t *testing.T) {
	port := &fakePort{open: true, writer: &fakeWriter{}}

	err := newDriver().Send(context.Background(), port, []byte("ticket"))
	require.NoError(t, err)

	assert.Equal(t, 0, port.openCalls)
	assert.Equal(t, 0, port.closeCalls)
	assert.True(t, port.IsOpen())
}

func TestSendClosesPortItOpenedOnWriteFailure(t *testing.T) {
	port := &fakePort{writer: &fakeWriter{writeErr: errors.New("pipe broken")}}

	err := newDriver().Send(context.Background(), port, []byte("ticket"))
	require.Error(t, err)

	assert.True(t, fault.IsCommunication(err))
	assert.Equal(t, 1, port.closeCalls)
	assert.Equal(t, 1, port.writer.released)
}

func TestSendOpenFailure(t *testing.T) {
	port := &fakePort{openErr: errors.New("device vanished"), writer: &fakeWriter{}}

	err := newDriver().Send(context.Background(), port, []byte("ticket"))
	require.Error(t, err)

	assert.True(t, fault.IsTransport(err))
	assert.Equal(t, 0, port.closeCalls)
	assert.Equal(t, 0, port.writer.released)
}

func TestSendAcquireWriterFailure(t *testing.T) {
	port := &fakePort{acquireErr: errors.New("writer held"), writer: &fakeWriter{}}

	err := newDriver().Send(context.Background(), port, []byte("ticket"))
	require.Error(t, err)

	assert.True(t, errors.Is(err, fault.ErrPrinterNotReady))
	// A port this call opened is still closed on the way out
	assert.Equal(t, 1, port.closeCalls)
}

func TestSendWithoutWriteTimeout(t *testing.T) {
	driver := NewDriver(serialhost.DefaultLineConfig(), 0, zap.NewNop())
	port := &fakePort{open: true, writer: &fakeWriter{}}

	err := driver.Send(context.Background(), port, []byte("ticket"))
	assert.NoError(t, err)
}

func TestClassifyOpenErrorDefaultsToTransport(t *testing.T) {
	err := classifyOpenError(errors.New("unknown open failure"))
	assert.True(t, fault.IsTransport(err))
}
