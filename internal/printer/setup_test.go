package printer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"printer-service/internal/serialhost"
	"printer-service/pkg/fault"
)

func newSetup(acquirer Acquirer) *Setup {
	return NewSetup(acquirer, []uint16{0x04B8}, zap.NewNop())
}

func TestSetupStartsChecking(t *testing.T) {
	s := newSetup(&fakeAcquirer{})
	assert.Equal(t, SetupChecking, s.Snapshot().State)
}

func TestMountTransitions(t *testing.T) {
	port := &stubPort{}

	tests := []struct {
		name     string
		acquirer *fakeAcquirer
		want     SetupState
	}{
		{"unsupported_host", &fakeAcquirer{supported: false}, SetupNotSupported},
		{"already_authorized", &fakeAcquirer{supported: true, authorized: []serialhost.Port{port}}, SetupConnected},
		{"nothing_authorized", &fakeAcquirer{supported: true}, SetupAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSetup(tt.acquirer)
			snap := s.Mount(context.Background())
			assert.Equal(t, tt.want, snap.State)
		})
	}
}

func TestRequestAcquireRejectedWhileChecking(t *testing.T) {
	s := newSetup(&fakeAcquirer{supported: true})

	snap, err := s.RequestAcquire(context.Background(), true)
	require.Error(t, err)
	assert.Equal(t, SetupChecking, snap.State)
}

func TestRequestAcquireSuccess(t *testing.T) {
	port := &stubPort{info: serialhost.DeviceInfo{Port: "/dev/ttyUSB0", Label: "Epson"}}
	acquirer := &fakeAcquirer{supported: true, requestPort: port}

	s := newSetup(acquirer)
	s.Mount(context.Background())

	snap, err := s.RequestAcquire(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, SetupConnected, snap.State)
	require.NotNil(t, snap.Device)
	assert.Equal(t, "/dev/ttyUSB0", snap.Device.Port)
	assert.Equal(t, []uint16{0x04B8}, acquirer.seenFilters[0])
}

func TestRequestAcquireWithoutFilter(t *testing.T) {
	port := &stubPort{}
	acquirer := &fakeAcquirer{supported: true, requestPort: port}

	s := newSetup(acquirer)
	s.Mount(context.Background())

	_, err := s.RequestAcquire(context.Background(), false)
	require.NoError(t, err)
	assert.Nil(t, acquirer.seenFilters[0])
}

func TestRequestAcquireFailureEntersErrorState(t *testing.T) {
	acquirer := &fakeAcquirer{supported: true, requestErrs: []error{fault.ErrDeviceNotSelected}}

	s := newSetup(acquirer)
	s.Mount(context.Background())

	snap, err := s.RequestAcquire(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, SetupError, snap.State)
	assert.Equal(t, "DEVICE_NOT_SELECTED", snap.FaultCode)
	assert.NotEmpty(t, snap.Message)
	assert.Nil(t, snap.Device)
}

func TestRequestAcquireRetryFromError(t *testing.T) {
	port := &stubPort{}
	acquirer := &fakeAcquirer{
		supported:   true,
		requestPort: port,
		requestErrs: []error{fault.ErrDeviceNotSelected, nil},
	}

	s := newSetup(acquirer)
	s.Mount(context.Background())

	snap, err := s.RequestAcquire(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, SetupError, snap.State)

	snap, err = s.RequestAcquire(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, SetupConnected, snap.State)
	assert.Empty(t, snap.FaultCode)
}

func TestRequestAcquireRejectedWhileConnected(t *testing.T) {
	port := &stubPort{}
	acquirer := &fakeAcquirer{supported: true, requestPort: port}

	s := newSetup(acquirer)
	s.Mount(context.Background())

	_, err := s.RequestAcquire(context.Background(), true)
	require.NoError(t, err)

	_, err = s.RequestAcquire(context.Background(), true)
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	port := &stubPort{}
	acquirer := &fakeAcquirer{supported: true, requestPort: port}

	s := newSetup(acquirer)
	s.Mount(context.Background())

	_, err := s.RequestAcquire(context.Background(), true)
	require.NoError(t, err)

	snap, err := s.Reset()
	require.NoError(t, err)
	assert.Equal(t, SetupAvailable, snap.State)
	assert.Nil(t, snap.Device)
}

func TestResetRejectedWhenNotConnected(t *testing.T) {
	s := newSetup(&fakeAcquirer{supported: true})
	s.Mount(context.Background())

	_, err := s.Reset()
	assert.Error(t, err)
}

func TestErrorStateIsSticky(t *testing.T) {
	acquirer := &fakeAcquirer{supported: true, requestErrs: []error{fault.ErrPermissionDenied}}

	s := newSetup(acquirer)
	s.Mount(context.Background())

	snap, err := s.RequestAcquire(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, SetupError, snap.State)

	// No automatic exit from error; the snapshot keeps the fault
	snap = s.Snapshot()
	assert.Equal(t, SetupError, snap.State)
	assert.Equal(t, "PERMISSION_DENIED", snap.FaultCode)
}

func TestCandidates(t *testing.T) {
	port := &stubPort{info: serialhost.DeviceInfo{Port: "/dev/ttyUSB0"}}
	acquirer := &fakeAcquirer{supported: true, authorized: []serialhost.Port{port}}

	s := newSetup(acquirer)

	infos, err := s.Candidates(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "/dev/ttyUSB0", infos[0].Port)
}

func TestCandidatesUnsupportedHost(t *testing.T) {
	s := newSetup(&fakeAcquirer{supported: false})

	_, err := s.Candidates(context.Background(), false)
	assert.ErrorIs(t, err, fault.ErrUnsupportedPlatform)
}
