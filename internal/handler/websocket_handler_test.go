package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"printer-service/internal/service"
	"printer-service/internal/utils"
)

type stubStatusProvider struct {
	status *service.PrinterStatus
}

func (s *stubStatusProvider) Status(context.Context) *service.PrinterStatus {
	return s.status
}

func newTestWebSocketHandler(status statusProvider) *WebSocketHandler {
	return &WebSocketHandler{
		connections: NewConnectionManager(),
		status:      status,
		logger:      utils.NewServiceLogger(zap.NewNop(), "websocket-handler"),
	}
}

func TestSendInitialStatus(t *testing.T) {
	provider := &stubStatusProvider{status: &service.PrinterStatus{Ready: true, VenueName: "TERRAZA MADERO"}}
	h := newTestWebSocketHandler(provider)

	client := &Client{ID: "c1", Send: make(chan []byte, 1)}
	h.sendInitialStatus(client, context.Background())

	select {
	case payload := <-client.Send:
		var message WebSocketMessage
		require.NoError(t, json.Unmarshal(payload, &message))
		assert.Equal(t, "initial_status", message.Type)

		data, ok := message.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, true, data["ready"])
		assert.Equal(t, "TERRAZA MADERO", data["venue_name"])
	case <-time.After(time.Second):
		t.Fatal("no initial status frame was queued")
	}
}

func TestTrySendAfterUnregister(t *testing.T) {
	cm := NewConnectionManager()
	client := &Client{ID: "c1", Send: make(chan []byte, 1)}

	cm.Register(client)
	assert.True(t, client.TrySend([]byte("frame")))

	cm.Unregister(client)
	assert.False(t, client.TrySend([]byte("frame")))
}

func TestTrySendFullBuffer(t *testing.T) {
	client := &Client{ID: "c1", Send: make(chan []byte, 1)}

	assert.True(t, client.TrySend([]byte("first")))
	assert.False(t, client.TrySend([]byte("second")))
}

func TestTrySendConcurrentWithUnregister(t *testing.T) {
	cm := NewConnectionManager()

	for i := 0; i < 100; i++ {
		client := &Client{ID: "c1", Send: make(chan []byte, 1)}
		cm.Register(client)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				client.TrySend([]byte("frame"))
			}
		}()
		go func() {
			defer wg.Done()
			cm.Unregister(client)
		}()
		wg.Wait()
	}
}

func TestHandleStats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestWebSocketHandler(&stubStatusProvider{})
	h.connections.Register(&Client{ID: "c1", Send: make(chan []byte, 1)})

	router := gin.New()
	router.GET("/ws/stats", h.HandleStats)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ws/stats", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response utils.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, response.Success)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["total_connections"])
}
