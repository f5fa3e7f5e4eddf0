package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func receiveEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case event := <-events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestEventBusDeliversToSubscriber(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	go bus.Run()

	events := bus.Subscribe()
	bus.Publish(TopicSetup, "connected", map[string]interface{}{"message": "ok"})

	event := receiveEvent(t, events)
	assert.Equal(t, TopicSetup, event.Topic)
	assert.Equal(t, "connected", event.Type)
	assert.Equal(t, "ok", event.Data["message"])
	assert.False(t, event.Timestamp.IsZero())
}

func TestEventBusFansOutToAllSubscribers(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	go bus.Run()

	first := bus.Subscribe()
	second := bus.Subscribe()
	bus.Publish(TopicJob, "completed", map[string]interface{}{"job_id": "j1"})

	assert.Equal(t, "completed", receiveEvent(t, first).Type)
	assert.Equal(t, "completed", receiveEvent(t, second).Type)
}

func TestEventBusPublishNeverBlocks(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	// No Run goroutine; fill the feed past capacity.
	for i := 0; i < 1100; i++ {
		bus.Publish(TopicJob, "completed", nil)
	}
}

func TestPrinterEventHandlerPublishesJobEvents(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	go bus.Run()
	events := bus.Subscribe()

	peh := NewPrinterEventHandler(bus, zap.NewNop())

	peh.OnJobCompleted("j1", "bill", 120*time.Millisecond)
	event := receiveEvent(t, events)
	require.Equal(t, TopicJob, event.Topic)
	assert.Equal(t, "completed", event.Type)
	assert.Equal(t, "j1", event.Data["job_id"])
	assert.Equal(t, int64(120), event.Data["duration_ms"])

	peh.OnJobFailed("j2", "self_test", errors.New("port gone"))
	event = receiveEvent(t, events)
	assert.Equal(t, "failed", event.Type)
	assert.Equal(t, "port gone", event.Data["error"])
}

func TestPrinterEventHandlerPublishesSetupEvents(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	go bus.Run()
	events := bus.Subscribe()

	peh := NewPrinterEventHandler(bus, zap.NewNop())
	peh.OnSetupStateChanged("available", "Ready to connect a printer")

	event := receiveEvent(t, events)
	assert.Equal(t, TopicSetup, event.Topic)
	assert.Equal(t, "available", event.Type)
}

func TestClientTopicFiltering(t *testing.T) {
	client := &Client{ID: "c1"}

	// Without subscriptions, everything flows
	assert.True(t, client.WantsTopic(TopicSetup))
	assert.True(t, client.WantsTopic(TopicJob))

	client.Subscribe(TopicJob)
	assert.True(t, client.WantsTopic(TopicJob))
	assert.False(t, client.WantsTopic(TopicSetup))

	client.Unsubscribe(TopicJob)
	assert.True(t, client.WantsTopic(TopicSetup))
}

func TestConnectionManagerRegisterUnregister(t *testing.T) {
	cm := NewConnectionManager()
	client := &Client{ID: "c1", Send: make(chan []byte, 1)}

	cm.Register(client)
	require.Len(t, cm.GetClients(), 1)
	assert.Equal(t, 1, cm.GetStats().TotalConnections)

	cm.Unregister(client)
	assert.Empty(t, cm.GetClients())

	// A second unregister is a no-op rather than a double close
	cm.Unregister(client)
}
