// internal/handler/event_bus.go
package handler

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Topics carried by the event bus. Clients subscribe per topic.
const (
	TopicSetup = "setup"
	TopicJob   = "job"
)

// Event is one printer lifecycle notification.
type Event struct {
	Topic     string                 `json:"topic"`
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// EventBus fans printer lifecycle events out to its subscribers. Producers
// never block: when the feed or a subscriber falls behind, events are
// dropped rather than stalling a print job on a slow WebSocket client.
type EventBus struct {
	mu     sync.RWMutex
	subs   []chan Event
	feed   chan Event
	logger *zap.Logger
}

// NewEventBus creates an event bus. Run must be started for events to flow.
func NewEventBus(logger *zap.Logger) *EventBus {
	return &EventBus{
		feed:   make(chan Event, 1000),
		logger: logger.With(zap.String("component", "event-bus")),
	}
}

// Run pumps the feed until the bus is no longer published to. Intended to
// run as a goroutine for the lifetime of the process.
func (eb *EventBus) Run() {
	for event := range eb.feed {
		eb.fanOut(event)
	}
}

// Publish stamps and queues one event.
func (eb *EventBus) Publish(topic, eventType string, data map[string]interface{}) {
	event := Event{
		Topic:     topic,
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}

	select {
	case eb.feed <- event:
	default:
		eb.logger.Warn("Event feed full, dropping event",
			zap.String("topic", topic),
			zap.String("type", eventType),
		)
	}
}

// Subscribe returns a channel receiving every published event.
func (eb *EventBus) Subscribe() <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	sub := make(chan Event, 100)
	eb.subs = append(eb.subs, sub)
	return sub
}

func (eb *EventBus) fanOut(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, sub := range eb.subs {
		select {
		case sub <- event:
		default:
		}
	}
}

// PrinterEventHandler translates printer lifecycle callbacks into bus
// events. Print and setup handlers call it; WebSocket clients receive the
// result.
type PrinterEventHandler struct {
	bus    *EventBus
	logger *zap.Logger
}

// NewPrinterEventHandler creates a new printer event handler
func NewPrinterEventHandler(bus *EventBus, logger *zap.Logger) *PrinterEventHandler {
	return &PrinterEventHandler{
		bus:    bus,
		logger: logger,
	}
}

// OnSetupStateChanged publishes a setup flow state transition
func (peh *PrinterEventHandler) OnSetupStateChanged(state string, message string) {
	peh.bus.Publish(TopicSetup, state, map[string]interface{}{
		"message": message,
	})
}

// OnJobCompleted publishes a print job completion
func (peh *PrinterEventHandler) OnJobCompleted(jobID, jobType string, duration time.Duration) {
	peh.bus.Publish(TopicJob, "completed", map[string]interface{}{
		"job_id":      jobID,
		"job_type":    jobType,
		"duration_ms": duration.Milliseconds(),
	})
}

// OnJobFailed publishes a print job failure
func (peh *PrinterEventHandler) OnJobFailed(jobID, jobType string, err error) {
	peh.bus.Publish(TopicJob, "failed", map[string]interface{}{
		"job_id":   jobID,
		"job_type": jobType,
		"error":    err.Error(),
	})

	peh.logger.Warn("Print job failure broadcasted",
		zap.String("job_id", jobID),
		zap.String("job_type", jobType),
		zap.Error(err),
	)
}
