package metrics

import (
	"context"
	"strconv"

	"github.com/lifequest/lifequest/internal/event"
	"github.com/lifequest/lifequest/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.TaskCompleted,
		event.TaskFailed,
		event.HeroLevelUp,
		event.HeroDied,
		event.StreakBroken,
		event.EconomyDailyReset,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.TaskCompleted:
		payload, err := event.DecodePayload[event.TaskCompletedPayloadV1](evt.Payload)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		TasksCompleted.WithLabelValues(payload.TaskType, payload.Difficulty).Inc()
		XPAwarded.Add(float64(payload.XPGained))
		GoldAwarded.Add(float64(payload.GoldGained))

	case event.TaskFailed:
		payload, err := event.DecodePayload[event.TaskFailedPayloadV1](evt.Payload)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		TasksFailed.WithLabelValues(payload.TaskType, payload.Difficulty, strconv.FormatBool(payload.Overdue)).Inc()

	case event.HeroLevelUp:
		HeroLevelUps.Inc()

	case event.HeroDied:
		HeroDeaths.Inc()

	case event.StreakBroken:
		StreaksBroken.Inc()

	case event.EconomyDailyReset:
		DailyResets.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
