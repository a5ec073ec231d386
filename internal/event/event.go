package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Common event types
const (
	TaskCompleted Type = "task.completed"
	TaskFailed    Type = "task.failed"

	HeroLevelUp   Type = "hero.level_up"
	HeroDied      Type = "hero.died"
	HeroRespawned Type = "hero.respawned"

	StreakBroken Type = "streak.broken"

	EconomyDailyReset Type = "economy.daily_reset"
)

// Typed event payloads for type safety

// TaskCompletedPayloadV1 is the typed payload for task completion events
type TaskCompletedPayloadV1 struct {
	HeroID     string `json:"hero_id"`
	TaskID     string `json:"task_id"`
	TaskType   string `json:"task_type"`
	Difficulty string `json:"difficulty"`
	XPGained   int64  `json:"xp_gained"`
	GoldGained int64  `json:"gold_gained"`
	StreakDays int    `json:"streak_days"`
	Timestamp  int64  `json:"timestamp"`
}

// TaskFailedPayloadV1 is the typed payload for task failure events
type TaskFailedPayloadV1 struct {
	HeroID     string `json:"hero_id"`
	TaskID     string `json:"task_id"`
	TaskType   string `json:"task_type"`
	Difficulty string `json:"difficulty"`
	HPLost     int    `json:"hp_lost"`
	GoldLost   int64  `json:"gold_lost"`
	Overdue    bool   `json:"overdue"`
	Timestamp  int64  `json:"timestamp"`
}

// HeroLevelUpPayloadV1 is the typed payload for level-up events
type HeroLevelUpPayloadV1 struct {
	HeroID    string `json:"hero_id"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	Timestamp int64  `json:"timestamp"`
}

// HeroDiedPayloadV1 is the typed payload for hero death events
type HeroDiedPayloadV1 struct {
	HeroID     string `json:"hero_id"`
	DeathCount int    `json:"death_count"`
	CauseTask  string `json:"cause_task,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// HeroRespawnedPayloadV1 is the typed payload for respawn events
type HeroRespawnedPayloadV1 struct {
	HeroID         string    `json:"hero_id"`
	RecoveryEndsAt time.Time `json:"recovery_ends_at"`
	Timestamp      int64     `json:"timestamp"`
}

// StreakBrokenPayloadV1 is the typed payload for streak break events
type StreakBrokenPayloadV1 struct {
	HeroID    string `json:"hero_id"`
	TaskID    string `json:"task_id"`
	DaysLost  int    `json:"days_lost"`
	XPLost    int64  `json:"xp_lost"`
	GoldLost  int64  `json:"gold_lost"`
	Timestamp int64  `json:"timestamp"`
}

// DailyResetCompletePayloadV1 is the typed payload for daily reset complete events
type DailyResetCompletePayloadV1 struct {
	ResetTime       time.Time `json:"reset_time"`
	RecordsAffected int64     `json:"records_affected"`
}

// Type-safe event constructors

// NewTaskCompletedEvent creates a new task completion event
func NewTaskCompletedEvent(heroID, taskID, taskType, difficulty string, xpGained, goldGained int64, streakDays int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TaskCompleted,
		Payload: TaskCompletedPayloadV1{
			HeroID:     heroID,
			TaskID:     taskID,
			TaskType:   taskType,
			Difficulty: difficulty,
			XPGained:   xpGained,
			GoldGained: goldGained,
			StreakDays: streakDays,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewTaskFailedEvent creates a new task failure event
func NewTaskFailedEvent(heroID, taskID, taskType, difficulty string, hpLost int, goldLost int64, overdue bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TaskFailed,
		Payload: TaskFailedPayloadV1{
			HeroID:     heroID,
			TaskID:     taskID,
			TaskType:   taskType,
			Difficulty: difficulty,
			HPLost:     hpLost,
			GoldLost:   goldLost,
			Overdue:    overdue,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewHeroLevelUpEvent creates a new level-up event
func NewHeroLevelUpEvent(heroID string, oldLevel, newLevel int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    HeroLevelUp,
		Payload: HeroLevelUpPayloadV1{
			HeroID:    heroID,
			OldLevel:  oldLevel,
			NewLevel:  newLevel,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewHeroDiedEvent creates a new hero death event
func NewHeroDiedEvent(heroID string, deathCount int, causeTask string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    HeroDied,
		Payload: HeroDiedPayloadV1{
			HeroID:     heroID,
			DeathCount: deathCount,
			CauseTask:  causeTask,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewHeroRespawnedEvent creates a new respawn event
func NewHeroRespawnedEvent(heroID string, recoveryEndsAt time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    HeroRespawned,
		Payload: HeroRespawnedPayloadV1{
			HeroID:         heroID,
			RecoveryEndsAt: recoveryEndsAt,
			Timestamp:      time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewStreakBrokenEvent creates a new streak break event
func NewStreakBrokenEvent(heroID, taskID string, daysLost int, xpLost, goldLost int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StreakBroken,
		Payload: StreakBrokenPayloadV1{
			HeroID:    heroID,
			TaskID:    taskID,
			DaysLost:  daysLost,
			XPLost:    xpLost,
			GoldLost:  goldLost,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewDailyResetCompleteEvent creates a new daily reset complete event
func NewDailyResetCompleteEvent(resetTime time.Time, recordsAffected int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EconomyDailyReset,
		Payload: DailyResetCompletePayloadV1{
			ResetTime:       resetTime,
			RecordsAffected: recordsAffected,
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously; a slow handler blocks the publisher.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
