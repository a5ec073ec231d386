package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/lifequest/lifequest/internal/event"
	"github.com/lifequest/lifequest/internal/hero"
	"github.com/lifequest/lifequest/internal/metrics"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus    event.Bus
	HeroService hero.Service
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (event-based Prometheus counters)
// - Hero cache invalidation (evicts cached heroes touched by game events)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	deps.HeroService.RegisterInvalidation(deps.EventBus)
	slog.Info(LogMsgCacheInvalidationWired)

	return nil
}
