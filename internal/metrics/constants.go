package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameTasksCompleted = "tasks_completed_total"
	MetricNameTasksFailed    = "tasks_failed_total"
	MetricNameXPAwarded      = "xp_awarded_total"
	MetricNameGoldAwarded    = "gold_awarded_total"
	MetricNameHeroDeaths     = "hero_deaths_total"
	MetricNameHeroLevelUps   = "hero_level_ups_total"
	MetricNameStreaksBroken  = "streaks_broken_total"
	MetricNameDailyResets    = "daily_resets_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextTasksCompleted = "Total number of tasks completed"
	HelpTextTasksFailed    = "Total number of tasks failed"
	HelpTextXPAwarded      = "Total experience points awarded"
	HelpTextGoldAwarded    = "Total gold awarded"
	HelpTextHeroDeaths     = "Total number of hero deaths"
	HelpTextHeroLevelUps   = "Total number of hero level-ups"
	HelpTextStreaksBroken  = "Total number of streaks broken"
	HelpTextDailyResets    = "Total number of daily ledger resets"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelTaskType   = "task_type"
	LabelDifficulty = "difficulty"
	LabelOverdue    = "overdue"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgMetricsRecorded = "Metrics recorded for event"
)
