package worker

import "time"

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for daily reset worker operations
const (
	LogMsgDailyResetStandby       = "Daily reset standby"
	LogMsgDailyResetApproach      = "Daily reset scheduled"
	LogMsgDailyResetStarting      = "Daily reset starting"
	LogMsgDailyResetCompleted     = "Daily reset completed"
	LogMsgDailyResetFailed        = "Daily reset failed"
	LogMsgDailyResetPublishFailed = "Failed to publish daily reset event"
)

// Log messages for overdue sweep operations
const (
	LogMsgOverdueSweepScheduled = "Overdue sweep enqueued"
	LogMsgOverdueSweepFailed    = "Overdue sweep failed"
	LogMsgOverdueTasksProcessed = "Overdue tasks processed"
)

// DefaultOverdueSweepInterval is how often heroes are checked for
// overdue tasks when no interval is configured.
const DefaultOverdueSweepInterval = 15 * time.Minute
