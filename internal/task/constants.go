package task

// Validation limits
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// Error message constants for task operations
const (
	ErrMsgTitleRequired     = "task title is required"
	ErrMsgTitleTooLong      = "task title exceeds maximum length"
	ErrMsgInvalidTaskType   = "invalid task type"
	ErrMsgInvalidDifficulty = "invalid task difficulty"
	ErrMsgFreezeChargesFull = "freeze charges already at maximum"
)

// Log message constants
const (
	logMsgTaskCreated     = "Task created"
	logMsgTaskDeleted     = "Task deleted"
	logMsgTaskCompleted   = "Task completed"
	logMsgTaskFailed      = "Task failed"
	logMsgOverdueSweep    = "Overdue sweep finished"
	logMsgFreezeUsed      = "Streak freeze used"
	logMsgFreezePurchased = "Streak freeze charge purchased"
	logMsgShieldActivated = "Streak shield activated"
	logMsgPublishFailed   = "Failed to publish event"
)
