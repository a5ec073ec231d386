package handler

import (
	"errors"
	"net/http"

	"github.com/lifequest/lifequest/internal/domain"
)

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgMissingIDParam    = "Missing id parameter"
	ErrMsgInvalidIDParam    = "Invalid id parameter"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgHeroNotFoundHTTP     = "Hero not found"
	ErrMsgHeroNameTakenHTTP    = "A hero with that name already exists"
	ErrMsgHeroIsDeadHTTP       = "Hero is dead. Respawn before taking on tasks."
	ErrMsgHeroNotDeadHTTP      = "Hero is alive and does not need a respawn"
	ErrMsgTaskNotFoundHTTP     = "Task not found"
	ErrMsgTaskCompletedHTTP    = "That task is already completed"
	ErrMsgTaskInactiveHTTP     = "That task is not active"
	ErrMsgStreakNotFoundHTTP   = "No streak exists for that task"
	ErrMsgNoFreezeChargesHTTP  = "No freeze charges available"
	ErrMsgDailyLimitHTTP       = "Daily task limit reached. Come back tomorrow."
	ErrMsgNotEnoughGoldHTTP    = "Not enough gold"
	ErrMsgInvalidInputHTTP     = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Unrecognized errors collapse to a generic 500 so internal
// details never leak to clients.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrHeroNotFound):
		return http.StatusNotFound, ErrMsgHeroNotFoundHTTP
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, ErrMsgTaskNotFoundHTTP
	case errors.Is(err, domain.ErrStreakNotFound):
		return http.StatusNotFound, ErrMsgStreakNotFoundHTTP
	case errors.Is(err, domain.ErrHeroIsDead):
		return http.StatusConflict, ErrMsgHeroIsDeadHTTP
	case errors.Is(err, domain.ErrHeroNotDead):
		return http.StatusConflict, ErrMsgHeroNotDeadHTTP
	case errors.Is(err, domain.ErrTaskAlreadyCompleted):
		return http.StatusConflict, ErrMsgTaskCompletedHTTP
	case errors.Is(err, domain.ErrTaskInactive):
		return http.StatusConflict, ErrMsgTaskInactiveHTTP
	case errors.Is(err, domain.ErrNoFreezeCharges):
		return http.StatusConflict, ErrMsgNoFreezeChargesHTTP
	case errors.Is(err, domain.ErrDailyLimit{}):
		return http.StatusTooManyRequests, ErrMsgDailyLimitHTTP
	case errors.Is(err, domain.ErrInsufficientGold):
		return http.StatusBadRequest, ErrMsgNotEnoughGoldHTTP
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputHTTP
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
