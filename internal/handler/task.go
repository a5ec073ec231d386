package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lifequest/lifequest/internal/domain"
	"github.com/lifequest/lifequest/internal/task"
)

// TaskHandler bundles the task, streak, and outcome endpoints
type TaskHandler struct {
	service task.Service
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(service task.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	HeroID      string     `json:"hero_id" validate:"required,uuid"`
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Type        string     `json:"type" validate:"required,tasktype"`
	Difficulty  string     `json:"difficulty" validate:"required,taskdifficulty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents a partial task update
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Difficulty  *string    `json:"difficulty,omitempty" validate:"omitempty,taskdifficulty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// ShieldRequest represents the request to activate a streak shield
type ShieldRequest struct {
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// OutcomeResponse wraps an engine result with a human message
type OutcomeResponse struct {
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
}

// HandleCreate creates a new task for a hero
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body CreateTaskRequest true "Task to create"
// @Success 201 {object} domain.Task
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/tasks [post]
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create task"); err != nil {
		return
	}

	heroID, err := uuid.Parse(req.HeroID)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidIDParam)
		return
	}

	created, err := h.service.CreateTask(r.Context(), task.CreateTaskInput{
		HeroID:      heroID,
		Title:       req.Title,
		Description: req.Description,
		Type:        domain.TaskType(req.Type),
		Difficulty:  domain.TaskDifficulty(req.Difficulty),
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondServiceError(w, r, "Failed to create task", err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// HandleGet fetches a task by ID
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} domain.Task
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "id")
	if !ok {
		return
	}

	found, err := h.service.GetTask(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Failed to get task", err)
		return
	}

	respondJSON(w, http.StatusOK, found)
}

// HandleList lists a hero's active tasks
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param hero_id query string true "Hero ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/tasks [get]
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	raw, ok := GetQueryParam(r, w, "hero_id")
	if !ok {
		return
	}
	heroID, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidIDParam)
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), heroID)
	if err != nil {
		respondServiceError(w, r, "Failed to list tasks", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: tasks})
}

// HandleUpdate applies a partial update to a task
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} domain.Task
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tasks/{id} [patch]
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update task"); err != nil {
		return
	}

	input := task.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		IsActive:    req.IsActive,
	}
	if req.Difficulty != nil {
		difficulty := domain.TaskDifficulty(*req.Difficulty)
		input.Difficulty = &difficulty
	}

	updated, err := h.service.UpdateTask(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, r, "Failed to update task", err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// HandleDelete removes a task and its streak
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		respondServiceError(w, r, "Failed to delete task", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Task deleted"})
}

// HandleComplete applies the completion transition for a task
// @Summary Complete a task
// @Description Awards XP and gold, extends the habit streak, and resolves level-ups
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} OutcomeResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/v1/tasks/{id}/complete [post]
func (h *TaskHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "id")
	if !ok {
		return
	}

	result, err := h.service.CompleteTask(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Failed to complete task", err)
		return
	}

	message := "Task completed!"
	if result.LeveledUp {
		message = "Task completed - level up!"
	}
	respondJSON(w, http.StatusOK, OutcomeResponse{Message: message, Result: result})
}

// HandleFail applies the failure transition for a task
// @Summary Fail a task
// @Description Applies HP and gold penalties, breaks unprotected streaks, and handles death
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} OutcomeResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/tasks/{id}/fail [post]
func (h *TaskHandler) HandleFail(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "id")
	if !ok {
		return
	}

	result, err := h.service.FailTask(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Failed to fail task", err)
		return
	}

	message := "Task failed"
	if result.HeroDied {
		message = "Task failed - your hero has died"
	}
	respondJSON(w, http.StatusOK, OutcomeResponse{Message: message, Result: result})
}

// HandleCheckOverdue sweeps a hero's overdue tasks
// @Summary Check overdue tasks
// @Description Fails every overdue task the hero owns; tasks due while dead are skipped
// @Tags tasks
// @Produce json
// @Param hero_id query string true "Hero ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/tasks/check-overdue [post]
func (h *TaskHandler) HandleCheckOverdue(w http.ResponseWriter, r *http.Request) {
	raw, ok := GetQueryParam(r, w, "hero_id")
	if !ok {
		return
	}
	heroID, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidIDParam)
		return
	}

	outcomes, err := h.service.CheckOverdueTasks(r.Context(), heroID)
	if err != nil {
		respondServiceError(w, r, "Failed to check overdue tasks", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: outcomes})
}

// HandleGetStreak returns the streak attached to a habit task
// @Summary Get a task's streak
// @Tags streaks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} domain.Streak
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tasks/{id}/streak [get]
func (h *TaskHandler) HandleGetStreak(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "id")
	if !ok {
		return
	}

	streak, err := h.service.GetStreak(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Failed to get streak", err)
		return
	}

	respondJSON(w, http.StatusOK, streak)
}

// HandleListStreaks lists every streak owned by a hero
// @Summary List a hero's streaks
// @Tags streaks
// @Produce json
// @Param hero_id query string true "Hero ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/streaks [get]
func (h *TaskHandler) HandleListStreaks(w http.ResponseWriter, r *http.Request) {
	raw, ok := GetQueryParam(r, w, "hero_id")
	if !ok {
		return
	}
	heroID, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidIDParam)
		return
	}

	streaks, err := h.service.ListStreaks(r.Context(), heroID)
	if err != nil {
		respondServiceError(w, r, "Failed to list streaks", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: streaks})
}

// HandlePurchaseFreeze buys a freeze charge with the hero's gold
// @Summary Purchase a streak freeze charge
// @Tags streaks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} domain.Streak
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tasks/{id}/streak/freeze/purchase [post]
func (h *TaskHandler) HandlePurchaseFreeze(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "id")
	if !ok {
		return
	}

	streak, err := h.service.PurchaseFreezeCharge(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Failed to purchase freeze charge", err)
		return
	}

	respondJSON(w, http.StatusOK, streak)
}

// HandleUseFreeze spends a freeze charge, opening a 24h freeze window
// @Summary Use a streak freeze
// @Tags streaks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} domain.Streak
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/tasks/{id}/streak/freeze [post]
func (h *TaskHandler) HandleUseFreeze(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "id")
	if !ok {
		return
	}

	streak, err := h.service.UseStreakFreeze(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Failed to use streak freeze", err)
		return
	}

	respondJSON(w, http.StatusOK, streak)
}

// HandleActivateShield turns on streak breakage protection
// @Summary Activate a streak shield
// @Tags streaks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ShieldRequest true "Shield expiry (omit for indefinite)"
// @Success 200 {object} domain.Streak
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tasks/{id}/streak/shield [post]
func (h *TaskHandler) HandleActivateShield(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "id")
	if !ok {
		return
	}

	var req ShieldRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Activate streak shield"); err != nil {
		return
	}

	streak, err := h.service.ActivateStreakShield(r.Context(), id, req.ExpiresAt)
	if err != nil {
		respondServiceError(w, r, "Failed to activate streak shield", err)
		return
	}

	respondJSON(w, http.StatusOK, streak)
}
