package handler

import (
	"net/http"

	"github.com/lifequest/lifequest/internal/hero"
	"github.com/lifequest/lifequest/internal/logger"
)

// HeroHandler bundles the hero endpoints around the hero service
type HeroHandler struct {
	service hero.Service
}

// NewHeroHandler creates a new HeroHandler
func NewHeroHandler(service hero.Service) *HeroHandler {
	return &HeroHandler{service: service}
}

// CreateHeroRequest represents the request to create a hero
type CreateHeroRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// HandleCreate creates a new hero
// @Summary Create a hero
// @Description Creates a level-1 hero with starting gold and a fresh economy ledger
// @Tags heroes
// @Accept json
// @Produce json
// @Param request body CreateHeroRequest true "Hero to create"
// @Success 201 {object} domain.Hero
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/heroes [post]
func (h *HeroHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateHeroRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create hero"); err != nil {
		return
	}

	created, err := h.service.CreateHero(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, r, "Failed to create hero", err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// HandleGet fetches a hero by ID
// @Summary Get a hero
// @Tags heroes
// @Produce json
// @Param id path string true "Hero ID"
// @Success 200 {object} domain.Hero
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/heroes/{id} [get]
func (h *HeroHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "id")
	if !ok {
		return
	}

	found, err := h.service.GetHero(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Failed to get hero", err)
		return
	}

	respondJSON(w, http.StatusOK, found)
}

// HandleList lists all heroes
// @Summary List heroes
// @Tags heroes
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/heroes [get]
func (h *HeroHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	heroes, err := h.service.ListHeroes(r.Context())
	if err != nil {
		respondServiceError(w, r, "Failed to list heroes", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: heroes})
}

// HandleSummary returns the hero read model with derived progress fields
// @Summary Get hero summary
// @Description Hero state plus derived fields: XP required for next level, recovery status
// @Tags heroes
// @Produce json
// @Param id path string true "Hero ID"
// @Success 200 {object} hero.Summary
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/heroes/{id}/summary [get]
func (h *HeroHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "id")
	if !ok {
		return
	}

	summary, err := h.service.GetHeroSummary(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Failed to get hero summary", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// RespawnResponse represents the response to a successful respawn
type RespawnResponse struct {
	Message string      `json:"message"`
	Hero    interface{} `json:"hero"`
}

// HandleRespawn revives a dead hero
// @Summary Respawn a hero
// @Description Revives a dead hero and starts the recovery debuff window
// @Tags heroes
// @Produce json
// @Param id path string true "Hero ID"
// @Success 200 {object} RespawnResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/heroes/{id}/respawn [post]
func (h *HeroHandler) HandleRespawn(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "id")
	if !ok {
		return
	}

	revived, err := h.service.RespawnHero(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Failed to respawn hero", err)
		return
	}

	logger.FromContext(r.Context()).Info("Hero respawned via API", "hero_id", id)
	respondJSON(w, http.StatusOK, RespawnResponse{
		Message: "Hero respawned. Rewards are reduced while recovering.",
		Hero:    revived,
	})
}

// HandleDelete removes a hero and everything attached to it
// @Summary Delete a hero
// @Tags heroes
// @Produce json
// @Param id path string true "Hero ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/heroes/{id} [delete]
func (h *HeroHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteHero(r.Context(), id); err != nil {
		respondServiceError(w, r, "Failed to delete hero", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Hero deleted"})
}
