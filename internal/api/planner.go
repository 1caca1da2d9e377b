package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitaplan/backend/internal/middleware"
	"github.com/vitaplan/backend/internal/service"
	"github.com/vitaplan/backend/internal/types"
	"github.com/vitaplan/backend/pkg/logger"
)

// PlannerHandler serves AI plan generation, single-meal regeneration and the
// draft endpoints that park an unsaved plan between sessions.
type PlannerHandler struct {
	llmService   service.LLMServiceInterface
	draftService service.IDraftService
	genLimiter   *middleware.RateLimiter
	regenLimiter *middleware.RateLimiter
	log          *logger.Logger
}

func NewPlannerHandler(
	llmService service.LLMServiceInterface,
	draftService service.IDraftService,
	genLimiter *middleware.RateLimiter,
	regenLimiter *middleware.RateLimiter,
	log *logger.Logger,
) *PlannerHandler {
	return &PlannerHandler{
		llmService:   llmService,
		draftService: draftService,
		genLimiter:   genLimiter,
		regenLimiter: regenLimiter,
		log:          log,
	}
}

// rateLimit is a no-op when the limiter is nil (Redis unavailable).
func rateLimit(limiter *middleware.RateLimiter) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return limiter.RateLimitMiddleware()
}

func (h *PlannerHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/meal-plans/generate", rateLimit(h.genLimiter), h.Generate)
	router.POST("/meals/regenerate", rateLimit(h.regenLimiter), h.Regenerate)

	if h.draftService != nil {
		drafts := router.Group("/meal-plans/drafts")
		{
			drafts.POST("", h.SaveDraft)
			drafts.GET("/:draftId", h.GetDraft)
			drafts.DELETE("/:draftId", h.DeleteDraft)
		}
	}
}

// Generate creates a full meal plan from the user's constraints. The result
// is transient; nothing is persisted until the client saves it.
func (h *PlannerHandler) Generate(c *gin.Context) {
	var cmd types.GenerateMealPlanCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.llmService.GenerateMealPlan(c.Request.Context(), &cmd)
	if err != nil {
		h.log.Errorw("meal plan generation failed", "error", err)
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// Regenerate replaces a single meal of an unsaved plan, keeping the rest of
// the day's meals as context so the AI avoids repeating them.
func (h *PlannerHandler) Regenerate(c *gin.Context) {
	var cmd types.RegenerateMealCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.llmService.RegenerateMeal(c.Request.Context(), &cmd)
	if err != nil {
		h.log.Errorw("meal regeneration failed", "error", err,
			"day", cmd.MealToRegenerate.Day, "type", cmd.MealToRegenerate.Type)
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, meal)
}

// respondUpstreamError hides AI provider failures behind a stable message.
// The failure kind is only visible in the server log.
func respondUpstreamError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUpstreamSchema) || errors.Is(err, service.ErrUpstream) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate meal plan"})
		return
	}
	respondServiceError(c, err)
}

type saveDraftRequest struct {
	PlanInput types.GenerateMealPlanCommand `json:"planInput" binding:"required"`
	Plan      types.GeneratedPlan           `json:"plan" binding:"required"`
}

func (h *PlannerHandler) SaveDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req saveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := &service.PlanDraft{
		PlanInput: req.PlanInput,
		Plan:      req.Plan,
	}
	if err := h.draftService.SaveDraft(c.Request.Context(), userID, draft); err != nil {
		h.log.Errorw("failed to save draft", "error", err, "user_id", userID)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, draft)
}

func (h *PlannerHandler) GetDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	draft, err := h.draftService.GetDraft(c.Request.Context(), userID, c.Param("draftId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *PlannerHandler) DeleteDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.draftService.DeleteDraft(c.Request.Context(), userID, c.Param("draftId")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
