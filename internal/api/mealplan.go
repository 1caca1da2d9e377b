package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vitaplan/backend/internal/service"
	"github.com/vitaplan/backend/internal/types"
	"github.com/vitaplan/backend/pkg/logger"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// MealPlanHandler serves owner-scoped meal plan persistence.
type MealPlanHandler struct {
	mealPlanService service.IMealPlanService
	log             *logger.Logger
}

func NewMealPlanHandler(mealPlanService service.IMealPlanService, log *logger.Logger) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: mealPlanService, log: log}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	{
		plans.POST("", h.Create)
		plans.GET("", h.List)
		plans.GET("/:id", h.Get)
		plans.DELETE("/:id", h.Delete)
	}
}

// Create persists a generated plan with its meals in one transaction.
func (h *MealPlanHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var cmd types.CreateMealPlanCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.mealPlanService.CreateMealPlan(c.Request.Context(), userID, &cmd)
	if err != nil {
		h.log.Errorw("failed to create meal plan", "error", err, "user_id", userID)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// List returns the user's plans, newest first.
func (h *MealPlanHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	list, err := h.mealPlanService.ListMealPlans(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.log.Errorw("failed to list meal plans", "error", err, "user_id", userID)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get returns a single plan with its meals and shopping list, if any.
func (h *MealPlanHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID format"})
		return
	}

	details, err := h.mealPlanService.GetMealPlanDetails(c.Request.Context(), userID, planID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// Delete removes a plan along with its meals and shopping list.
func (h *MealPlanHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID format"})
		return
	}

	if err := h.mealPlanService.DeleteMealPlan(c.Request.Context(), userID, planID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
