package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vitaplan/backend/internal/middleware"
	"github.com/vitaplan/backend/internal/service"
	"github.com/vitaplan/backend/pkg/logger"
)

// ShoppingListHandler serves AI shopping list generation for saved plans.
type ShoppingListHandler struct {
	shoppingListService service.IShoppingListService
	limiter             *middleware.RateLimiter
	log                 *logger.Logger
}

func NewShoppingListHandler(
	shoppingListService service.IShoppingListService,
	limiter *middleware.RateLimiter,
	log *logger.Logger,
) *ShoppingListHandler {
	return &ShoppingListHandler{
		shoppingListService: shoppingListService,
		limiter:             limiter,
		log:                 log,
	}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/meal-plans/:id/shopping-list", rateLimit(h.limiter), h.Generate)
}

// Generate aggregates the plan's meal ingredients into a categorized
// shopping list. A plan only ever gets one list.
func (h *ShoppingListHandler) Generate(c *gin.Context) {
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

	list, err := h.shoppingListService.GenerateShoppingList(c.Request.Context(), userID, planID)
	if err != nil {
		h.log.Errorw("failed to generate shopping list", "error", err,
			"user_id", userID, "plan_id", planID)
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, list)
}
