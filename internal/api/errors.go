package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vitaplan/backend/internal/service"
)

// respondServiceError maps service errors to status codes. Upstream and
// persistence failures collapse to a generic 500; the detail only reaches
// the server log.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
	case errors.Is(err, service.ErrShoppingListExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Shopping list already exists for this plan"})
	case errors.Is(err, service.ErrEmptyPlan):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No meals found for this plan"})
	case errors.Is(err, service.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUserID extracts the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := userIDVal.(uuid.UUID)
	return userID, ok
}
