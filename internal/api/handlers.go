package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vitaplan/backend/internal/database"
	"github.com/vitaplan/backend/internal/middleware"
	"github.com/vitaplan/backend/internal/service"
	"github.com/vitaplan/backend/pkg/logger"
)

// HealthCheck reports database reachability.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// RegisterRoutes wires up all API routes. The Redis client may be nil, in
// which case drafts are disabled and rate limits are not enforced.
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	redisClient *redis.Client,
	authService service.IAuthService,
	llmService service.LLMServiceInterface,
	log *logger.Logger,
) {
	router.GET("/health", HealthCheck(db))

	mealPlanService := service.NewMealPlanService(db, log)
	shoppingListService := service.NewShoppingListService(db, llmService, log)

	var (
		draftService service.IDraftService
		genLimiter   *middleware.RateLimiter
		regenLimiter *middleware.RateLimiter
		listLimiter  *middleware.RateLimiter
	)
	if redisClient != nil {
		draftService = service.NewDraftService(redisClient)
		genLimiter = middleware.NewPlanGenerationRateLimiter(redisClient)
		regenLimiter = middleware.NewMealRegenerationRateLimiter(redisClient)
		listLimiter = middleware.NewShoppingListRateLimiter(redisClient)
	}

	public := router.Group("/api")
	NewAuthHandler(authService, log).RegisterRoutes(public)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		NewPlannerHandler(llmService, draftService, genLimiter, regenLimiter, log).RegisterRoutes(protected)
		NewMealPlanHandler(mealPlanService, log).RegisterRoutes(protected)
		NewShoppingListHandler(shoppingListService, listLimiter, log).RegisterRoutes(protected)
	}
}
