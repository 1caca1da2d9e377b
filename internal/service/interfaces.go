package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/vitaplan/backend/internal/models"
	"github.com/vitaplan/backend/internal/types"
)

// LLMServiceInterface defines the AI orchestration operations
type LLMServiceInterface interface {
	GenerateMealPlan(ctx context.Context, cmd *types.GenerateMealPlanCommand) (*types.GeneratedMealPlan, error)
	RegenerateMeal(ctx context.Context, cmd *types.RegenerateMealCommand) (*types.GeneratedMeal, error)
	AggregateShoppingList(ctx context.Context, meals []models.Meal) (types.ShoppingListContent, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IMealPlanService defines the interface for meal plan persistence
type IMealPlanService interface {
	CreateMealPlan(ctx context.Context, ownerID uuid.UUID, cmd *types.CreateMealPlanCommand) (*models.MealPlan, error)
	ListMealPlans(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (*MealPlanList, error)
	GetMealPlanDetails(ctx context.Context, ownerID, planID uuid.UUID) (*MealPlanDetails, error)
	DeleteMealPlan(ctx context.Context, ownerID, planID uuid.UUID) error
}

// IShoppingListService defines the interface for shopping list generation
type IShoppingListService interface {
	GenerateShoppingList(ctx context.Context, ownerID, planID uuid.UUID) (*models.ShoppingList, error)
}

// IDraftService defines the interface for unsaved plan drafts
type IDraftService interface {
	SaveDraft(ctx context.Context, ownerID uuid.UUID, draft *PlanDraft) error
	GetDraft(ctx context.Context, ownerID uuid.UUID, draftID string) (*PlanDraft, error)
	DeleteDraft(ctx context.Context, ownerID uuid.UUID, draftID string) error
}
