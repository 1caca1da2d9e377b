package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitaplan/backend/internal/models"
	"github.com/vitaplan/backend/pkg/logger"
)

// ShoppingListService generates and persists one shopping list per plan.
type ShoppingListService struct {
	db  *gorm.DB
	llm LLMServiceInterface
	log *logger.Logger
}

func NewShoppingListService(db *gorm.DB, llm LLMServiceInterface, log *logger.Logger) *ShoppingListService {
	return &ShoppingListService{db: db, llm: llm, log: log}
}

// GenerateShoppingList checks its preconditions in order: the plan must be
// owned by the caller, must not have a list yet, and must have at least one
// meal. The unique index on plan_id backs the existence pre-check, so two
// concurrent calls cannot both insert.
func (s *ShoppingListService) GenerateShoppingList(ctx context.Context, ownerID, planID uuid.UUID) (*models.ShoppingList, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", planID, ownerID).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		s.log.Errorw("failed to check meal plan", "plan_id", planID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var existing models.ShoppingList
	err = s.db.WithContext(ctx).Where("plan_id = ?", planID).First(&existing).Error
	if err == nil {
		return nil, ErrShoppingListExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Errorw("failed to check existing shopping list", "plan_id", planID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var meals []models.Meal
	if err := s.db.WithContext(ctx).Where("plan_id = ?", planID).Find(&meals).Error; err != nil {
		s.log.Errorw("failed to get meals", "plan_id", planID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if len(meals) == 0 {
		return nil, ErrEmptyPlan
	}

	content, err := s.llm.AggregateShoppingList(ctx, meals)
	if err != nil {
		return nil, err
	}

	list := models.ShoppingList{
		PlanID:      planID,
		ListContent: models.ListContentJSON(content),
	}

	if err := s.db.WithContext(ctx).Create(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent request.
			return nil, ErrShoppingListExists
		}
		s.log.Errorw("failed to save shopping list", "plan_id", planID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &list, nil
}
