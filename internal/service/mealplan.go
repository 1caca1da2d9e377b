package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitaplan/backend/internal/models"
	"github.com/vitaplan/backend/internal/types"
	"github.com/vitaplan/backend/pkg/logger"
)

// MealPlanListItem is the trimmed plan view returned by list queries.
type MealPlanListItem struct {
	ID        uuid.UUID            `json:"id"`
	CreatedAt string               `json:"created_at"`
	PlanInput models.PlanInputJSON `json:"plan_input"`
}

// MealPlanList is one page of a user's saved plans.
type MealPlanList struct {
	Data       []MealPlanListItem `json:"data"`
	Pagination types.Pagination   `json:"pagination"`
}

// MealPlanDetails joins a plan with its meals and optional shopping list.
type MealPlanDetails struct {
	models.MealPlan
	Meals        []models.Meal        `json:"meals"`
	ShoppingList *models.ShoppingList `json:"shoppingList"`
}

// MealPlanService handles meal plan persistence, always scoped by owner.
type MealPlanService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMealPlanService(db *gorm.DB, log *logger.Logger) *MealPlanService {
	return &MealPlanService{db: db, log: log}
}

// CreateMealPlan inserts the plan and all its meals in one transaction, so a
// failed meal insert leaves no orphaned plan row behind.
func (s *MealPlanService) CreateMealPlan(ctx context.Context, ownerID uuid.UUID, cmd *types.CreateMealPlanCommand) (*models.MealPlan, error) {
	plan := models.MealPlan{
		UserID:    ownerID,
		PlanInput: models.PlanInputJSON(cmd.PlanInput),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}

		meals := make([]models.Meal, 0, len(cmd.Meals))
		for _, m := range cmd.Meals {
			meals = append(meals, models.Meal{
				PlanID:     plan.ID,
				Day:        m.Day,
				Type:       m.Type,
				RecipeData: models.RecipeJSON(m.RecipeData),
			})
		}

		return tx.Create(&meals).Error
	})
	if err != nil {
		s.log.Errorw("failed to create meal plan", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &plan, nil
}

// ListMealPlans returns one page of the owner's plans, newest first.
func (s *MealPlanService) ListMealPlans(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (*MealPlanList, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.MealPlan{}).Where("user_id = ?", ownerID).Count(&count).Error; err != nil {
		s.log.Errorw("failed to count meal plans", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var plans []models.MealPlan
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&plans).Error
	if err != nil {
		s.log.Errorw("failed to list meal plans", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	items := make([]MealPlanListItem, 0, len(plans))
	for _, p := range plans {
		items = append(items, MealPlanListItem{
			ID:        p.ID,
			CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			PlanInput: p.PlanInput,
		})
	}

	totalPages := int((count + int64(pageSize) - 1) / int64(pageSize))

	return &MealPlanList{
		Data: items,
		Pagination: types.Pagination{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalPages:  totalPages,
		},
	}, nil
}

// GetMealPlanDetails loads a plan with its meals ordered by day then type,
// plus the shopping list when one exists. Plans owned by other users report
// ErrPlanNotFound, never an authorization error.
func (s *MealPlanService) GetMealPlanDetails(ctx context.Context, ownerID, planID uuid.UUID) (*MealPlanDetails, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", planID, ownerID).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		s.log.Errorw("failed to get meal plan", "plan_id", planID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var meals []models.Meal
	err = s.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("day ASC").
		Order("type ASC").
		Find(&meals).Error
	if err != nil {
		s.log.Errorw("failed to get meals", "plan_id", planID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Shopping list is optional; a missing row is not an error.
	var shoppingList *models.ShoppingList
	var list models.ShoppingList
	err = s.db.WithContext(ctx).Where("plan_id = ?", planID).First(&list).Error
	if err == nil {
		shoppingList = &list
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Warnw("failed to get shopping list", "plan_id", planID, "error", err)
	}

	return &MealPlanDetails{
		MealPlan:     plan,
		Meals:        meals,
		ShoppingList: shoppingList,
	}, nil
}

// DeleteMealPlan removes a plan; meals and the shopping list go with it via
// the store's cascade.
func (s *MealPlanService) DeleteMealPlan(ctx context.Context, ownerID, planID uuid.UUID) error {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", planID, ownerID).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		s.log.Errorw("failed to check meal plan", "plan_id", planID, "error", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Delete(&models.MealPlan{}, "id = ?", planID).Error; err != nil {
		s.log.Errorw("failed to delete meal plan", "plan_id", planID, "error", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return nil
}
