package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vitaplan/backend/internal/models"
	"github.com/vitaplan/backend/internal/types"
	"github.com/vitaplan/backend/pkg/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.MealPlan{},
		&models.Meal{},
		&models.ShoppingList{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	user := models.User{
		Name:         "Test User",
		Email:        fmt.Sprintf("user+%s@example.com", uuid.New().String()),
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func testRecipe(name string) types.Recipe {
	return types.Recipe{
		Name: name,
		Ingredients: []types.Ingredient{
			{Item: "ziemniaki", Quantity: "500 g"},
		},
		Instructions: []string{"Ugotuj."},
		Portions:     []types.Portion{{Person: 1, Grams: 350}},
	}
}

func testCreateCommand() *types.CreateMealPlanCommand {
	return &types.CreateMealPlanCommand{
		PlanInput: types.GenerateMealPlanCommand{
			PeopleCount: 1,
			DaysCount:   2,
			Cuisine:     "Polska",
			MealsToPlan: []string{"śniadanie", "obiad"},
		},
		Meals: []types.CreateMealCommand{
			{Day: 1, Type: "śniadanie", RecipeData: testRecipe("Owsianka")},
			{Day: 1, Type: "obiad", RecipeData: testRecipe("Żurek")},
			{Day: 2, Type: "śniadanie", RecipeData: testRecipe("Jajecznica")},
			{Day: 2, Type: "obiad", RecipeData: testRecipe("Bigos")},
		},
	}
}

// stubLLM satisfies LLMServiceInterface without any HTTP traffic.
type stubLLM struct {
	shoppingList types.ShoppingListContent
	err          error
}

func (s *stubLLM) GenerateMealPlan(ctx context.Context, cmd *types.GenerateMealPlanCommand) (*types.GeneratedMealPlan, error) {
	return nil, s.err
}

func (s *stubLLM) RegenerateMeal(ctx context.Context, cmd *types.RegenerateMealCommand) (*types.GeneratedMeal, error) {
	return nil, s.err
}

func (s *stubLLM) AggregateShoppingList(ctx context.Context, meals []models.Meal) (types.ShoppingListContent, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.shoppingList != nil {
		return s.shoppingList, nil
	}
	return types.ShoppingListContent{
		"Warzywa": {{Item: "ziemniaki", Quantity: "2 kg"}},
	}, nil
}

func nopLogger() *logger.Logger {
	return logger.NewNop()
}
