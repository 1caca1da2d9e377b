package api

import (
	"context"
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vitaplan/backend/internal/middleware"
	"github.com/vitaplan/backend/internal/models"
	"github.com/vitaplan/backend/internal/service"
	"github.com/vitaplan/backend/internal/types"
	"github.com/vitaplan/backend/pkg/logger"
)

// TestDB holds test database and services
type TestDB struct {
	DB          *gorm.DB
	AuthService *service.AuthService
}

// SetupTestDB creates an in-memory SQLite database with the full schema.
// Shared cache keeps the database alive across GORM's pooled connections.
func SetupTestDB(t *testing.T) *TestDB {
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

	authService := service.NewAuthService(db, "test-secret")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &TestDB{
		DB:          db,
		AuthService: authService,
	}
}

// CreateTestUserAndToken creates a test user and returns their ID and a valid JWT token
func CreateTestUserAndToken(t *testing.T, db *TestDB) (uuid.UUID, string) {
	password := "testpassword123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        fmt.Sprintf("testuser+%s@example.com", uuid.New().String()),
		PasswordHash: string(hashedPassword),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	token, err := db.AuthService.GenerateToken(&types.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return user.ID, token
}

// MockLLMService replaces the AI client in handler tests. Each method can be
// overridden per test; the defaults return a minimal valid plan.
type MockLLMService struct {
	GenerateMealPlanFunc      func(ctx context.Context, cmd *types.GenerateMealPlanCommand) (*types.GeneratedMealPlan, error)
	RegenerateMealFunc        func(ctx context.Context, cmd *types.RegenerateMealCommand) (*types.GeneratedMeal, error)
	AggregateShoppingListFunc func(ctx context.Context, meals []models.Meal) (types.ShoppingListContent, error)
}

func (m *MockLLMService) GenerateMealPlan(ctx context.Context, cmd *types.GenerateMealPlanCommand) (*types.GeneratedMealPlan, error) {
	if m.GenerateMealPlanFunc != nil {
		return m.GenerateMealPlanFunc(ctx, cmd)
	}
	plan := types.GeneratedPlan{}
	for day := 1; day <= cmd.DaysCount; day++ {
		meals := make([]types.PlanMeal, 0, len(cmd.MealsToPlan))
		for _, mealType := range cmd.MealsToPlan {
			meals = append(meals, types.PlanMeal{
				Type:   mealType,
				Recipe: TestRecipe(fmt.Sprintf("%s dnia %d", mealType, day), cmd.PeopleCount),
			})
		}
		plan.Days = append(plan.Days, types.PlanDay{Day: day, Meals: meals})
	}
	return &types.GeneratedMealPlan{Plan: plan}, nil
}

func (m *MockLLMService) RegenerateMeal(ctx context.Context, cmd *types.RegenerateMealCommand) (*types.GeneratedMeal, error) {
	if m.RegenerateMealFunc != nil {
		return m.RegenerateMealFunc(ctx, cmd)
	}
	return &types.GeneratedMeal{
		Day:    cmd.MealToRegenerate.Day,
		Type:   cmd.MealToRegenerate.Type,
		Recipe: TestRecipe("Nowy przepis", cmd.PlanInput.PeopleCount),
	}, nil
}

func (m *MockLLMService) AggregateShoppingList(ctx context.Context, meals []models.Meal) (types.ShoppingListContent, error) {
	if m.AggregateShoppingListFunc != nil {
		return m.AggregateShoppingListFunc(ctx, meals)
	}
	return types.ShoppingListContent{
		"Warzywa": {{Item: "ziemniaki", Quantity: "1 kg"}},
	}, nil
}

// TestRecipe builds a valid recipe for the given number of people.
func TestRecipe(name string, peopleCount int) types.Recipe {
	portions := make([]types.Portion, 0, peopleCount)
	for p := 1; p <= peopleCount; p++ {
		portions = append(portions, types.Portion{Person: p, Grams: 350})
	}
	return types.Recipe{
		Name: name,
		Ingredients: []types.Ingredient{
			{Item: "ziemniaki", Quantity: "500 g"},
			{Item: "cebula", Quantity: "1 szt."},
		},
		Instructions: []string{"Obierz ziemniaki.", "Ugotuj do miękkości."},
		Portions:     portions,
	}
}

// SetupTestRouter wires a router with real services over the test database
// and the given mock LLM. Redis is absent, so drafts and rate limits are off.
func SetupTestRouter(t *testing.T, testDB *TestDB, llm service.LLMServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	RegisterRoutes(router, testDB.DB, nil, testDB.AuthService, llm, logger.NewNop())

	return router
}
