package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vitaplan/backend/internal/database"
	"github.com/vitaplan/backend/internal/models"
	"github.com/vitaplan/backend/internal/service"
	"github.com/vitaplan/backend/internal/types"
	"github.com/vitaplan/backend/pkg/logger"
)

// These tests need Docker. They run the same service flows as the unit
// tests, but against real PostgreSQL and Redis.
func skipUnlessIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TESTS") != "true" {
		t.Skip("set INTEGRATION_TESTS=true to run integration tests")
	}
}

func setupPostgres(t *testing.T) *gorm.DB {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "testuser",
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=testuser password=testpass dbname=testdb sslmode=disable",
		host, port.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func setupRedis(t *testing.T) *redis.Client {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate redis container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestMealPlanFlowOnPostgres(t *testing.T) {
	skipUnlessIntegration(t)

	db := setupPostgres(t)
	ctx := context.Background()

	authSvc := service.NewAuthService(db, "integration-secret")
	planSvc := service.NewMealPlanService(db, logger.NewNop())

	_, err := authSvc.Register(ctx, "Anna", "anna@example.com", "supersecret1")
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "anna@example.com").Error)

	cmd := &types.CreateMealPlanCommand{
		PlanInput: types.GenerateMealPlanCommand{
			PeopleCount: 2,
			DaysCount:   1,
			Cuisine:     "Polska",
			MealsToPlan: []string{"obiad"},
		},
		Meals: []types.CreateMealCommand{
			{
				Day:  1,
				Type: "obiad",
				RecipeData: types.Recipe{
					Name:         "Kotlet schabowy",
					Ingredients:  []types.Ingredient{{Item: "schab", Quantity: "500 g"}},
					Instructions: []string{"Usmaż kotlety."},
					Portions:     []types.Portion{{Person: 1, Grams: 350}, {Person: 2, Grams: 350}},
				},
			},
		},
	}

	plan, err := planSvc.CreateMealPlan(ctx, user.ID, cmd)
	require.NoError(t, err)

	details, err := planSvc.GetMealPlanDetails(ctx, user.ID, plan.ID)
	require.NoError(t, err)
	require.Len(t, details.Meals, 1)
	assert.Equal(t, "Kotlet schabowy", details.Meals[0].RecipeData.Name)
	assert.Equal(t, "Polska", details.PlanInput.Cuisine)

	// Delete cascades through meals at the store level.
	require.NoError(t, planSvc.DeleteMealPlan(ctx, user.ID, plan.ID))

	var mealCount int64
	require.NoError(t, db.Model(&models.Meal{}).Where("plan_id = ?", plan.ID).Count(&mealCount).Error)
	assert.EqualValues(t, 0, mealCount)
}

func TestShoppingListUniqueConstraintOnPostgres(t *testing.T) {
	skipUnlessIntegration(t)

	db := setupPostgres(t)
	ctx := context.Background()

	planSvc := service.NewMealPlanService(db, logger.NewNop())

	user := models.User{Name: "Jan", Email: "jan@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	plan, err := planSvc.CreateMealPlan(ctx, user.ID, &types.CreateMealPlanCommand{
		PlanInput: types.GenerateMealPlanCommand{PeopleCount: 1, DaysCount: 1, Cuisine: "Polska", MealsToPlan: []string{"obiad"}},
		Meals: []types.CreateMealCommand{
			{
				Day:  1,
				Type: "obiad",
				RecipeData: types.Recipe{
					Name:         "Żurek",
					Ingredients:  []types.Ingredient{{Item: "zakwas", Quantity: "500 ml"}},
					Instructions: []string{"Ugotuj."},
					Portions:     []types.Portion{{Person: 1, Grams: 400}},
				},
			},
		},
	})
	require.NoError(t, err)

	first := models.ShoppingList{
		PlanID:      plan.ID,
		ListContent: models.ListContentJSON{"Inne": {{Item: "zakwas", Quantity: "500 ml"}}},
	}
	require.NoError(t, db.Create(&first).Error)

	second := models.ShoppingList{
		PlanID:      plan.ID,
		ListContent: models.ListContentJSON{"Inne": {{Item: "zakwas", Quantity: "1 l"}}},
	}
	err = db.Create(&second).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestDraftLifecycleOnRedis(t *testing.T) {
	skipUnlessIntegration(t)

	client := setupRedis(t)
	ctx := context.Background()

	svc := service.NewDraftService(client)
	ownerID := uuid.New()

	draft := &service.PlanDraft{
		PlanInput: types.GenerateMealPlanCommand{PeopleCount: 1, DaysCount: 1, Cuisine: "Polska", MealsToPlan: []string{"obiad"}},
		Plan: types.GeneratedPlan{
			Days: []types.PlanDay{{Day: 1, Meals: []types.PlanMeal{{Type: "obiad", Recipe: types.Recipe{Name: "Bigos"}}}}},
		},
	}

	require.NoError(t, svc.SaveDraft(ctx, ownerID, draft))
	require.NotEmpty(t, draft.ID)

	// Drafts expire after 24h.
	ttl, err := client.TTL(ctx, fmt.Sprintf("mealplan:draft:%s:%s", ownerID, draft.ID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 23*time.Hour)
	assert.LessOrEqual(t, ttl, 24*time.Hour)

	loaded, err := svc.GetDraft(ctx, ownerID, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bigos", loaded.Plan.Days[0].Meals[0].Recipe.Name)

	// Drafts are owner-scoped keys.
	_, err = svc.GetDraft(ctx, uuid.New(), draft.ID)
	assert.ErrorIs(t, err, service.ErrDraftNotFound)

	require.NoError(t, svc.DeleteDraft(ctx, ownerID, draft.ID))
	_, err = svc.GetDraft(ctx, ownerID, draft.ID)
	assert.ErrorIs(t, err, service.ErrDraftNotFound)
}
