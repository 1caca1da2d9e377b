package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaplan/backend/internal/models"
)

func TestCreateMealPlanPersistsPlanAndMeals(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	svc := NewMealPlanService(db, nopLogger())

	plan, err := svc.CreateMealPlan(context.Background(), user.ID, testCreateCommand())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, plan.ID)
	assert.Equal(t, user.ID, plan.UserID)

	var meals []models.Meal
	require.NoError(t, db.Where("plan_id = ?", plan.ID).Find(&meals).Error)
	assert.Len(t, meals, 4)
}

func TestListMealPlansPaginates(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	svc := NewMealPlanService(db, nopLogger())

	for i := 0; i < 15; i++ {
		_, err := svc.CreateMealPlan(context.Background(), user.ID, testCreateCommand())
		require.NoError(t, err)
	}

	page1, err := svc.ListMealPlans(context.Background(), user.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page1.Data, 10)
	assert.Equal(t, 2, page1.Pagination.TotalPages)

	page2, err := svc.ListMealPlans(context.Background(), user.ID, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page2.Data, 5)
	assert.Equal(t, 2, page2.Pagination.CurrentPage)
}

func TestListMealPlansEmptyPageIsNotAnError(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	svc := NewMealPlanService(db, nopLogger())

	list, err := svc.ListMealPlans(context.Background(), user.ID, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, list.Data)
	assert.Equal(t, 0, list.Pagination.TotalPages)
}

func TestGetMealPlanDetailsOrdersMeals(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	svc := NewMealPlanService(db, nopLogger())

	plan, err := svc.CreateMealPlan(context.Background(), user.ID, testCreateCommand())
	require.NoError(t, err)

	details, err := svc.GetMealPlanDetails(context.Background(), user.ID, plan.ID)
	require.NoError(t, err)
	require.Len(t, details.Meals, 4)

	for i := 1; i < len(details.Meals); i++ {
		prev, cur := details.Meals[i-1], details.Meals[i]
		if prev.Day == cur.Day {
			assert.LessOrEqual(t, prev.Type, cur.Type)
		} else {
			assert.Less(t, prev.Day, cur.Day)
		}
	}
	assert.Nil(t, details.ShoppingList)
}

func TestGetMealPlanDetailsWrongOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db)
	other := createTestUser(t, db)
	svc := NewMealPlanService(db, nopLogger())

	plan, err := svc.CreateMealPlan(context.Background(), owner.ID, testCreateCommand())
	require.NoError(t, err)

	_, err = svc.GetMealPlanDetails(context.Background(), other.ID, plan.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestDeleteMealPlanRemovesDependents(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	svc := NewMealPlanService(db, nopLogger())

	plan, err := svc.CreateMealPlan(context.Background(), user.ID, testCreateCommand())
	require.NoError(t, err)

	list := models.ShoppingList{
		PlanID:      plan.ID,
		ListContent: models.ListContentJSON{"Inne": {{Item: "sól", Quantity: "1 op."}}},
	}
	require.NoError(t, db.Create(&list).Error)

	require.NoError(t, svc.DeleteMealPlan(context.Background(), user.ID, plan.ID))

	var planCount, mealCount, listCount int64
	require.NoError(t, db.Model(&models.MealPlan{}).Where("id = ?", plan.ID).Count(&planCount).Error)
	require.NoError(t, db.Model(&models.Meal{}).Where("plan_id = ?", plan.ID).Count(&mealCount).Error)
	require.NoError(t, db.Model(&models.ShoppingList{}).Where("plan_id = ?", plan.ID).Count(&listCount).Error)
	assert.EqualValues(t, 0, planCount)
	assert.EqualValues(t, 0, mealCount)
	assert.EqualValues(t, 0, listCount)
}

func TestDeleteMealPlanWrongOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db)
	other := createTestUser(t, db)
	svc := NewMealPlanService(db, nopLogger())

	plan, err := svc.CreateMealPlan(context.Background(), owner.ID, testCreateCommand())
	require.NoError(t, err)

	err = svc.DeleteMealPlan(context.Background(), other.ID, plan.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	var count int64
	require.NoError(t, db.Model(&models.MealPlan{}).Where("id = ?", plan.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteMealPlanMissing(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	svc := NewMealPlanService(db, nopLogger())

	err := svc.DeleteMealPlan(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrPlanNotFound)
}
