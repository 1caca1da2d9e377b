package database

import (
	"gorm.io/gorm"

	"github.com/vitaplan/backend/internal/models"
)

// RunMigrations brings the schema up to date for all persisted entities.
// The shopping list unique index on plan_id and the cascade constraints on
// meals and shopping lists are part of the model definitions.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MealPlan{},
		&models.Meal{},
		&models.ShoppingList{},
	)
}
