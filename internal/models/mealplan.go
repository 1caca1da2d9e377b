package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitaplan/backend/internal/types"
)

// PlanInputJSON stores the original generation request as opaque JSONB.
type PlanInputJSON types.GenerateMealPlanCommand

// Value implements the driver.Valuer interface
func (p PlanInputJSON) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface
func (p *PlanInputJSON) Scan(value interface{}) error {
	if value == nil {
		*p = PlanInputJSON{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// RecipeJSON stores a full recipe as opaque JSONB.
type RecipeJSON types.Recipe

// Value implements the driver.Valuer interface
func (r RecipeJSON) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements the sql.Scanner interface
func (r *RecipeJSON) Scan(value interface{}) error {
	if value == nil {
		*r = RecipeJSON{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, r)
}

// ListContentJSON stores the categorized shopping list as opaque JSONB.
type ListContentJSON types.ShoppingListContent

// Value implements the driver.Valuer interface
func (l ListContentJSON) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "{}", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *ListContentJSON) Scan(value interface{}) error {
	if value == nil {
		*l = ListContentJSON{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

type MealPlan struct {
	ID        uuid.UUID     `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	UserID    uuid.UUID     `gorm:"type:varchar(36);not null;index" json:"user_id"`
	PlanInput PlanInputJSON `gorm:"type:jsonb;not null" json:"plan_input"`

	Meals        []Meal        `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"-"`
	ShoppingList *ShoppingList `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"-"`
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Meal is one persisted meal of a plan. One meal per (day, type) by
// construction; the pair is not constrained at the store level.
type Meal struct {
	ID         uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	PlanID     uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"plan_id"`
	Day        int        `gorm:"not null" json:"day"`
	Type       string     `gorm:"size:50;not null" json:"type"`
	RecipeData RecipeJSON `gorm:"type:jsonb;not null" json:"recipe_data"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ShoppingList is the categorized ingredient list of one plan. The unique
// index on plan_id makes the one-list-per-plan invariant hold even when two
// requests pass the existence pre-check concurrently.
type ShoppingList struct {
	ID          uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	PlanID      uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex" json:"plan_id"`
	ListContent ListContentJSON `gorm:"type:jsonb;not null" json:"list_content"`
}

func (s *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
