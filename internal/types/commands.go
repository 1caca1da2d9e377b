package types

// CalorieTarget is a per-person daily calorie goal.
type CalorieTarget struct {
	Person   int `json:"person" binding:"required,min=1"`
	Calories int `json:"calories" binding:"required,min=500,max=5000"`
}

// GenerateMealPlanCommand represents the request body for generating a meal plan
type GenerateMealPlanCommand struct {
	PeopleCount         int             `json:"peopleCount" binding:"required,min=1,max=20"`
	DaysCount           int             `json:"daysCount" binding:"required,min=1,max=14"`
	Cuisine             string          `json:"cuisine" binding:"required,max=100"`
	ExcludedIngredients []string        `json:"excludedIngredients"`
	CalorieTargets      []CalorieTarget `json:"calorieTargets" binding:"dive"`
	MealsToPlan         []string        `json:"mealsToPlan" binding:"required,min=1,dive,min=1"`
}

// Ingredient is a single recipe ingredient with a free-form quantity.
type Ingredient struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
}

// Portion is the gram amount of a dish for one person.
type Portion struct {
	Person int `json:"person" binding:"required,min=1"`
	Grams  int `json:"grams" binding:"required,min=1"`
}

// Recipe is a full recipe as generated by the AI.
type Recipe struct {
	Name         string       `json:"name" binding:"required"`
	Ingredients  []Ingredient `json:"ingredients" binding:"required"`
	Instructions []string     `json:"instructions" binding:"required"`
	Portions     []Portion    `json:"portions" binding:"required,dive"`
}

// PlanMeal is one meal within a generated day.
type PlanMeal struct {
	Type   string `json:"type"`
	Recipe Recipe `json:"recipe"`
}

// PlanDay groups the meals of one day of a generated plan.
type PlanDay struct {
	Day   int        `json:"day"`
	Meals []PlanMeal `json:"meals"`
}

// GeneratedPlan is the transient, unsaved plan shape.
type GeneratedPlan struct {
	Days []PlanDay `json:"days"`
}

// GeneratedMealPlan is the wire shape returned by the generation endpoint.
type GeneratedMealPlan struct {
	Plan GeneratedPlan `json:"plan"`
}

// GeneratedMeal is a single regenerated meal addressed by day and type.
type GeneratedMeal struct {
	Day    int    `json:"day"`
	Type   string `json:"type"`
	Recipe Recipe `json:"recipe"`
}

// CreateMealCommand is one meal of a plan being saved.
type CreateMealCommand struct {
	Day        int    `json:"day" binding:"required,min=1"`
	Type       string `json:"type" binding:"required"`
	RecipeData Recipe `json:"recipeData" binding:"required"`
}

// CreateMealPlanCommand represents the request body for saving a generated plan
type CreateMealPlanCommand struct {
	PlanInput GenerateMealPlanCommand `json:"planInput" binding:"required"`
	Meals     []CreateMealCommand     `json:"meals" binding:"required,min=1,dive"`
}

// MealTarget addresses one meal slot of a plan.
type MealTarget struct {
	Day  int    `json:"day" binding:"required,min=1"`
	Type string `json:"type" binding:"required"`
}

// RecipeSummary is the trimmed recipe view passed back to the AI for context.
type RecipeSummary struct {
	Name     string    `json:"name"`
	Portions []Portion `json:"portions"`
}

// ExistingMealSummary describes a meal already scheduled for the target day.
type ExistingMealSummary struct {
	Type   string        `json:"type"`
	Recipe RecipeSummary `json:"recipe"`
}

// RegenerateMealCommand represents the request body for regenerating one meal
type RegenerateMealCommand struct {
	PlanInput           GenerateMealPlanCommand `json:"planInput" binding:"required"`
	MealToRegenerate    MealTarget              `json:"mealToRegenerate" binding:"required"`
	ExistingMealsForDay []ExistingMealSummary   `json:"existingMealsForDay"`
}

// ShoppingListContent maps a category name to its deduplicated items.
type ShoppingListContent map[string][]Ingredient

// Pagination describes one page of a list response.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}
