package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vitaplan/backend/internal/types"
)

// The application speaks Polish to its users, so every prompt instructs the
// model to answer in Polish only.
const (
	plannerSystemPrompt = "Jesteś profesjonalnym planistą posiłków i dietetykiem. " +
		"Odpowiadaj wyłącznie w języku polskim. Wszystkie nazwy przepisów, składników " +
		"i instrukcje muszą być w języku polskim."

	shoppingSystemPrompt = "Jesteś pomocnym asystentem tworzącym zorganizowane listy zakupów. " +
		"Odpowiadaj wyłącznie w języku polskim. Wszystkie nazwy kategorii i składników " +
		"muszą być w języku polskim."
)

func buildMealPlanPrompt(cmd *types.GenerateMealPlanCommand) string {
	excluded := strings.Join(cmd.ExcludedIngredients, ", ")
	if excluded == "" {
		excluded = "brak"
	}
	targets, _ := json.Marshal(cmd.CalorieTargets)

	return fmt.Sprintf(`Wygeneruj plan posiłków z następującymi wymaganiami:
- Liczba osób: %d
- Liczba dni: %d
- Typ kuchni: %s
- Wykluczone składniki: %s
- Cele kaloryczne na osobę: %s
- Posiłki do zaplanowania: %s

Zwróć obiekt JSON o następującej strukturze:
{
  "plan": {
    "days": [
      {
        "day": 1,
        "meals": [
          {
            "type": "breakfast",
            "recipe": {
              "name": "Nazwa Przepisu",
              "ingredients": [{"item": "składnik", "quantity": "ilość"}],
              "instructions": ["krok 1", "krok 2"],
              "portions": [{"person": 1, "grams": 250}]
            }
          }
        ]
      }
    ]
  }
}

Upewnij się, że:
1. Każdy posiłek odpowiada celowi kalorycznemu dla każdej osoby
2. Rozmiary porcji są podane w gramach dla każdej osoby
3. Nie używasz wykluczonych składników
4. Przepisy odpowiadają określonemu typowi kuchni
5. Wszystkie nazwy przepisów, składników i instrukcje są w języku polskim`,
		cmd.PeopleCount,
		cmd.DaysCount,
		cmd.Cuisine,
		excluded,
		string(targets),
		strings.Join(cmd.MealsToPlan, ", "),
	)
}

func buildRegenerateMealPrompt(cmd *types.RegenerateMealCommand) string {
	excluded := strings.Join(cmd.PlanInput.ExcludedIngredients, ", ")
	if excluded == "" {
		excluded = "brak"
	}
	targets, _ := json.Marshal(cmd.PlanInput.CalorieTargets)
	existing, _ := json.Marshal(cmd.ExistingMealsForDay)

	return fmt.Sprintf(`Wygeneruj ponownie pojedynczy posiłek z następującym kontekstem:
- Dzień: %d
- Typ posiłku: %s
- Kuchnia: %s
- Wykluczone składniki: %s
- Cele kaloryczne: %s
- Istniejące posiłki na ten dzień: %s

Wygeneruj NOWY przepis, który:
1. Różni się od istniejących posiłków
2. Mieści się w dziennym rozkładzie kalorii
3. Odpowiada typowi kuchni
4. Unika wykluczonych składników

Zwróć obiekt JSON o tej strukturze:
{
  "day": %d,
  "type": "%s",
  "recipe": {
    "name": "Nazwa Przepisu",
    "ingredients": [{"item": "składnik", "quantity": "ilość"}],
    "instructions": ["krok 1", "krok 2"],
    "portions": [{"person": 1, "grams": 250}]
  }
}

Upewnij się, że wszystkie nazwy przepisów, składników i instrukcje są w języku polskim.`,
		cmd.MealToRegenerate.Day,
		cmd.MealToRegenerate.Type,
		cmd.PlanInput.Cuisine,
		excluded,
		string(targets),
		string(existing),
		cmd.MealToRegenerate.Day,
		cmd.MealToRegenerate.Type,
	)
}

func buildShoppingListPrompt(ingredients []string) string {
	return fmt.Sprintf(`Utwórz zorganizowaną listę zakupów z tych składników:
%s

Pogrupuj duplikaty i zorganizuj w kategorie takie jak:
- Warzywa
- Owoce
- Nabiał
- Mięso i Ryby
- Zboża i Makarony
- Przyprawy i Sosy
- Inne

Zwróć obiekt JSON, gdzie klucze to nazwy kategorii, a wartości to tablice elementów:
{
  "Warzywa": [
    {"item": "Cebula", "quantity": "2 duże"},
    {"item": "Pomidor", "quantity": "500g"}
  ],
  "Nabiał": [
    {"item": "Mleko", "quantity": "1 litr"}
  ]
}

Upewnij się, że wszystkie nazwy kategorii i składników są w języku polskim.`,
		strings.Join(ingredients, "\n"),
	)
}
