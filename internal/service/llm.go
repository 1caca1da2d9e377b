package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vitaplan/backend/config"
	"github.com/vitaplan/backend/internal/models"
	"github.com/vitaplan/backend/internal/types"
	"github.com/vitaplan/backend/pkg/logger"
)

// LLMService handles interactions with the OpenRouter chat-completions API
type LLMService struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config, log *logger.Logger) (*LLMService, error) {
	apiKey := cfg.OpenRouterAPIKey
	if apiKey == "" {
		apiKeyFile := os.Getenv("OPENROUTER_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY or OPENROUTER_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = cfg.OpenRouterAPIURL

	return &LLMService{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.OpenRouterModel,
		log:    log,
	}, nil
}

// complete performs a single JSON-mode chat completion. One shot, no retry:
// any failure is wrapped in ErrUpstream and surfaced to the caller.
func (s *LLMService) complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		s.log.Errorw("chat completion failed", "model", s.model, "error", err)
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in completion", ErrUpstream)
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateMealPlan generates a complete meal plan. The result is not
// persisted; it only lives on the client (or in a draft) until saved.
func (s *LLMService) GenerateMealPlan(ctx context.Context, cmd *types.GenerateMealPlanCommand) (*types.GeneratedMealPlan, error) {
	content, err := s.complete(ctx, plannerSystemPrompt, buildMealPlanPrompt(cmd))
	if err != nil {
		return nil, err
	}

	var plan types.GeneratedMealPlan
	if err := json.Unmarshal([]byte(content), &plan); err != nil {
		s.log.Errorw("failed to parse generated plan", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if err := validateGeneratedPlan(&plan.Plan); err != nil {
		s.log.Errorw("generated plan failed schema validation", "error", err)
		return nil, err
	}

	return &plan, nil
}

// RegenerateMeal generates a replacement for a single meal slot. The
// returned meal is guaranteed to carry the requested (day, type).
func (s *LLMService) RegenerateMeal(ctx context.Context, cmd *types.RegenerateMealCommand) (*types.GeneratedMeal, error) {
	content, err := s.complete(ctx, plannerSystemPrompt, buildRegenerateMealPrompt(cmd))
	if err != nil {
		return nil, err
	}

	var meal types.GeneratedMeal
	if err := json.Unmarshal([]byte(content), &meal); err != nil {
		s.log.Errorw("failed to parse regenerated meal", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if meal.Day != cmd.MealToRegenerate.Day || meal.Type != cmd.MealToRegenerate.Type {
		return nil, &SchemaError{
			Field:  "day/type",
			Reason: fmt.Sprintf("expected (%d, %s), got (%d, %s)", cmd.MealToRegenerate.Day, cmd.MealToRegenerate.Type, meal.Day, meal.Type),
		}
	}

	if err := validateRecipe("recipe", &meal.Recipe); err != nil {
		s.log.Errorw("regenerated meal failed schema validation", "error", err)
		return nil, err
	}

	return &meal, nil
}

// AggregateShoppingList asks the model to deduplicate and categorize the
// ingredients of all meals of a plan.
func (s *LLMService) AggregateShoppingList(ctx context.Context, meals []models.Meal) (types.ShoppingListContent, error) {
	var ingredients []string
	for _, meal := range meals {
		for _, ing := range meal.RecipeData.Ingredients {
			ingredients = append(ingredients, fmt.Sprintf("%s: %s", ing.Item, ing.Quantity))
		}
	}

	content, err := s.complete(ctx, shoppingSystemPrompt, buildShoppingListPrompt(ingredients))
	if err != nil {
		return nil, err
	}

	var list types.ShoppingListContent
	if err := json.Unmarshal([]byte(content), &list); err != nil {
		s.log.Errorw("failed to parse shopping list", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(list) == 0 {
		return nil, &SchemaError{Field: "categories", Reason: "empty category mapping"}
	}

	return list, nil
}

// validateGeneratedPlan rejects structurally broken AI output before it
// reaches callers. Every meal is checked down to portions; a top-level
// days check alone would let malformed recipes through.
func validateGeneratedPlan(plan *types.GeneratedPlan) error {
	if len(plan.Days) == 0 {
		return &SchemaError{Field: "plan.days", Reason: "missing or empty"}
	}

	for i, day := range plan.Days {
		if day.Day < 1 {
			return &SchemaError{Field: fmt.Sprintf("plan.days[%d].day", i), Reason: "must be at least 1"}
		}
		if len(day.Meals) == 0 {
			return &SchemaError{Field: fmt.Sprintf("plan.days[%d].meals", i), Reason: "missing or empty"}
		}
		for j, meal := range day.Meals {
			if meal.Type == "" {
				return &SchemaError{Field: fmt.Sprintf("plan.days[%d].meals[%d].type", i, j), Reason: "missing"}
			}
			if err := validateRecipe(fmt.Sprintf("plan.days[%d].meals[%d].recipe", i, j), &meal.Recipe); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateRecipe(field string, recipe *types.Recipe) error {
	if recipe.Name == "" {
		return &SchemaError{Field: field + ".name", Reason: "missing"}
	}
	if len(recipe.Ingredients) == 0 {
		return &SchemaError{Field: field + ".ingredients", Reason: "missing or empty"}
	}
	if len(recipe.Instructions) == 0 {
		return &SchemaError{Field: field + ".instructions", Reason: "missing or empty"}
	}
	if len(recipe.Portions) == 0 {
		return &SchemaError{Field: field + ".portions", Reason: "missing or empty"}
	}
	for i, portion := range recipe.Portions {
		if portion.Person < 1 || portion.Grams < 1 {
			return &SchemaError{Field: fmt.Sprintf("%s.portions[%d]", field, i), Reason: "person and grams must be at least 1"}
		}
	}
	return nil
}
