package service

import (
	"errors"
	"fmt"
)

var (
	// ErrPlanNotFound is returned when a plan does not exist or is owned by
	// someone else. Both cases report the same error so handlers cannot leak
	// existence of other users' plans.
	ErrPlanNotFound = errors.New("meal plan not found")

	// ErrShoppingListExists is returned when a plan already has its list.
	ErrShoppingListExists = errors.New("shopping list already exists for this plan")

	// ErrEmptyPlan is returned when a plan has no meals to aggregate.
	ErrEmptyPlan = errors.New("no meals found for this plan")

	// ErrUpstream covers AI endpoint failures: transport errors, non-2xx
	// responses and unparseable completions.
	ErrUpstream = errors.New("upstream AI request failed")

	// ErrUpstreamSchema is returned when the AI response parses as JSON but
	// does not match the expected shape.
	ErrUpstreamSchema = errors.New("upstream AI response has invalid structure")

	// ErrPersistence marks store failures so callers can tell "AI failed"
	// from "save failed".
	ErrPersistence = errors.New("persistence operation failed")

	// ErrDraftNotFound is returned for missing or expired plan drafts.
	ErrDraftNotFound = errors.New("plan draft not found")
)

// SchemaError describes which part of an AI response failed validation.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid AI response: %s: %s", e.Field, e.Reason)
}

func (e *SchemaError) Unwrap() error {
	return ErrUpstreamSchema
}
