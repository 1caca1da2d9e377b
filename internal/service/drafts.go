package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vitaplan/backend/internal/types"
)

const draftTTL = 24 * time.Hour

// PlanDraft is an unsaved generated plan parked server-side so a user can
// pick it up again before deciding to persist it.
type PlanDraft struct {
	ID        string                        `json:"id"`
	CreatedAt time.Time                     `json:"created_at"`
	UpdatedAt time.Time                     `json:"updated_at"`
	PlanInput types.GenerateMealPlanCommand `json:"plan_input"`
	Plan      types.GeneratedPlan           `json:"plan"`
}

// DraftService keeps plan drafts in Redis with a 24h TTL. Keys carry the
// owner id, so drafts are only reachable by the user who created them.
type DraftService struct {
	redis *redis.Client
}

func NewDraftService(redisClient *redis.Client) *DraftService {
	return &DraftService{redis: redisClient}
}

func draftKey(ownerID uuid.UUID, draftID string) string {
	return fmt.Sprintf("mealplan:draft:%s:%s", ownerID, draftID)
}

// SaveDraft stores a draft and assigns it a fresh id.
func (s *DraftService) SaveDraft(ctx context.Context, ownerID uuid.UUID, draft *PlanDraft) error {
	draft.ID = uuid.New().String()
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = time.Now()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(ownerID, draft.ID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}

	return nil
}

// GetDraft retrieves a draft owned by the given user.
func (s *DraftService) GetDraft(ctx context.Context, ownerID uuid.UUID, draftID string) (*PlanDraft, error) {
	data, err := s.redis.Get(ctx, draftKey(ownerID, draftID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft PlanDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// DeleteDraft removes a draft owned by the given user.
func (s *DraftService) DeleteDraft(ctx context.Context, ownerID uuid.UUID, draftID string) error {
	deleted, err := s.redis.Del(ctx, draftKey(ownerID, draftID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	if deleted == 0 {
		return ErrDraftNotFound
	}
	return nil
}
