package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"recipe_service/internal/logger"
	"recipe_service/internal/models"
	"recipe_service/internal/repository"
)

// ErrRecipeNotFound is returned for ids that are malformed or match no recipe.
var ErrRecipeNotFound = errors.New("recipe not found")

type RecipeService struct {
	recipes repository.RecipeRepo
	events  repository.EventRepo
	log     *logger.Logger
	now     func() time.Time
}

func NewRecipeService(recipes repository.RecipeRepo, events repository.EventRepo, log *logger.Logger) *RecipeService {
	return &RecipeService{
		recipes: recipes,
		events:  events,
		log:     log,
		now:     time.Now,
	}
}

// Save stores a new recipe created by userID.
func (s *RecipeService) Save(ctx context.Context, userID int, in models.RecipeInput) (models.Recipe, error) {
	if err := completeInput(in); err != nil {
		return models.Recipe{}, err
	}

	now := s.now().UTC()
	rec := models.Recipe{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(&rec)

	saved, err := s.recipes.Create(ctx, rec)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("save recipe: %w", err)
	}

	s.record(ctx, models.RecipeEvent{
		Type:        models.EventCreate,
		RecipeID:    saved.ID,
		UserID:      userID,
		Description: fmt.Sprintf("recipe %q created", saved.Name),
		Metadata:    changedFields(in),
	})
	return saved, nil
}

// All lists every recipe.
func (s *RecipeService) All(ctx context.Context) ([]models.Recipe, error) {
	list, err := s.recipes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return list, nil
}

// FetchByID returns a single recipe or ErrRecipeNotFound.
func (s *RecipeService) FetchByID(ctx context.Context, id string) (models.Recipe, error) {
	key, ok := normalizeID(id)
	if !ok {
		return models.Recipe{}, ErrRecipeNotFound
	}
	rec, err := s.recipes.GetByID(ctx, key)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("fetch recipe %s: %w", key, err)
	}
	if rec == nil {
		return models.Recipe{}, ErrRecipeNotFound
	}
	return *rec, nil
}

// FetchByIDAndUpdate applies the present fields of in and returns the updated recipe.
func (s *RecipeService) FetchByIDAndUpdate(ctx context.Context, userID int, id string, in models.RecipeInput) (models.Recipe, error) {
	rec, err := s.FetchByID(ctx, id)
	if err != nil {
		return models.Recipe{}, err
	}

	in.Apply(&rec)
	rec.UpdatedAt = s.now().UTC()

	found, err := s.recipes.Update(ctx, rec)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("update recipe %s: %w", rec.ID, err)
	}
	if !found {
		// deleted between read and write
		return models.Recipe{}, ErrRecipeNotFound
	}

	s.record(ctx, models.RecipeEvent{
		Type:        models.EventUpdate,
		RecipeID:    rec.ID,
		UserID:      userID,
		Description: fmt.Sprintf("recipe %q updated", rec.Name),
		Metadata:    changedFields(in),
	})
	return rec, nil
}

// FetchByIDAndDelete removes a recipe.
func (s *RecipeService) FetchByIDAndDelete(ctx context.Context, userID int, id string) error {
	key, ok := normalizeID(id)
	if !ok {
		return ErrRecipeNotFound
	}
	found, err := s.recipes.Delete(ctx, key)
	if err != nil {
		return fmt.Errorf("delete recipe %s: %w", key, err)
	}
	if !found {
		return ErrRecipeNotFound
	}

	s.record(ctx, models.RecipeEvent{
		Type:        models.EventDelete,
		RecipeID:    key,
		UserID:      userID,
		Description: "recipe deleted",
	})
	return nil
}

// record appends an audit event. The mutation already happened, so a failed
// append is logged and swallowed.
func (s *RecipeService) record(ctx context.Context, e models.RecipeEvent) {
	if s.events == nil {
		return
	}
	e.OccurredAt = s.now().UTC()
	if err := s.events.Append(ctx, e); err != nil && s.log != nil {
		s.log.Warnw("recipe_event_append_failed", "err", err, "type", e.Type, "recipe_id", e.RecipeID)
	}
}

// normalizeID maps any accepted UUID spelling to the canonical stored form.
func normalizeID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func changedFields(in models.RecipeInput) map[string]any {
	out := make(map[string]any, 3)
	if in.Name != nil {
		out["name"] = *in.Name
	}
	if in.Difficulty != nil {
		out["difficulty"] = *in.Difficulty
	}
	if in.Vegetarian != nil {
		out["vegetarian"] = *in.Vegetarian
	}
	return out
}
