package service

import (
	"context"
	"time"

	"recipe_service/internal/logger"
	"recipe_service/internal/models"
	"recipe_service/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	EnsureUser(ctx context.Context, username, password string) (int, bool, error)
	GenerateToken(ctx context.Context, username, password string) (string, *models.User, error)
	ParseToken(accessToken string) (int, error)
}

// Recipes is the recipe collection as seen by the HTTP layer. Input is
// expected to have passed ValidateRecipe already.
type Recipes interface {
	Save(ctx context.Context, userID int, in models.RecipeInput) (models.Recipe, error)
	All(ctx context.Context) ([]models.Recipe, error)
	FetchByID(ctx context.Context, id string) (models.Recipe, error)
	FetchByIDAndUpdate(ctx context.Context, userID int, id string, in models.RecipeInput) (models.Recipe, error)
	FetchByIDAndDelete(ctx context.Context, userID int, id string) error
}

// EventLog exposes the append-only recipe audit trail.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.RecipeEvent, error)
}

// LogFilter narrows the event history by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "CREATE", "UPDATE", "DELETE"
}

// AuthConfig carries token signing parameters.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Recipes
	EventLog
}

func NewService(repos *repository.Repository, auth AuthConfig, log *logger.Logger) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, auth),
		Recipes:       NewRecipeService(repos.RecipeRepo, repos.EventRepo, log),
		EventLog:      NewEventLogService(repos.EventRepo),
	}
}
