package repository

import (
	"context"
	"database/sql"
	"time"

	"recipe_service/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// RecipeRepo persists recipe documents. Single-row lookups return (nil, nil)
// when nothing matches; Update and Delete report whether a row was affected.
type RecipeRepo interface {
	Create(ctx context.Context, r models.Recipe) (models.Recipe, error)
	List(ctx context.Context) ([]models.Recipe, error)
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
	Update(ctx context.Context, r models.Recipe) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.RecipeEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.RecipeEvent, error)
}

type Repository struct {
	Auth       Authorization
	RecipeRepo RecipeRepo
	EventRepo  EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:       NewUserRepository(db),
		RecipeRepo: NewRecipeSQLite(db),
		EventRepo:  NewEventSQLite(db),
	}
}
