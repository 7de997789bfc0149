package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"recipe_service/internal/models"
)

type RecipeSQLite struct {
	db *sql.DB
}

func NewRecipeSQLite(db *sql.DB) *RecipeSQLite {
	return &RecipeSQLite{db: db}
}

var _ RecipeRepo = (*RecipeSQLite)(nil)

const (
	recipeColumns = `id, name, difficulty, vegetarian, created_at, updated_at`

	insertRecipeSQL     = `INSERT INTO recipes (` + recipeColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	selectRecipesSQL    = `SELECT ` + recipeColumns + ` FROM recipes ORDER BY created_at ASC, id ASC`
	selectRecipeByIDSQL = `SELECT ` + recipeColumns + ` FROM recipes WHERE id = ?`
	updateRecipeSQL     = `UPDATE recipes SET name = ?, difficulty = ?, vegetarian = ?, updated_at = ? WHERE id = ?`
	deleteRecipeSQL     = `DELETE FROM recipes WHERE id = ?`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s rowScanner) (models.Recipe, error) {
	var r models.Recipe
	if err := s.Scan(&r.ID, &r.Name, &r.Difficulty, &r.Vegetarian, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return models.Recipe{}, err
	}
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return r, nil
}

// Create inserts a recipe. An empty ID gets a fresh UUID and zero timestamps
// are set to now; the stored document is returned.
func (r *RecipeSQLite) Create(ctx context.Context, rec models.Recipe) (models.Recipe, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()

	_, err := r.db.ExecContext(ctx, insertRecipeSQL,
		rec.ID,
		rec.Name,
		rec.Difficulty,
		rec.Vegetarian,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("insert recipe %q: %w", rec.ID, err)
	}
	return rec, nil
}

// List returns every recipe, oldest first.
func (r *RecipeSQLite) List(ctx context.Context) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, selectRecipesSQL)
	if err != nil {
		return nil, fmt.Errorf("select recipes: %w", err)
	}
	defer rows.Close()

	out := make([]models.Recipe, 0, 16)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return out, nil
}

// GetByID fetches a recipe. Returns (nil, nil) if not found.
func (r *RecipeSQLite) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	rec, err := scanRecipe(r.db.QueryRowContext(ctx, selectRecipeByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select recipe %q: %w", id, err)
	}
	return &rec, nil
}

// Update overwrites the mutable fields of an existing recipe.
func (r *RecipeSQLite) Update(ctx context.Context, rec models.Recipe) (bool, error) {
	updatedAt := rec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, updateRecipeSQL,
		rec.Name,
		rec.Difficulty,
		rec.Vegetarian,
		updatedAt.UTC(),
		rec.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update recipe %q: %w", rec.ID, err)
	}
	return affectedOne(res, "update recipe", rec.ID)
}

// Delete removes a recipe by id.
func (r *RecipeSQLite) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteRecipeSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete recipe %q: %w", id, err)
	}
	return affectedOne(res, "delete recipe", id)
}

func affectedOne(res sql.Result, op, id string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s %q rows affected: %w", op, id, err)
	}
	return n > 0, nil
}
