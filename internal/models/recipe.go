package models

import "time"

// Recipe is a single document of the recipes collection.
type Recipe struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Difficulty float64   `json:"difficulty"`
	Vegetarian bool      `json:"vegetarian"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RecipeInput carries validated fields from a create or update request.
// A nil field was absent from the request body.
type RecipeInput struct {
	Name       *string
	Difficulty *float64
	Vegetarian *bool
}

// Apply copies the present fields onto r.
func (in RecipeInput) Apply(r *Recipe) {
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Difficulty != nil {
		r.Difficulty = *in.Difficulty
	}
	if in.Vegetarian != nil {
		r.Vegetarian = *in.Vegetarian
	}
}
