package models

import "time"

// Recipe event types.
const (
	EventCreate = "CREATE"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// RecipeEvent is a single audit entry for a recipe mutation.
type RecipeEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // CREATE | UPDATE | DELETE
	RecipeID    string    `json:"recipe_id"`
	UserID      int       `json:"user_id"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
