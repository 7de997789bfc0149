package service

import (
	"strings"

	"recipe_service/internal/models"
)

// Messages returned to clients for rejected recipe payloads.
const (
	MsgVegetarianNotBool = "vegetarian field should be boolean"
	MsgNameEmpty         = "name field can not be empty"
	MsgDifficultyNotNum  = "difficulty field should be a number"
	MsgEmptyUpdate       = "field should not be empty"
)

// ValidationError is a client error carrying the message to show.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// ValidateRecipe checks a decoded JSON object. Creation (partial == false)
// requires every field; updates only check the fields present but reject a
// payload without any recipe field. Numbers must be JSON numbers and booleans JSON booleans; the
// string forms "2" and "true" are rejected. Unknown keys are ignored.
func ValidateRecipe(fields map[string]any, partial bool) (models.RecipeInput, error) {
	var in models.RecipeInput

	if raw, ok := fields["vegetarian"]; ok || !partial {
		v, isBool := raw.(bool)
		if !isBool {
			return in, invalid(MsgVegetarianNotBool)
		}
		in.Vegetarian = &v
	}

	if raw, ok := fields["name"]; ok || !partial {
		s, isString := raw.(string)
		s = strings.TrimSpace(s)
		if !isString || s == "" {
			return in, invalid(MsgNameEmpty)
		}
		in.Name = &s
	}

	if raw, ok := fields["difficulty"]; ok || !partial {
		d, isNumber := raw.(float64)
		if !isNumber {
			return in, invalid(MsgDifficultyNotNum)
		}
		in.Difficulty = &d
	}

	if partial && in.Name == nil && in.Difficulty == nil && in.Vegetarian == nil {
		return in, invalid(MsgEmptyUpdate)
	}
	return in, nil
}

// completeInput reports the first missing field of a creation payload.
func completeInput(in models.RecipeInput) error {
	switch {
	case in.Vegetarian == nil:
		return invalid(MsgVegetarianNotBool)
	case in.Name == nil || strings.TrimSpace(*in.Name) == "":
		return invalid(MsgNameEmpty)
	case in.Difficulty == nil:
		return invalid(MsgDifficultyNotNum)
	}
	return nil
}
