package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe_service/internal/models"
	"recipe_service/internal/service"
)

const (
	msgInvalidBody      = "invalid request body"
	msgSaveFailed       = "Failed to save recipes!"
	msgListFailed       = "Some error occurred while retrieving recipes."
	msgFetchFailed      = "Some error occurred while retrieving recipe details."
	msgUpdateFailed     = "An error occured while updating recipe"
	msgDeleteFailed     = "An error occured while deleting recipe"
	msgDeleted          = "Recipe successfully deleted"
	msgNotFoundTemplate = "Recipe with id %s does not exist"
)

// RecipeRequest documents the recipe payload. Handlers decode the body
// generically so that wrongly typed values can be reported per field.
type RecipeRequest struct {
	Name       string  `json:"name" example:"chicken nuggets"`
	Difficulty float64 `json:"difficulty" example:"2"`
	Vegetarian bool    `json:"vegetarian" example:"true"`
}

// decodeFields reads the body as a JSON object. An empty body is an empty object.
func decodeFields(c *gin.Context) (map[string]any, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		// body was the literal null
		fields = map[string]any{}
	}
	return fields, nil
}

// bindRecipe decodes and validates the body, writing a 400 on failure.
func (h *Handler) bindRecipe(c *gin.Context, partial bool) (models.RecipeInput, bool) {
	fields, err := decodeFields(c)
	if err != nil {
		if h.log != nil {
			h.log.Infow("recipe_bad_request_body", "err", err)
		}
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return models.RecipeInput{}, false
	}
	in, err := service.ValidateRecipe(fields, partial)
	if err != nil {
		respondValidation(c, err)
		return models.RecipeInput{}, false
	}
	return in, true
}

func respondValidation(c *gin.Context, err error) bool {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		respondError(c, http.StatusBadRequest, verr.Message)
		return true
	}
	return false
}

func respondNotFound(c *gin.Context, id string) {
	respondError(c, http.StatusBadRequest, fmt.Sprintf(msgNotFoundTemplate, id))
}

// @Summary      Create recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body  body      RecipeRequest  true  "Recipe"
// @Success      201   {object}  map[string]interface{}  "success, data"
// @Failure      400   {object}  map[string]interface{}
// @Failure      403   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Router       /recipes [post]
// @Security     BearerAuth
func (h *Handler) createRecipe(c *gin.Context) {
	in, ok := h.bindRecipe(c, false)
	if !ok {
		return
	}

	rec, err := h.services.Save(c.Request.Context(), c.GetInt(userIDKey), in)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		h.logAndRespondError(c, http.StatusInternalServerError, msgSaveFailed, "recipe_save_failed", err)
		return
	}

	h.metrics.ObserveMutation("create")
	respondData(c, http.StatusCreated, rec)
}

// @Summary      List recipes
// @Tags         recipes
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "success, data"
// @Failure      500  {object}  map[string]interface{}
// @Router       /recipes [get]
func (h *Handler) listRecipes(c *gin.Context) {
	list, err := h.services.All(c.Request.Context())
	if err != nil {
		h.logAndRespondError(c, http.StatusInternalServerError, msgListFailed, "recipe_list_failed", err)
		return
	}
	if list == nil {
		list = []models.Recipe{}
	}
	respondData(c, http.StatusOK, list)
}

// @Summary      Get recipe
// @Tags         recipes
// @Produce      json
// @Param        id   path      string  true  "Recipe id"
// @Success      200  {object}  map[string]interface{}  "success, data"
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /recipes/{id} [get]
func (h *Handler) getRecipe(c *gin.Context) {
	id := c.Param("id")
	rec, err := h.services.FetchByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			respondNotFound(c, id)
			return
		}
		h.logAndRespondError(c, http.StatusInternalServerError, msgFetchFailed, "recipe_fetch_failed", err, "id", id)
		return
	}
	respondData(c, http.StatusOK, rec)
}

// @Summary      Update recipe
// @Description  Partial update; only the fields present are changed.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Recipe id"
// @Param        body  body      RecipeRequest  true  "Fields to change"
// @Success      200   {object}  map[string]interface{}  "success, data"
// @Failure      400   {object}  map[string]interface{}
// @Failure      403   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Router       /recipes/{id} [patch]
// @Security     BearerAuth
func (h *Handler) updateRecipe(c *gin.Context) {
	in, ok := h.bindRecipe(c, true)
	if !ok {
		return
	}

	id := c.Param("id")
	rec, err := h.services.FetchByIDAndUpdate(c.Request.Context(), c.GetInt(userIDKey), id, in)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			respondNotFound(c, id)
			return
		}
		h.logAndRespondError(c, http.StatusInternalServerError, msgUpdateFailed, "recipe_update_failed", err, "id", id)
		return
	}

	h.metrics.ObserveMutation("update")
	respondData(c, http.StatusOK, rec)
}

// @Summary      Delete recipe
// @Tags         recipes
// @Produce      json
// @Param        id   path      string  true  "Recipe id"
// @Success      200  {object}  map[string]interface{}  "success, message"
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /recipes/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteRecipe(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.FetchByIDAndDelete(c.Request.Context(), c.GetInt(userIDKey), id); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			respondNotFound(c, id)
			return
		}
		h.logAndRespondError(c, http.StatusInternalServerError, msgDeleteFailed, "recipe_delete_failed", err, "id", id)
		return
	}

	h.metrics.ObserveMutation("delete")
	respondMessage(c, http.StatusOK, msgDeleted)
}
