package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"recipe_service/internal/models"
	"recipe_service/internal/service"
)

const (
	errFromInvalid  = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid    = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errRangeInvalid = "'from' must be <= 'to'"
	errEventsFailed = "failed to load events"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

type eventsPage struct {
	Count  int                  `json:"count"`
	Events []models.RecipeEvent `json:"events"`
}

func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List recipe events
// @Description  Audit trail of recipe mutations. A date-only 'to' covers the whole day.
// @Tags         events
// @Produce      json
// @Param        from  query     string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to    query     string  false  "End of range, inclusive"  example(2025-08-31)
// @Param        type  query     string  false  "Event type"  Enums(CREATE,UPDATE,DELETE)
// @Success      200   {object}  map[string]interface{}  "success, data{count, events}"
// @Failure      400   {object}  map[string]interface{}
// @Failure      403   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Router       /events [get]
// @Security     BearerAuth
func (h *Handler) getEvents(c *gin.Context) {
	var (
		from, to  time.Time
		err       error
		eventType = strings.ToUpper(strings.TrimSpace(c.Query("type")))
	)
	if qs := c.Query("from"); qs != "" {
		if from, err = parseQueryTime(qs); err != nil {
			respondError(c, http.StatusBadRequest, errFromInvalid)
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if to, err = parseQueryTime(qs); err != nil {
			respondError(c, http.StatusBadRequest, errToInvalid)
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
	}

	events, err := h.services.EventLog.List(c.Request.Context(), service.LogFilter{From: from, To: to, Type: eventType})
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeRange) {
			respondError(c, http.StatusBadRequest, errRangeInvalid)
			return
		}
		h.logAndRespondError(c, http.StatusInternalServerError, errEventsFailed, "events_list_failed", err,
			"from", from, "to", to, "type", eventType)
		return
	}
	if events == nil {
		events = []models.RecipeEvent{}
	}
	respondData(c, http.StatusOK, eventsPage{Count: len(events), Events: events})
}

// parseQueryTime accepts RFC3339, "YYYY-MM-DD HH:MM:SS" and "YYYY-MM-DD", normalized to UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}
