package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"recipe_service/internal/models"
	"recipe_service/internal/service"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000
	feedOverlap      = 5 * time.Second

	wsTypeRecipes = "recipes"
	wsTypeEvent   = "event"
)

type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Live recipe feed
// @Description  WebSocket. Sends {type:"recipes"} once, then {type:"event"} for each recipe change.
// @Tags         recipes
// @Param        interval     query  string  false  "Poll interval, e.g. 500ms (max 10s)"
// @Param        interval_ms  query  int     false  "Poll interval in milliseconds"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	// events that already existed when the snapshot was taken are not replayed
	feed := newEventFeed(time.Now().UTC())
	h.seedFeed(ctx, feed)
	if err := h.sendRecipes(ctx, conn); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendEvents(ctx, conn, feed); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// startReader drains incoming frames so control messages are handled; done closes on disconnect.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

func (h *Handler) sendRecipes(ctx context.Context, conn *websocket.Conn) error {
	list, err := h.services.All(ctx)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_list_recipes_failed", "err", err)
		}
		return err
	}
	if list == nil {
		list = []models.Recipe{}
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: wsTypeRecipes, Data: list})
}

// eventFeed remembers which events a connection has already seen. Events are
// stamped before they are committed, so every poll re-reads feedOverlap before
// the newest timestamp seen and drops ids that were already delivered.
type eventFeed struct {
	newest time.Time
	seen   map[string]time.Time
}

func newEventFeed(start time.Time) *eventFeed {
	return &eventFeed{newest: start, seen: make(map[string]time.Time)}
}

func (f *eventFeed) since() time.Time {
	return f.newest.Add(-feedOverlap)
}

// fresh marks e as seen and reports whether it was new.
func (f *eventFeed) fresh(e models.RecipeEvent) bool {
	if _, ok := f.seen[e.EventID]; ok {
		return false
	}
	f.seen[e.EventID] = e.OccurredAt
	if e.OccurredAt.After(f.newest) {
		f.newest = e.OccurredAt
	}
	return true
}

// prune forgets ids that can no longer be returned by since().
func (f *eventFeed) prune() {
	floor := f.since()
	for id, at := range f.seen {
		if at.Before(floor) {
			delete(f.seen, id)
		}
	}
}

// seedFeed marks the events inside the overlap window as already seen.
func (h *Handler) seedFeed(ctx context.Context, feed *eventFeed) {
	events, err := h.services.EventLog.List(ctx, service.LogFilter{From: feed.since()})
	if err != nil {
		if h.log != nil {
			h.log.Warnw("ws_list_events_failed", "err", err)
		}
		return
	}
	for _, e := range events {
		feed.fresh(e)
	}
}

// sendEvents writes every event the connection has not seen yet.
// A failed lookup is logged and retried on the next tick.
func (h *Handler) sendEvents(ctx context.Context, conn *websocket.Conn, feed *eventFeed) error {
	events, err := h.services.EventLog.List(ctx, service.LogFilter{From: feed.since()})
	if err != nil {
		if h.log != nil {
			h.log.Warnw("ws_list_events_failed", "err", err)
		}
		return nil
	}

	for _, e := range events {
		if !feed.fresh(e) {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(wsEnvelope{Type: wsTypeEvent, Data: e}); err != nil {
			return err
		}
	}
	feed.prune()
	return nil
}
