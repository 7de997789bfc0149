package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsMatchedAndUnmatchedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/recipes/:id", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	for _, path := range []string{"/recipes/a", "/recipes/b", "/nowhere"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/recipes/:id", "400")); got != 2 {
		t.Fatalf("route counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Fatalf("unmatched counter = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.HTTPRequestDuration); n != 2 {
		t.Fatalf("expected 2 duration series, got %d", n)
	}
}

func TestObserveHelpers(t *testing.T) {
	m := New()
	m.ObserveLogin(LoginSuccess)
	m.ObserveLogin(LoginRejected)
	m.ObserveLogin(LoginRejected)
	m.ObserveMutation("create")

	if got := testutil.ToFloat64(m.LoginsTotal.WithLabelValues(LoginRejected)); got != 2 {
		t.Fatalf("rejected logins = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.RecipeMutations.WithLabelValues("create")); got != 1 {
		t.Fatalf("create mutations = %v, want 1", got)
	}

	var nilMetrics *Metrics
	nilMetrics.ObserveLogin(LoginError)
	nilMetrics.ObserveMutation("delete")
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveMutation("delete")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `recipes_mutations_total{op="delete"} 1`) {
		t.Fatalf("exposition missing mutation counter:\n%s", w.Body.String())
	}
}
