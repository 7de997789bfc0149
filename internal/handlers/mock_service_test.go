package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"recipe_service/internal/models"
	"recipe_service/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenUser  *models.User
	genTokenErr   error
	parseID       int
	parseErr      error

	lastGenUsername string
	lastGenPassword string
	lastParseToken  string
	genCalls        int
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) EnsureUser(ctx context.Context, username, password string) (int, bool, error) {
	return m.signUpID, m.signUpErr == nil, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, *models.User, error) {
	m.genCalls++
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenUser, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockRecipes struct {
	saved     models.Recipe
	saveErr   error
	list      []models.Recipe
	listErr   error
	found     models.Recipe
	fetchErr  error
	updated   models.Recipe
	updateErr error
	deleteErr error

	lastUserID int
	lastID     string
	lastInput  models.RecipeInput
	saveCalls  int
	updCalls   int
}

func (m *mockRecipes) Save(ctx context.Context, userID int, in models.RecipeInput) (models.Recipe, error) {
	m.saveCalls++
	m.lastUserID = userID
	m.lastInput = in
	return m.saved, m.saveErr
}
func (m *mockRecipes) All(ctx context.Context) ([]models.Recipe, error) {
	return m.list, m.listErr
}
func (m *mockRecipes) FetchByID(ctx context.Context, id string) (models.Recipe, error) {
	m.lastID = id
	return m.found, m.fetchErr
}
func (m *mockRecipes) FetchByIDAndUpdate(ctx context.Context, userID int, id string, in models.RecipeInput) (models.Recipe, error) {
	m.updCalls++
	m.lastUserID = userID
	m.lastID = id
	m.lastInput = in
	return m.updated, m.updateErr
}
func (m *mockRecipes) FetchByIDAndDelete(ctx context.Context, userID int, id string) error {
	m.lastUserID = userID
	m.lastID = id
	return m.deleteErr
}

type mockEventLog struct {
	resp []models.RecipeEvent
	err  error
	// script, when set, replaces resp per call (0-based)
	script func(call int) []models.RecipeEvent
	calls  int

	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.RecipeEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	if m.script != nil {
		call := m.calls
		m.calls++
		return m.script(call), m.err
	}
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func doRequest(r http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeEnvelope unmarshals a response body into the common envelope shape.
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return m
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	if w.Code != code {
		t.Fatalf("status=%d, want %d, body=%s", w.Code, code, w.Body.String())
	}
	m := decodeEnvelope(t, w)
	if m["success"] != false {
		t.Fatalf("expected success=false, got %v", m["success"])
	}
	if m["message"] != msg {
		t.Fatalf("message=%q, want %q", m["message"], msg)
	}
}
