package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupUsersRouter(t *testing.T, svc *Service, userID, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("userRole", role)
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return router
}

func TestMeReturnsProfile(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	if err := svc.UpsertFromAuth(context.Background(), User{
		ID:    "google:123",
		Email: "planner@example.com",
		Name:  "Planner",
	}); err != nil {
		t.Fatalf("upsert user: %v", err)
	}
	router := setupUsersRouter(t, svc, "google:123", "viewer")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["id"] != "google:123" {
		t.Fatalf("unexpected id: %v", payload["id"])
	}
	if payload["email"] != "planner@example.com" {
		t.Fatalf("unexpected email: %v", payload["email"])
	}
	if payload["role"] != "viewer" {
		t.Fatalf("unexpected role: %v", payload["role"])
	}
}

func TestMeRejectsGuests(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	router := setupUsersRouter(t, svc, "guest:abc", "viewer")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestMeUnknownUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	router := setupUsersRouter(t, svc, "google:missing", "viewer")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestMemoryRepoUpsertPreservesCreatedAt(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	if err := repo.Upsert(ctx, User{ID: "google:1", Email: "a@example.com"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	first, err := repo.GetByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("get after first upsert: %v", err)
	}
	if err := repo.Upsert(ctx, User{ID: "google:1", Email: "a@example.com", Name: "Renamed"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	second, err := repo.GetByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("get after second upsert: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("expected CreatedAt preserved on upsert")
	}
	if second.Name != "Renamed" {
		t.Fatalf("expected profile refreshed, got %q", second.Name)
	}
}
