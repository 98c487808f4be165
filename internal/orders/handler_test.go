package orders

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"scheduler-backend/internal/shared/auth"
)

func setupRouter(t *testing.T, role string) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := NewMemoryRepo()
	handler := NewHandler(&Service{Repo: repo})

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Set("userRole", role)
		c.Next()
	})
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router, repo
}

func TestCreateOrderEndpoint(t *testing.T) {
	router, _ := setupRouter(t, auth.RoleAdmin)

	body := `{"internalModel":"GX-7","quantity":120,"estimatedYield":95,"requestedStartDate":"2026-03-02","dueDate":"2026-03-20"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201: %s", resp.Code, resp.Body.String())
	}

	var got struct {
		OrderID      string  `json:"orderId"`
		Status       string  `json:"status"`
		PlannedInput int     `json:"plannedInput"`
		Yield        float64 `json:"estimatedYield"`
		DueDate      string  `json:"dueDate"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.OrderID == "" || got.Status != StatusPending {
		t.Errorf("body: %+v", got)
	}
	// ceil(120 / 0.95) = 127 units started to ship 120.
	if got.PlannedInput != 127 {
		t.Errorf("planned input: got %d, want 127", got.PlannedInput)
	}
	if got.DueDate != "2026-03-20" {
		t.Errorf("due date: got %s", got.DueDate)
	}
}

func TestCreateOrderEndpointValidation(t *testing.T) {
	router, _ := setupRouter(t, auth.RoleAdmin)

	cases := []struct {
		name string
		body string
	}{
		{"not json", "not json"},
		{"bad date", `{"quantity":10,"requestedStartDate":"03/02/2026"}`},
		{"bad due date", `{"quantity":10,"requestedStartDate":"2026-03-02","dueDate":"soon"}`},
		{"zero quantity", `{"quantity":0,"requestedStartDate":"2026-03-02"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400: %s", resp.Code, resp.Body.String())
			}
		})
	}
}

func TestCreateOrderRequiresAdmin(t *testing.T) {
	router, _ := setupRouter(t, auth.RoleViewer)

	body := `{"quantity":10,"requestedStartDate":"2026-03-02"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", resp.Code)
	}
}

func TestGetOrderEndpointNotFound(t *testing.T) {
	router, _ := setupRouter(t, auth.RoleViewer)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", resp.Code)
	}
}
