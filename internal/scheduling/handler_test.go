package scheduling

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"scheduler-backend/internal/shared/auth"
)

func setupRouter(t *testing.T, engine *Engine, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Set("userRole", role)
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(engine).RegisterRoutes(api)
	return router
}

func TestScheduleEndpointReturnsEntries(t *testing.T) {
	engine, ordersRepo, _ := setupEngine(t, cutPaintPipeline(10, 10))
	createOrder(t, ordersRepo, "order-1", 5, day0)
	router := setupRouter(t, engine, auth.RoleAdmin)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/order-1/schedule", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Status         string `json:"status"`
		CompletionDate string `json:"completionDate"`
		Entries        []struct {
			OperationID string `json:"operationId"`
			Date        string `json:"date"`
			Quantity    int    `json:"quantity"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Status != "SCHEDULED" {
		t.Errorf("status: got %s, want SCHEDULED", body.Status)
	}
	if len(body.Entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(body.Entries))
	}
	if body.Entries[0].OperationID != "op-cut" || body.Entries[0].Date != day0.Format(DateFormat) || body.Entries[0].Quantity != 5 {
		t.Errorf("first entry: %+v", body.Entries[0])
	}
	if body.CompletionDate != day0.Format(DateFormat) {
		t.Errorf("completion date: got %s, want %s", body.CompletionDate, day0.Format(DateFormat))
	}
}

func TestScheduleEndpointRequiresAdmin(t *testing.T) {
	engine, ordersRepo, _ := setupEngine(t, cutPaintPipeline(10, 10))
	createOrder(t, ordersRepo, "order-1", 5, day0)
	router := setupRouter(t, engine, auth.RoleViewer)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/order-1/schedule", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", resp.Code)
	}
}

func TestScheduleEndpointUnknownOrder(t *testing.T) {
	engine, _, _ := setupEngine(t, cutPaintPipeline(10, 10))
	router := setupRouter(t, engine, auth.RoleAdmin)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/nope/schedule", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", resp.Code)
	}
}

func TestGetScheduleEndpointIsViewerReadable(t *testing.T) {
	engine, ordersRepo, _ := setupEngine(t, cutPaintPipeline(10, 10))
	createOrder(t, ordersRepo, "order-1", 5, day0)
	if _, err := engine.ScheduleOrder(context.Background(), "order-1"); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	router := setupRouter(t, engine, auth.RoleViewer)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/order-1/schedule", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", resp.Code, resp.Body.String())
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	engine, _, _ := setupEngine(t, cutPaintPipeline(10, 10))
	router := setupRouter(t, engine, auth.RoleViewer)

	url := "/api/v1/capacities/snapshot?operationId=op-cut&from=" + day0.Format(DateFormat) + "&to=" + day(2).Format(DateFormat)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		OperationID string `json:"operationId"`
		Days        []struct {
			Date      string `json:"date"`
			Available int    `json:"available"`
		} `json:"days"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.OperationID != "op-cut" || len(body.Days) != 3 {
		t.Fatalf("body: %+v", body)
	}
	for _, d := range body.Days {
		if d.Available != 10 {
			t.Errorf("day %s available: got %d, want 10", d.Date, d.Available)
		}
	}
}

func TestSnapshotEndpointValidation(t *testing.T) {
	engine, _, _ := setupEngine(t, cutPaintPipeline(10, 10))
	router := setupRouter(t, engine, auth.RoleViewer)

	cases := []struct {
		name string
		url  string
		want int
	}{
		{"missing operation", "/api/v1/capacities/snapshot", http.StatusBadRequest},
		{"bad date", "/api/v1/capacities/snapshot?operationId=op-cut&from=not-a-date", http.StatusBadRequest},
		{"unknown operation", "/api/v1/capacities/snapshot?operationId=nope", http.StatusNotFound},
		{"inverted range", "/api/v1/capacities/snapshot?operationId=op-cut&from=2026-03-05&to=2026-03-01", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != tc.want {
				t.Fatalf("status: got %d, want %d: %s", resp.Code, tc.want, resp.Body.String())
			}
		})
	}
}
