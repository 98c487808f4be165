package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"scheduler-backend/internal/shared/auth"
)

func authTestRouter(env string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(env))
	router.GET("/api/v1/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": UserIDFromContext(c),
			"role":   RoleFromContext(c),
		})
	})
	router.POST("/api/v1/operations", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	router.GET("/api/v1/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	router := authTestRouter("dev")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthLeavesHealthOpen(t *testing.T) {
	router := authTestRouter("production")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingIdentity(t *testing.T) {
	router := authTestRouter("production")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	router := authTestRouter("production")

	token, err := auth.SignJWT(auth.Claims{Sub: "admin:1", Role: auth.RoleAdmin})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	router := authTestRouter("production")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestGuestRoleDependsOnEnv(t *testing.T) {
	cases := []struct {
		env       string
		writeCode int
	}{
		{env: "dev", writeCode: http.StatusCreated},
		{env: "production", writeCode: http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.env, func(t *testing.T) {
			router := authTestRouter(tc.env)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", nil)
			req.Header.Set("X-Guest-Id", "guest-123")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tc.writeCode {
				t.Fatalf("expected %d, got %d", tc.writeCode, resp.Code)
			}
		})
	}
}

func TestViewerTokenCannotMutate(t *testing.T) {
	router := authTestRouter("production")

	token, err := auth.SignJWT(auth.Claims{Sub: "google:123", Role: auth.RoleViewer})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}
