package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"scheduler-backend/internal/admins"
	googleauth "scheduler-backend/internal/auth"
	"scheduler-backend/internal/capacities"
	"scheduler-backend/internal/operations"
	"scheduler-backend/internal/orders"
	"scheduler-backend/internal/scheduling"
	"scheduler-backend/internal/services/health"
	"scheduler-backend/internal/shared/config"
	"scheduler-backend/internal/shared/metrics"
	"scheduler-backend/internal/shared/server/middleware"
	"scheduler-backend/internal/shared/server/respond"
	"scheduler-backend/internal/users"
)

// RouterDeps collects the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	Health            *health.Service
	AdminHandler      *admins.Handler
	OperationsHandler *operations.Handler
	CapacitiesHandler *capacities.Handler
	OrdersHandler     *orders.Handler
	ScheduleHandler   *scheduling.Handler
	UsersHandler      *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"SCHEDULE": {Rate: 1, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && strings.HasSuffix(c.Request.URL.Path, "/schedule") {
					return "SCHEDULE"
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status(c.Request.Context()))
	})
	api.GET("/metrics", metrics.Handler())

	deps.AdminHandler.RegisterRoutes(api)
	deps.GoogleAuth.RegisterRoutes(api)
	deps.UsersHandler.RegisterRoutes(api)
	deps.OperationsHandler.RegisterRoutes(api)
	deps.CapacitiesHandler.RegisterRoutes(api)
	deps.OrdersHandler.RegisterRoutes(api)
	deps.ScheduleHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
