package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
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
	"scheduler-backend/internal/shared/server"
	"scheduler-backend/internal/shared/storage/db"
	"scheduler-backend/internal/users"
)

// App holds shared dependencies built once at startup.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	OperationsRepo operations.Repo
	CapacitiesRepo capacities.Repo
	OrdersRepo     orders.Repo
	EntriesRepo    scheduling.EntriesRepo
	AdminsRepo     admins.Repo
	UsersRepo      users.Repo

	OperationsService *operations.Service
	CapacitiesService *capacities.Service
	OrdersService     *orders.Service
	AdminsService     *admins.Service
	UsersService      *users.Service
	HealthService     *health.Service
	Engine            *scheduling.Engine

	OperationsHandler *operations.Handler
	CapacitiesHandler *capacities.Handler
	OrdersHandler     *orders.Handler
	ScheduleHandler   *scheduling.Handler
	AdminHandler      *admins.Handler
	UsersHandler      *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		Health:            app.HealthService,
		AdminHandler:      app.AdminHandler,
		OperationsHandler: app.OperationsHandler,
		CapacitiesHandler: app.CapacitiesHandler,
		OrdersHandler:     app.OrdersHandler,
		ScheduleHandler:   app.ScheduleHandler,
		UsersHandler:      app.UsersHandler,
		GoogleAuth:        app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildServices(app *App) {
	var committer scheduling.Committer
	if app.DB != nil {
		app.OperationsRepo = &operations.PGRepo{DB: app.DB}
		app.CapacitiesRepo = &capacities.PGRepo{DB: app.DB}
		app.OrdersRepo = &orders.PGRepo{DB: app.DB}
		app.EntriesRepo = &scheduling.PGEntriesRepo{DB: app.DB}
		app.AdminsRepo = &admins.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		committer = &scheduling.PGCommitter{DB: app.DB}
	} else {
		app.OperationsRepo = operations.NewMemoryRepo()
		app.CapacitiesRepo = capacities.NewMemoryRepo()
		app.OrdersRepo = orders.NewMemoryRepo()
		app.EntriesRepo = scheduling.NewMemoryEntriesRepo()
		app.AdminsRepo = admins.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
		committer = &scheduling.RepoCommitter{
			Orders:     app.OrdersRepo,
			Capacities: app.CapacitiesRepo,
			Entries:    app.EntriesRepo,
		}
	}

	app.OperationsService = &operations.Service{Repo: app.OperationsRepo, Entries: app.EntriesRepo}
	app.CapacitiesService = &capacities.Service{Repo: app.CapacitiesRepo, Operations: app.OperationsRepo}
	app.OrdersService = &orders.Service{Repo: app.OrdersRepo}
	app.AdminsService = admins.NewService(app.AdminsRepo)
	app.UsersService = users.NewService(app.UsersRepo)
	app.HealthService = health.NewService(app.DB)

	app.Engine = &scheduling.Engine{
		Operations:  app.OperationsRepo,
		Capacities:  app.CapacitiesRepo,
		Orders:      app.OrdersRepo,
		Entries:     app.EntriesRepo,
		Committer:   committer,
		HorizonDays: app.Config.HorizonDays,
	}

	app.OperationsHandler = operations.NewHandler(app.OperationsService)
	app.CapacitiesHandler = capacities.NewHandler(app.CapacitiesService)
	app.OrdersHandler = orders.NewHandler(app.OrdersService)
	app.ScheduleHandler = scheduling.NewHandler(app.Engine)
	app.AdminHandler = admins.NewHandler(app.AdminsService)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
