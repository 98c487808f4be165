package main

// Seed the production pipeline and, optionally, an admin account:
//   go run ./cmd/seed
//   go run ./cmd/seed -admin -username ops -password <secret>

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"scheduler-backend/internal/admins"
	"scheduler-backend/internal/operations"
	"scheduler-backend/internal/shared/config"
	"scheduler-backend/internal/shared/storage/db"
)

type seedOp struct {
	name  string
	limit int
}

// The glass processing pipeline in production order.
var pipeline = []seedOp{
	{"Dispensing", 500},
	{"Cutting", 400},
	{"Edge Polishing", 350},
	{"Edge Strengthening", 300},
	{"Splitting", 400},
	{"Acid Wash", 300},
	{"Tempering", 250},
	{"Surface Strengthening", 250},
	{"AOI", 450},
	{"Packing", 500},
}

func main() {
	createAdmin := flag.Bool("admin", false, "also create an admin account")
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}

	if err := seedOperations(ctx, &operations.PGRepo{DB: sqlDB}); err != nil {
		log.Printf("failed to seed operations: %v", err)
		os.Exit(1)
	}

	if *createAdmin {
		if err := seedAdmin(ctx, &admins.PGRepo{DB: sqlDB}, *username, *password); err != nil {
			log.Printf("failed to seed admin: %v", err)
			os.Exit(1)
		}
	}
}

func seedOperations(ctx context.Context, repo *operations.PGRepo) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]bool, len(existing))
	for _, op := range existing {
		byName[op.Name] = true
	}

	for i, step := range pipeline {
		if byName[step.name] {
			continue
		}
		err := repo.Create(ctx, operations.Operation{
			ID:                uuid.NewString(),
			Name:              step.name,
			SequenceIndex:     (i + 1) * 10,
			DefaultDailyLimit: step.limit,
			CreatedAt:         time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		log.Printf("seeded operation %q", step.name)
	}
	return nil
}

func seedAdmin(ctx context.Context, repo *admins.PGRepo, username, password string) error {
	svc := admins.NewService(repo)
	_, err := svc.Register(ctx, username, password, "")
	if errors.Is(err, admins.ErrConflict) {
		log.Printf("admin %q already exists", username)
		return nil
	}
	if err == nil {
		log.Printf("seeded admin %q", username)
	}
	return err
}
