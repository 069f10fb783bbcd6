package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"

	"letterflow/internal/blob"
	"letterflow/internal/config"
	"letterflow/internal/db"
	"letterflow/internal/gelf"
	"letterflow/internal/handler"
	"letterflow/internal/notify"
	"letterflow/internal/repository"
	"letterflow/internal/router"
	"letterflow/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr)
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	// Connect to Postgres
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	log.Printf("Database connected")

	// Repositories
	userRepo := repository.NewUserRepo(pool)
	tplRepo := repository.NewTemplateRepo(pool)
	subRepo := repository.NewSubmissionRepo(pool)

	// Collaborators
	blobs := blob.New(cfg.BlobBaseURL)
	notifier := notify.New()

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	tplSvc := service.NewTemplateService(tplRepo)
	subSvc := service.NewSubmissionService(subRepo, tplRepo, blobs, notifier)
	viewSvc := service.NewViewService(subRepo)

	// Seed reference data and demo accounts
	if err := tplSvc.SeedDefaults(ctx); err != nil {
		log.Printf("Warning: failed to seed templates: %v", err)
	}
	if cfg.SeedDemo {
		if err := authSvc.SeedUsers(ctx, cfg.DemoPass); err != nil {
			log.Printf("Warning: failed to seed demo users: %v", err)
		}
	}

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	tplH := handler.NewTemplateHandler(tplSvc)
	subH := handler.NewSubmissionHandler(subSvc, viewSvc)
	dashH := handler.NewDashboardHandler(viewSvc)

	// Router
	r := router.New(cfg.JWTSecret, authH, tplH, subH, dashH)

	log.Printf("letterflow server starting on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
