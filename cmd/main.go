package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"palletdock/internal/caching"
	"palletdock/internal/config"
	"palletdock/internal/handlers"
	"palletdock/internal/jobs"
	"palletdock/internal/jobs/background"
	"palletdock/internal/repositories"
	"palletdock/internal/services"
	"palletdock/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	// Create database connection pool
	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to apply database schema: %v", err)
	}

	// Create repositories
	palletRepo := repositories.NewPalletRepo(pool)
	boxRepo := repositories.NewBoxRepo(pool)
	poolRepo := repositories.NewContainerPoolRepo(pool)

	// Seed pallets and the container pool on first startup
	loader := services.NewInitDataLoader(palletRepo, poolRepo)
	if err := loader.Run(ctx); err != nil {
		log.Fatalf("Failed to seed initial data: %v", err)
	}

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Create services
	sequencer := services.NewAppointmentSequencer()
	assignmentSvc := services.NewAssignmentService(pool, palletRepo, boxRepo, poolRepo, sequencer, cacheSvc, cfg.CacheTTL)
	availabilitySvc := services.NewAvailabilityService(palletRepo, boxRepo, cacheSvc, cfg.CacheTTL)

	// Background pool consistency audit
	auditor := jobs.NewPoolAuditor(poolRepo, boxRepo)
	scheduler := background.NewJobScheduler(auditor, cfg.AuditInterval)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create handlers
	assignmentHandlers := handlers.NewAssignmentHandlers(assignmentSvc)
	palletHandlers := handlers.NewPalletHandlers(availabilitySvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/metrics", healthHandlers.GetMetrics)

	// API routes
	v1 := e.Group("/v1")
	v1.POST("/assignments", assignmentHandlers.AssignBox)
	v1.GET("/pallets", assignmentHandlers.ListGrouped)
	v1.GET("/pallets/:id/boxes", assignmentHandlers.ListBoxes)
	v1.POST("/pallets/availability", palletHandlers.CheckAvailability)
	v1.DELETE("/pallets/:id/boxes", assignmentHandlers.DeleteByPallet)
	v1.DELETE("/boxes/:id", assignmentHandlers.DeleteBox)

	log.Printf("Palletdock server v%s starting on port %s", version, cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
