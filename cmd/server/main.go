package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/learnhub/backend/internal/config"
	"github.com/learnhub/backend/internal/database"
	"github.com/learnhub/backend/internal/handlers"
	"github.com/learnhub/backend/internal/metrics"
	"github.com/learnhub/backend/internal/middleware"
	"github.com/learnhub/backend/internal/services"
	"github.com/learnhub/backend/internal/storage"
	"github.com/learnhub/backend/pkg/logger"
	"github.com/learnhub/backend/pkg/utils"
)

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)
	metrics.Init()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	storageClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("minio initialization failed: %v", err)
	}
	if err := storageClient.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("failed ensuring minio bucket: %v", err)
	}

	accessService := services.NewAccessService(db)
	catalogService := services.NewCatalogService(db, accessService)
	enrollmentService := services.NewEnrollmentService(db, catalogService)
	dashboardService := services.NewDashboardService(db)
	activityService := services.NewActivityService(db)

	authHandler := handlers.NewAuthHandler(db, activityService)
	usersHandler := handlers.NewUsersHandler(db, activityService)
	coursesHandler := handlers.NewCoursesHandler(db, accessService, catalogService, activityService)
	enrollmentsHandler := handlers.NewEnrollmentsHandler(db, enrollmentService, activityService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	uploadsHandler := handlers.NewUploadsHandler(storageClient, accessService)
	activitiesHandler := handlers.NewActivitiesHandler(db)

	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New(fiber.Config{BodyLimit: cfg.Server.BodyLimit * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.HTTPMetrics())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)

	courseRoutes := api.Group("/courses")
	courseRoutes.Get("/", coursesHandler.List)
	courseRoutes.Post("/", authMiddleware.RequireAuth, coursesHandler.Create)
	courseRoutes.Delete("/", authMiddleware.RequireAuth, coursesHandler.Delete)
	courseRoutes.Get("/:id", authMiddleware.OptionalAuth, coursesHandler.Get)
	courseRoutes.Put("/:id", authMiddleware.RequireAuth, coursesHandler.Update)
	courseRoutes.Delete("/:id", authMiddleware.RequireAuth, coursesHandler.Delete)
	courseRoutes.Post("/:id/enroll", authMiddleware.RequireAuth, enrollmentsHandler.Enroll)
	courseRoutes.Post("/:id/ratings", authMiddleware.RequireAuth, coursesHandler.Rate)
	courseRoutes.Post("/:id/progress", authMiddleware.RequireAuth, enrollmentsHandler.CompleteModule)

	dashboardRoutes := api.Group("/dashboard", authMiddleware.RequireAuth)
	dashboardRoutes.Get("/creator", dashboardHandler.Creator)
	dashboardRoutes.Get("/learner", dashboardHandler.Learner)

	api.Get("/profile", authMiddleware.RequireAuth, usersHandler.GetProfile)
	api.Put("/profile", authMiddleware.RequireAuth, usersHandler.UpdateProfile)
	api.Post("/users/role", authMiddleware.RequireAuth, usersHandler.BecomeCreator)
	api.Get("/users", authMiddleware.RequireAuth, middleware.AdminOnly, usersHandler.List)

	api.Post("/uploads", authMiddleware.RequireAuth, uploadsHandler.Upload)

	activityRoutes := api.Group("/activities", authMiddleware.RequireAuth)
	activityRoutes.Get("/", activitiesHandler.List)
	activityRoutes.Get("/unread-count", activitiesHandler.UnreadCount)
	activityRoutes.Put("/read-all", activitiesHandler.MarkAllRead)
	activityRoutes.Put("/:id/read", activitiesHandler.MarkRead)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":       cfg.Server.Port,
		"address":    listenAddr,
		"body_limit": fmt.Sprintf("%dMB", cfg.Server.BodyLimit),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
