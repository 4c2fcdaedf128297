package handlers

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/learnhub/backend/internal/middleware"
	"github.com/learnhub/backend/internal/models"
	"github.com/learnhub/backend/internal/services"
	"github.com/learnhub/backend/pkg/logger"
	"github.com/learnhub/backend/pkg/utils"
	"gorm.io/gorm"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		gosqlite.MustRegisterScalarFunction("NOW", 0, func(ctx *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			return time.Now().UTC(), nil
		})
		logger.Init()
		utils.ConfigureJWT("test-secret", 24)
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseModule{},
		&models.Rating{},
		&models.Enrollment{},
		&models.Activity{},
	)
	if err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	accessService := services.NewAccessService(db)
	catalogService := services.NewCatalogService(db, accessService)
	enrollmentService := services.NewEnrollmentService(db, catalogService)
	dashboardService := services.NewDashboardService(db)
	activityService := services.NewActivityService(db)

	authHandler := NewAuthHandler(db, activityService)
	usersHandler := NewUsersHandler(db, activityService)
	coursesHandler := NewCoursesHandler(db, accessService, catalogService, activityService)
	enrollmentsHandler := NewEnrollmentsHandler(db, enrollmentService, activityService)
	dashboardHandler := NewDashboardHandler(dashboardService)
	uploadsHandler := NewUploadsHandler(nil, accessService)
	activitiesHandler := NewActivitiesHandler(db)
	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New(fiber.Config{BodyLimit: 32 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

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

	return &testEnv{app: app, db: db}
}

func createTestUser(t *testing.T, db *gorm.DB, email, password string, role models.UserRole) (*models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed hashing password: %v", err)
	}

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating test user: %v", err)
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed generating auth token: %v", err)
	}

	return user, token
}

func createTestCourse(t *testing.T, db *gorm.DB, instructorID uuid.UUID, title string, price float64, durations ...int) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:        title,
		Description:  "A course used by the handler tests",
		Thumbnail:    "https://cdn.example.com/thumb.png",
		Category:     "Programming",
		InstructorID: instructorID,
		Price:        price,
		IsFree:       price == 0,
		Status:       models.CourseStatusPublished,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed creating test course: %v", err)
	}

	for i, duration := range durations {
		module := &models.CourseModule{
			CourseID:    course.ID,
			Title:       "Module",
			Description: "Module description",
			VideoURL:    "https://cdn.example.com/video.mp4",
			Duration:    duration,
			OrderIndex:  i + 1,
		}
		if err := db.Create(module).Error; err != nil {
			t.Fatalf("failed creating test module: %v", err)
		}
		course.Modules = append(course.Modules, *module)
	}

	return course
}

func authHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertEnvelopeError(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false, got %+v", body)
	}
	if got, _ := body["error"].(string); got != expected {
		t.Fatalf("expected error %q, got %q", expected, got)
	}
}
