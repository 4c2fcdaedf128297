package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/learnhub/backend/internal/metrics"
	"github.com/learnhub/backend/internal/middleware"
	"github.com/learnhub/backend/internal/models"
	"github.com/learnhub/backend/internal/services"
	"github.com/learnhub/backend/pkg/logger"
	"github.com/learnhub/backend/pkg/utils"
	"gorm.io/gorm"
)

type CoursesHandler struct {
	DB       *gorm.DB
	Access   *services.AccessService
	Catalog  *services.CatalogService
	Activity *services.ActivityService
}

func NewCoursesHandler(db *gorm.DB, access *services.AccessService, catalog *services.CatalogService, activity *services.ActivityService) *CoursesHandler {
	return &CoursesHandler{DB: db, Access: access, Catalog: catalog, Activity: activity}
}

// List serves the catalog page: optional exact category filter ("all"
// means none), case-insensitive substring search over title or
// description, newest first.
func (h *CoursesHandler) List(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)
	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	query := h.DB.Model(&models.Course{})
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed counting courses")
	}

	var courses []models.Course
	err := utils.ApplyPagination(query.Preload("Instructor").Order("created_at DESC"), p).
		Find(&courses).Error
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing courses")
	}

	return utils.Paginated(c, courses, p.Page, p.Limit, total)
}

type moduleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	Duration    int    `json:"duration"`
	IsFree      bool   `json:"isFree"`
}

type createCourseRequest struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	Thumbnail        string          `json:"thumbnail"`
	Price            float64         `json:"price"`
	Tags             []string        `json:"tags"`
	Requirements     []string        `json:"requirements"`
	LearningOutcomes []string        `json:"learningOutcomes"`
	Modules          []moduleRequest `json:"modules"`
}

func validateModules(modules []moduleRequest) string {
	for _, m := range modules {
		if strings.TrimSpace(m.Title) == "" {
			return "module title is required"
		}
		if strings.TrimSpace(m.Description) == "" {
			return "module description is required"
		}
		if strings.TrimSpace(m.VideoURL) == "" {
			return "module video URL is required"
		}
		if m.Duration <= 0 {
			return "module duration must be positive"
		}
	}
	return ""
}

func (h *CoursesHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if !h.Access.CanPublish(currentUser) {
		return utils.Error(c, fiber.StatusForbidden, "only creators can create courses")
	}

	var req createCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	switch {
	case req.Title == "" || len(req.Title) > 100:
		return utils.Error(c, fiber.StatusBadRequest, "title is required and cannot be more than 100 characters")
	case req.Description == "" || len(req.Description) > 1000:
		return utils.Error(c, fiber.StatusBadRequest, "description is required and cannot be more than 1000 characters")
	case !models.ValidCategory(req.Category):
		return utils.Error(c, fiber.StatusBadRequest, "invalid category")
	case strings.TrimSpace(req.Thumbnail) == "":
		return utils.Error(c, fiber.StatusBadRequest, "thumbnail is required")
	case req.Price < 0:
		return utils.Error(c, fiber.StatusBadRequest, "price cannot be negative")
	}
	if msg := validateModules(req.Modules); msg != "" {
		return utils.Error(c, fiber.StatusBadRequest, msg)
	}

	course := models.Course{
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Thumbnail:        strings.TrimSpace(req.Thumbnail),
		InstructorID:     currentUser.ID,
		Price:            req.Price,
		IsFree:           req.Price == 0,
		Status:           models.CourseStatusPublished,
		Tags:             req.Tags,
		Requirements:     req.Requirements,
		LearningOutcomes: req.LearningOutcomes,
	}

	if err := h.DB.Create(&course).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating course")
	}

	for i, m := range req.Modules {
		module := models.CourseModule{
			CourseID:    course.ID,
			Title:       strings.TrimSpace(m.Title),
			Description: strings.TrimSpace(m.Description),
			VideoURL:    strings.TrimSpace(m.VideoURL),
			Duration:    m.Duration,
			OrderIndex:  i + 1,
			IsFree:      m.IsFree,
		}
		if err := h.DB.Create(&module).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed creating course module")
		}
	}

	if err := h.Catalog.RefreshDerived(c.Context(), course.ID); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed refreshing course stats")
	}

	var created models.Course
	err := h.DB.Preload("Instructor").Preload("Modules", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("order_index ASC")
	}).First(&created, "id = ?", course.ID).Error
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed fetching created course")
	}

	metrics.CoursesCreatedTotal.Inc()

	logger.InfoWithUser(currentUser.ID.String(), "course_created", map[string]interface{}{
		"course_id": created.ID.String(),
		"title":     created.Title,
		"category":  created.Category,
		"modules":   len(created.Modules),
	})

	h.Activity.RecordAsync(services.ActivityEntry{
		UserID:       currentUser.ID,
		ActorID:      currentUser.ID,
		Action:       "course.created",
		ResourceType: "course",
		ResourceID:   &created.ID,
		ResourceName: created.Title,
		Message:      "You published " + created.Title,
	})

	return utils.Success(c, fiber.StatusCreated, created)
}

// Get returns the course with enrollment context for the caller.
// Anonymous and non-enrolled callers see isEnrolled=false, progress 0.
func (h *CoursesHandler) Get(c *fiber.Ctx) error {
	courseID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid course id")
	}

	var course models.Course
	err = h.DB.Preload("Instructor").
		Preload("Modules", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index ASC")
		}).
		Preload("Ratings").Preload("Ratings.User").
		First(&course, "id = ?", courseID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "course not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed fetching course")
	}

	isEnrolled := false
	enrollmentProgress := 0
	if currentUser := middleware.GetCurrentUser(c); currentUser != nil {
		enrollment, err := h.Access.Enrollment(c.Context(), currentUser.ID, courseID)
		if err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed checking enrollment")
		}
		if enrollment != nil {
			isEnrolled = true
			enrollmentProgress = enrollment.Progress
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"course":             course,
		"isEnrolled":         isEnrolled,
		"enrollmentProgress": enrollmentProgress,
	})
}

type updateCourseRequest struct {
	Title            *string             `json:"title"`
	Description      *string             `json:"description"`
	Category         *string             `json:"category"`
	Thumbnail        *string             `json:"thumbnail"`
	Price            *float64            `json:"price"`
	Status           *models.CourseStatus `json:"status"`
	Tags             *[]string           `json:"tags"`
	Requirements     *[]string           `json:"requirements"`
	LearningOutcomes *[]string           `json:"learningOutcomes"`
	Modules          *[]moduleRequest    `json:"modules"`
}

func (h *CoursesHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)

	courseID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid course id")
	}

	var course models.Course
	if err := h.DB.First(&course, "id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "course not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed fetching course")
	}

	if !h.Access.CanManageCourse(currentUser, &course) {
		return utils.Error(c, fiber.StatusForbidden, "you can only update your own courses")
	}

	var req updateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	changed := false
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" || len(value) > 100 {
			return utils.Error(c, fiber.StatusBadRequest, "title is required and cannot be more than 100 characters")
		}
		course.Title = value
		changed = true
	}
	if req.Description != nil {
		value := strings.TrimSpace(*req.Description)
		if value == "" || len(value) > 1000 {
			return utils.Error(c, fiber.StatusBadRequest, "description is required and cannot be more than 1000 characters")
		}
		course.Description = value
		changed = true
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			return utils.Error(c, fiber.StatusBadRequest, "invalid category")
		}
		course.Category = *req.Category
		changed = true
	}
	if req.Thumbnail != nil {
		value := strings.TrimSpace(*req.Thumbnail)
		if value == "" {
			return utils.Error(c, fiber.StatusBadRequest, "thumbnail is required")
		}
		course.Thumbnail = value
		changed = true
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return utils.Error(c, fiber.StatusBadRequest, "price cannot be negative")
		}
		course.Price = *req.Price
		course.IsFree = *req.Price == 0
		changed = true
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return utils.Error(c, fiber.StatusBadRequest, "invalid status")
		}
		course.Status = *req.Status
		changed = true
	}
	if req.Tags != nil {
		course.Tags = *req.Tags
		changed = true
	}
	if req.Requirements != nil {
		course.Requirements = *req.Requirements
		changed = true
	}
	if req.LearningOutcomes != nil {
		course.LearningOutcomes = *req.LearningOutcomes
		changed = true
	}

	if !changed && req.Modules == nil {
		return utils.Error(c, fiber.StatusBadRequest, "no valid fields to update")
	}

	if changed {
		if err := h.DB.Save(&course).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed updating course")
		}
	}

	if req.Modules != nil {
		if msg := validateModules(*req.Modules); msg != "" {
			return utils.Error(c, fiber.StatusBadRequest, msg)
		}
		if err := h.DB.Where("course_id = ?", courseID).Delete(&models.CourseModule{}).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed replacing course modules")
		}
		for i, m := range *req.Modules {
			module := models.CourseModule{
				CourseID:    courseID,
				Title:       strings.TrimSpace(m.Title),
				Description: strings.TrimSpace(m.Description),
				VideoURL:    strings.TrimSpace(m.VideoURL),
				Duration:    m.Duration,
				OrderIndex:  i + 1,
				IsFree:      m.IsFree,
			}
			if err := h.DB.Create(&module).Error; err != nil {
				return utils.Error(c, fiber.StatusInternalServerError, "failed replacing course modules")
			}
		}
	}

	if err := h.Catalog.RefreshDerived(c.Context(), courseID); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed refreshing course stats")
	}

	var updated models.Course
	err = h.DB.Preload("Instructor").Preload("Modules", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("order_index ASC")
	}).First(&updated, "id = ?", courseID).Error
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed fetching updated course")
	}

	return utils.Success(c, fiber.StatusOK, updated)
}

// Delete accepts the course id either as a path param or as the "id"
// query string, mirroring the public API shape.
func (h *CoursesHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)

	raw := c.Params("id")
	if raw == "" {
		raw = c.Query("id")
	}
	if strings.TrimSpace(raw) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "course id is required")
	}

	courseID, err := parseUUID(raw)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid course id")
	}

	if err := h.Catalog.DeleteCourse(c.Context(), currentUser, courseID); err != nil {
		if err == services.ErrForbidden {
			return utils.Error(c, fiber.StatusForbidden, "you can only delete your own courses")
		}
		return serviceError(c, err, "failed deleting course")
	}

	h.Activity.RecordAsync(services.ActivityEntry{
		UserID:       currentUser.ID,
		ActorID:      currentUser.ID,
		Action:       "course.deleted",
		ResourceType: "course",
		ResourceID:   &courseID,
		ResourceName: raw,
		Message:      "Course deleted",
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "course deleted successfully"})
}

type rateCourseRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

func (h *CoursesHandler) Rate(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	courseID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid course id")
	}

	var req rateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Rating < 1 || req.Rating > 5 {
		return utils.Error(c, fiber.StatusBadRequest, "rating must be between 1 and 5")
	}
	if len(req.Review) > 500 {
		return utils.Error(c, fiber.StatusBadRequest, "review cannot be more than 500 characters")
	}

	rating, err := h.Catalog.RateCourse(c.Context(), currentUser, courseID, req.Rating, strings.TrimSpace(req.Review))
	if err != nil {
		return serviceError(c, err, "failed rating course")
	}

	logger.InfoWithUser(currentUser.ID.String(), "course_rated", map[string]interface{}{
		"course_id": courseID.String(),
		"rating":    req.Rating,
	})

	return utils.Success(c, fiber.StatusOK, rating)
}
