package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learnhub/backend/internal/metrics"
	"github.com/learnhub/backend/internal/middleware"
	"github.com/learnhub/backend/internal/services"
	"github.com/learnhub/backend/pkg/utils"
	"gorm.io/gorm"
)

type EnrollmentsHandler struct {
	DB          *gorm.DB
	Enrollments *services.EnrollmentService
	Activity    *services.ActivityService
}

func NewEnrollmentsHandler(db *gorm.DB, enrollments *services.EnrollmentService, activity *services.ActivityService) *EnrollmentsHandler {
	return &EnrollmentsHandler{DB: db, Enrollments: enrollments, Activity: activity}
}

func (h *EnrollmentsHandler) Enroll(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	courseID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid course id")
	}

	enrollment, err := h.Enrollments.Enroll(c.Context(), currentUser, courseID)
	if err != nil {
		return serviceError(c, err, "failed enrolling in course")
	}

	metrics.EnrollmentsTotal.Inc()

	h.Activity.RecordAsync(services.ActivityEntry{
		UserID:       currentUser.ID,
		ActorID:      currentUser.ID,
		Action:       "course.enrolled",
		ResourceType: "course",
		ResourceID:   &courseID,
		ResourceName: courseID.String(),
		Message:      "Successfully enrolled in course",
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "successfully enrolled in course",
		"enrollment": fiber.Map{
			"courseId":   enrollment.CourseID,
			"progress":   enrollment.Progress,
			"enrolledAt": enrollment.EnrolledAt,
		},
	})
}

type completeModuleRequest struct {
	ModuleID string `json:"moduleId"`
}

// CompleteModule marks one module finished and returns the recomputed
// enrollment progress.
func (h *EnrollmentsHandler) CompleteModule(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	courseID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid course id")
	}

	var req completeModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	moduleID, err := parseUUID(req.ModuleID)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid module id")
	}

	enrollment, err := h.Enrollments.CompleteModule(c.Context(), currentUser, courseID, moduleID)
	if err != nil {
		return serviceError(c, err, "failed updating progress")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"courseId":         enrollment.CourseID,
		"progress":         enrollment.Progress,
		"completedModules": enrollment.CompletedModules,
	})
}
