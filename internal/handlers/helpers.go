package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/learnhub/backend/internal/services"
	"github.com/learnhub/backend/pkg/utils"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// serviceError maps a service sentinel to its HTTP status; anything
// unrecognized is an infrastructure failure.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch err {
	case services.ErrCourseNotFound, services.ErrUserNotFound, services.ErrModuleNotFound:
		return utils.Error(c, fiber.StatusNotFound, err.Error())
	case services.ErrAlreadyEnrolled, services.ErrNotEnrolled:
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	case services.ErrForbidden:
		return utils.Error(c, fiber.StatusForbidden, err.Error())
	default:
		return utils.Error(c, fiber.StatusInternalServerError, fallback)
	}
}
