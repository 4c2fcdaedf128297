package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learnhub/backend/internal/middleware"
	"github.com/learnhub/backend/internal/services"
	"github.com/learnhub/backend/pkg/utils"
)

type DashboardHandler struct {
	Dashboards *services.DashboardService
}

func NewDashboardHandler(dashboards *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Dashboards: dashboards}
}

func (h *DashboardHandler) Creator(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	dashboard, err := h.Dashboards.Creator(c.Context(), currentUser.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed building creator dashboard")
	}

	return utils.Success(c, fiber.StatusOK, dashboard)
}

func (h *DashboardHandler) Learner(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	dashboard, err := h.Dashboards.Learner(c.Context(), currentUser.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed building learner dashboard")
	}

	return utils.Success(c, fiber.StatusOK, dashboard)
}
