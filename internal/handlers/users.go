package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/learnhub/backend/internal/middleware"
	"github.com/learnhub/backend/internal/models"
	"github.com/learnhub/backend/internal/services"
	"github.com/learnhub/backend/pkg/logger"
	"github.com/learnhub/backend/pkg/utils"
	"gorm.io/gorm"
)

type UsersHandler struct {
	DB       *gorm.DB
	Activity *services.ActivityService
}

func NewUsersHandler(db *gorm.DB, activity *services.ActivityService) *UsersHandler {
	return &UsersHandler{DB: db, Activity: activity}
}

// GetProfile returns the caller's own profile. PasswordHash is excluded
// by the model's json tag, never by handler filtering.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", currentUser.ID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed fetching profile")
	}

	return utils.Success(c, fiber.StatusOK, user)
}

type updateProfileRequest struct {
	Name        *string             `json:"name"`
	Bio         *string             `json:"bio"`
	Avatar      *string             `json:"avatar"`
	SocialLinks *models.SocialLinks `json:"socialLinks"`
}

func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", currentUser.ID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed fetching profile")
	}

	changed := false
	if req.Name != nil {
		value := strings.TrimSpace(*req.Name)
		if value == "" || len(value) > 50 {
			return utils.Error(c, fiber.StatusBadRequest, "name is required and cannot be more than 50 characters")
		}
		user.Name = value
		changed = true
	}
	if req.Bio != nil {
		if len(*req.Bio) > 500 {
			return utils.Error(c, fiber.StatusBadRequest, "bio cannot be more than 500 characters")
		}
		user.Bio = *req.Bio
		changed = true
	}
	if req.Avatar != nil {
		user.Avatar = strings.TrimSpace(*req.Avatar)
		changed = true
	}
	if req.SocialLinks != nil {
		user.SocialLinks = *req.SocialLinks
		changed = true
	}

	if !changed {
		return utils.Error(c, fiber.StatusBadRequest, "no valid fields to update")
	}

	if err := h.DB.Save(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating profile")
	}

	logger.InfoWithUser(user.ID.String(), "profile_updated", nil)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "profile updated successfully",
		"user":    user,
	})
}

// BecomeCreator promotes the caller from learner to creator so they can
// publish courses.
func (h *UsersHandler) BecomeCreator(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if currentUser.Role == models.UserRoleAdmin || currentUser.Role == models.UserRoleCreator {
		return utils.Success(c, fiber.StatusOK, fiber.Map{
			"message": "role unchanged",
			"role":    currentUser.Role,
		})
	}

	err := h.DB.Model(&models.User{}).
		Where("id = ?", currentUser.ID).
		Update("role", models.UserRoleCreator).Error
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating role")
	}

	logger.InfoWithUser(currentUser.ID.String(), "role_updated", map[string]interface{}{
		"role": string(models.UserRoleCreator),
	})

	h.Activity.RecordAsync(services.ActivityEntry{
		UserID:       currentUser.ID,
		ActorID:      currentUser.ID,
		Action:       "user.role_updated",
		ResourceType: "user",
		ResourceID:   &currentUser.ID,
		ResourceName: currentUser.Name,
		Message:      "You are now a creator",
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "role updated to creator",
		"role":    models.UserRoleCreator,
	})
}

// List is the admin user listing with optional substring search.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)
	search := strings.TrimSpace(c.Query("search"))

	query := h.DB.Model(&models.User{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed counting users")
	}

	var users []models.User
	if err := utils.ApplyPagination(query.Order("created_at DESC"), p).Find(&users).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing users")
	}

	return utils.Paginated(c, users, p.Page, p.Limit, total)
}
