package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/learnhub/backend/internal/middleware"
	"github.com/learnhub/backend/internal/services"
	"github.com/learnhub/backend/internal/storage"
	"github.com/learnhub/backend/pkg/logger"
	"github.com/learnhub/backend/pkg/utils"
)

type UploadsHandler struct {
	Storage *storage.MinIOClient
	Access  *services.AccessService
}

func NewUploadsHandler(store *storage.MinIOClient, access *services.AccessService) *UploadsHandler {
	return &UploadsHandler{Storage: store, Access: access}
}

type uploadURLRequest struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

// Upload accepts course media from creators. Two modes: a multipart
// "file" part is stored in object storage and its canonical URL
// returned; a JSON body with fileUrl registers an externally hosted
// asset as-is.
func (h *UploadsHandler) Upload(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !h.Access.CanPublish(currentUser) {
		return utils.Error(c, fiber.StatusForbidden, "creator access required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		// No multipart part, fall back to the URL registration mode.
		return h.registerExternal(c)
	}

	if h.Storage == nil {
		return utils.Error(c, fiber.StatusServiceUnavailable, "file storage is not configured")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "failed reading uploaded file")
	}
	defer file.Close()

	fileName := filepath.Base(fileHeader.Filename)
	objectName := fmt.Sprintf("%s/%s/%s", currentUser.ID, uuid.New(), fileName)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.Storage.Upload(c.Context(), objectName, file, fileHeader.Size, contentType); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed storing file")
	}

	logger.InfoWithUser(currentUser.ID.String(), "media_uploaded", map[string]interface{}{
		"object_name": objectName,
		"size":        fileHeader.Size,
	})

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"fileUrl":  h.Storage.PublicURL(objectName),
		"fileName": fileName,
	})
}

func (h *UploadsHandler) registerExternal(c *fiber.Ctx) error {
	var req uploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "file or fileUrl is required")
	}

	req.FileURL = strings.TrimSpace(req.FileURL)
	if req.FileURL == "" {
		return utils.Error(c, fiber.StatusBadRequest, "file or fileUrl is required")
	}
	if !strings.HasPrefix(req.FileURL, "http://") && !strings.HasPrefix(req.FileURL, "https://") {
		return utils.Error(c, fiber.StatusBadRequest, "fileUrl must be an http or https URL")
	}

	fileName := strings.TrimSpace(req.FileName)
	if fileName == "" {
		fileName = filepath.Base(req.FileURL)
	}

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"fileUrl":  req.FileURL,
		"fileName": fileName,
	})
}
