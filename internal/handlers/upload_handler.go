package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

// UploadHandler accepts media uploads and returns their public URL.
type UploadHandler struct {
	storage *services.StorageService
	log     *logrus.Logger
}

func NewUploadHandler(storage *services.StorageService, log *logrus.Logger) *UploadHandler {
	return &UploadHandler{storage: storage, log: log}
}

// Upload stores one image and returns its public URL.
// POST /api/v1/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		validationError(c, "Thiếu file", "file")
		return
	}

	folder := strings.Trim(c.DefaultPostForm("folder", "products"), "/")
	if folder == "" || strings.Contains(folder, "..") {
		validationError(c, "Invalid folder", "folder")
		return
	}

	url, err := h.storage.Upload(c.Request.Context(), folder, file)
	if err != nil {
		h.log.WithError(err).Error("Upload failed")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "UPLOAD_FAILED", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    gin.H{"url": url},
	})
}
