package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/interno-studio/interno-backend/internal/errors"
	"github.com/interno-studio/interno-backend/internal/middleware"
	"github.com/interno-studio/interno-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3Storage *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: s3Storage,
	}
}

type AvatarUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size" binding:"required,gt=0"`
}

// PresignAvatar issues a pre-signed S3 PUT URL for a profile picture
// POST /api/v1/uploads/avatar
func (ctrl *UploadController) PresignAvatar(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Filename, content type and size are required")
		return
	}

	resp, err := ctrl.storage.PresignAvatarUpload(req.Filename, req.ContentType, req.Size)
	if err != nil {
		log.Warn("Rejected avatar upload", map[string]interface{}{
			"content_type": req.ContentType,
			"size":         req.Size,
			"error":        err.Error(),
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}
