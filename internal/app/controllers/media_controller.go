package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/middleware"
	"github.com/voiceofchrist/churchsite/internal/pkg/filestorage"
)

// mediaFolders maps the ?folder= values accepted by uploads to storage sub paths
var mediaFolders = map[string]string{
	"":           "media",
	"highlights": "media/highlights",
	"events":     "media/events",
	"pastors":    "media/pastors",
}

// MediaController handles image and video uploads
type MediaController struct {
	storage filestorage.MediaStorage
}

// NewMediaController creates a new MediaController
func NewMediaController(storage filestorage.MediaStorage) *MediaController {
	return &MediaController{
		storage: storage,
	}
}

// UploadMedia stores an uploaded image or video
// @Summary Upload media
// @Description Stores an image or video and returns the URL it is served from
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image or video file"
// @Param folder query string false "highlights, events or pastors"
// @Success 201 {object} dto.APIResponse{data=dto.MediaUploadResponse} "File stored"
// @Failure 400 {object} dto.ErrorResponse "Missing, oversized or unsupported file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Admin/media [post]
func (c *MediaController) UploadMedia(ctx *gin.Context) {
	subPath, ok := mediaFolders[ctx.Query("folder")]
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown media folder").WithField("folder")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, filestorage.ErrNoFile)
		return
	}

	info, err := c.storage.SaveMedia(fileHeader, subPath)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.MediaUploadResponse{
		URL:         info.URL,
		FileName:    info.Filename,
		ContentType: info.MimeType,
		Size:        info.FileSize,
	}, "File uploaded successfully"))
}
