package controllers

import (
	"errors"
	"io"
	"net/http"

	"archblog/services"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	uploadService *services.UploadService
}

func NewUploadController(uploadService *services.UploadService) *UploadController {
	return &UploadController{uploadService: uploadService}
}

// multipartOverhead leaves room for boundaries and headers around the file part.
const multipartOverhead = 64 << 10

// Upload godoc
// @Summary Upload a post image
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "JPEG, PNG, GIF or WEBP up to 3MB"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /upload [post]
func (uc *UploadController) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uc.uploadService.MaxBytes()+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, services.ErrImageTooLarge, "Failed to upload image")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if fileHeader.Size > uc.uploadService.MaxBytes() {
		respondError(c, services.ErrImageTooLarge, "Failed to upload image")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, "Failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, uc.uploadService.MaxBytes()+1))
	if err != nil {
		respondError(c, err, "Failed to read upload")
		return
	}

	url, err := uc.uploadService.Upload(c.Request.Context(), fileHeader.Header.Get("Content-Type"), fileHeader.Filename, data)
	if err != nil {
		respondError(c, err, "Failed to upload image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
