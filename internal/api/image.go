package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vinayakfood/website/backend/internal/middleware"
	"github.com/vinayakfood/website/backend/internal/service"
)

// multipartOverhead leaves room for form boundaries and headers around the file
const multipartOverhead = 64 << 10

// ImageHandler accepts image uploads for dishes and the menu banner
type ImageHandler struct {
	imageService service.IImageService
	authService  service.IAuthService
	maxBytes     int64
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService service.IImageService, authService service.IAuthService, maxBytes int64) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		authService:  authService,
		maxBytes:     maxBytes,
	}
}

// RegisterRoutes mounts the upload route
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/admin/uploads", middleware.AuthMiddleware(h.authService), h.Upload)
}

// Upload stores the multipart "file" field. The purpose (dish or menu) comes
// from the query string or a form field of the same name.
func (h *ImageHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	purposeRaw := c.Query("purpose")
	if purposeRaw == "" {
		purposeRaw = c.PostForm("purpose")
	}
	purpose, err := service.ParseUploadPurpose(purposeRaw)
	if err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, &service.ValidationError{Field: "file", Message: "file is too large"})
			return
		}
		badRequest(c, "multipart field \"file\" is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	// Read one byte past the limit so the service can reject oversize files
	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		respondError(c, err)
		return
	}

	image, err := h.imageService.Upload(c.Request.Context(), purpose, data, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, image)
}
