package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vinayakfood/website/backend/internal/middleware"
	"github.com/vinayakfood/website/backend/internal/service"
	"github.com/vinayakfood/website/backend/internal/types"
)

// MenuHandler serves the public menu and the editable menu page copy
type MenuHandler struct {
	projector      service.IMenuProjector
	contentService service.IMenuContentService
	authService    service.IAuthService
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(projector service.IMenuProjector, contentService service.IMenuContentService, authService service.IAuthService) *MenuHandler {
	return &MenuHandler{
		projector:      projector,
		contentService: contentService,
		authService:    authService,
	}
}

// RegisterRoutes mounts the public menu and the admin menu content routes
func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	menu := router.Group("/menu")
	{
		menu.GET("", h.GetMenu)
		menu.GET("/content", h.GetContent)
	}

	admin := router.Group("/admin/menu-content", middleware.AuthMiddleware(h.authService))
	{
		admin.GET("", h.GetContent)
		admin.PUT("", h.UpdateContent)
	}
}

// GetMenu returns the public menu: hero copy plus available dishes by category
func (h *MenuHandler) GetMenu(c *gin.Context) {
	menu, err := h.projector.Render(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, menu)
}

// GetContent returns the menu hero record
func (h *MenuHandler) GetContent(c *gin.Context) {
	content, err := h.contentService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}

// UpdateContent applies a partial update to the menu hero record
func (h *MenuHandler) UpdateContent(c *gin.Context) {
	var req types.UpdateMenuContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	content, err := h.contentService.Update(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}
