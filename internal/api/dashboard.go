package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vinayakfood/website/backend/internal/middleware"
	"github.com/vinayakfood/website/backend/internal/service"
)

// DashboardHandler serves the admin landing page summary
type DashboardHandler struct {
	dishService service.IDishService
	authService service.IAuthService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dishService service.IDishService, authService service.IAuthService) *DashboardHandler {
	return &DashboardHandler{
		dishService: dishService,
		authService: authService,
	}
}

// RegisterRoutes mounts the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/admin/dashboard/stats", middleware.AuthMiddleware(h.authService), h.GetStats)
}

// GetStats returns dish counts for the dashboard cards
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dishService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
