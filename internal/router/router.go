package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinayakfood/website/backend/config"
	"github.com/vinayakfood/website/backend/internal/api"
	"github.com/vinayakfood/website/backend/internal/logger"
	"github.com/vinayakfood/website/backend/internal/middleware"
)

// Handlers groups the API handlers mounted by SetupRouter
type Handlers struct {
	Health    *api.HealthHandler
	Auth      *api.AuthHandler
	Dishes    *api.DishHandler
	Menu      *api.MenuHandler
	Images    *api.ImageHandler
	Dashboard *api.DashboardHandler
}

// SetupRouter configures the application routes
func SetupRouter(cfg config.ServerConfig, log *zap.Logger, h Handlers) *gin.Engine {
	router := gin.New()

	router.Use(
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RequestTimeout(cfg.RequestTimeout),
		middleware.ErrorHandler(log),
	)

	h.Health.RegisterRoutes(router)

	v1 := router.Group("/api/v1")
	h.Auth.RegisterRoutes(v1)
	h.Menu.RegisterRoutes(v1)
	h.Dishes.RegisterRoutes(v1)
	h.Images.RegisterRoutes(v1)
	h.Dashboard.RegisterRoutes(v1)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: "route not found"})
	})

	return router
}
