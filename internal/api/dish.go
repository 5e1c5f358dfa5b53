package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vinayakfood/website/backend/internal/middleware"
	"github.com/vinayakfood/website/backend/internal/service"
	"github.com/vinayakfood/website/backend/internal/types"
)

// DishHandler serves the admin dish catalogue
type DishHandler struct {
	dishService service.IDishService
	authService service.IAuthService
}

// NewDishHandler creates a new DishHandler
func NewDishHandler(dishService service.IDishService, authService service.IAuthService) *DishHandler {
	return &DishHandler{
		dishService: dishService,
		authService: authService,
	}
}

// RegisterRoutes mounts the admin dish routes
func (h *DishHandler) RegisterRoutes(router *gin.RouterGroup) {
	dishes := router.Group("/admin/dishes", middleware.AuthMiddleware(h.authService))
	{
		dishes.GET("", h.ListDishes)
		dishes.GET("/:id", h.GetDish)
		dishes.POST("", h.CreateDish)
		dishes.PATCH("/:id", h.UpdateDish)
		dishes.POST("/:id/toggle-availability", h.ToggleAvailability)
		dishes.DELETE("/:id", h.DeleteDish)
	}
}

// ListDishes returns every dish newest first; ?available=true narrows to available dishes
func (h *DishHandler) ListDishes(c *gin.Context) {
	var filter service.DishFilter
	if raw := c.Query("available"); raw != "" {
		availableOnly, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "available must be true or false")
			return
		}
		filter.AvailableOnly = availableOnly
	}

	dishes, err := h.dishService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dishes": dishes,
		"count":  len(dishes),
	})
}

// GetDish returns a single dish
func (h *DishHandler) GetDish(c *gin.Context) {
	id, ok := dishID(c)
	if !ok {
		return
	}

	dish, err := h.dishService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dish": dish})
}

// CreateDish adds a dish to the catalogue
func (h *DishHandler) CreateDish(c *gin.Context) {
	var req types.CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	dish, err := h.dishService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"dish": dish})
}

// UpdateDish changes only the fields present in the body
func (h *DishHandler) UpdateDish(c *gin.Context) {
	id, ok := dishID(c)
	if !ok {
		return
	}

	var req types.UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	dish, err := h.dishService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dish": dish})
}

// ToggleAvailability flips whether a dish is shown on the public menu
func (h *DishHandler) ToggleAvailability(c *gin.Context) {
	id, ok := dishID(c)
	if !ok {
		return
	}

	dish, err := h.dishService.ToggleAvailability(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dish": dish})
}

// DeleteDish permanently removes a dish. The caller must pass confirm=true.
func (h *DishHandler) DeleteDish(c *gin.Context) {
	id, ok := dishID(c)
	if !ok {
		return
	}

	if confirmed, _ := strconv.ParseBool(c.Query("confirm")); !confirmed {
		c.AbortWithStatusJSON(http.StatusPreconditionRequired, middleware.ErrorResponse{
			Error: "deleting a dish cannot be undone; repeat the request with confirm=true",
		})
		return
	}

	if err := h.dishService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
