package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vinayakfood/website/backend/internal/middleware"
	"github.com/vinayakfood/website/backend/internal/service"
	"github.com/vinayakfood/website/backend/internal/types"
)

// AuthHandler exposes admin sign-in, sign-out and the current session
type AuthHandler struct {
	authService  service.IAuthService
	limiter      *middleware.RateLimiter
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.IAuthService, limiter *middleware.RateLimiter, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		limiter:      limiter,
		secureCookie: secureCookie,
	}
}

// RegisterRoutes mounts the login, logout and session routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.limiter.LimitByClientIP(), h.Login)
		auth.POST("/logout", middleware.AuthMiddleware(h.authService), h.Logout)
		auth.GET("/session", middleware.AuthMiddleware(h.authService), h.Session)
	}
}

// Login signs an admin in and returns the session token. The token is also
// set as an HttpOnly cookie for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, session.Token, maxAge, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Logout revokes the caller's session and clears the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := service.SessionFromContext(c.Request.Context())
	if !ok {
		respondError(c, &service.AuthError{Reason: "no active session"})
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), session); err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// Session returns the caller's session without its token
func (h *AuthHandler) Session(c *gin.Context) {
	session, ok := service.SessionFromContext(c.Request.Context())
	if !ok {
		respondError(c, &service.AuthError{Reason: "sign in required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin_id":   session.AdminID,
		"email":      session.Email,
		"expires_at": session.ExpiresAt,
	})
}
