package controllers

import (
	"net/http"
	"time"

	"archblog/middleware"
	"archblog/models"
	"archblog/services"
	"archblog/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	adminService *services.AdminService
	secret       string
	ttl          time.Duration
	secureCookie bool
}

func NewAuthController(adminService *services.AdminService, secret string, ttl time.Duration, secureCookie bool) *AuthController {
	return &AuthController{
		adminService: adminService,
		secret:       secret,
		ttl:          ttl,
		secureCookie: secureCookie,
	}
}

// Login godoc
// @Summary Start an admin session
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Admin credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	admin, err := ac.adminService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	token, err := utils.GenerateJWT(admin.ID, admin.Email, ac.secret, ac.ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(ac.ttl.Seconds()), "/", "", ac.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    admin,
		"token":   token,
	})
}

// Logout godoc
// @Summary End the admin session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ac.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me godoc
// @Summary Current admin
// @Tags auth
// @Produce json
// @Security SessionAuth
// @Success 200 {object} models.Admin
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	adminID, exists := c.Get(middleware.ContextAdminID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	admin, err := ac.adminService.GetByID(c.Request.Context(), adminID.(uint))
	if err != nil {
		respondError(c, err, "Failed to fetch admin")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": admin})
}
