package controllers

import (
	"errors"
	"net/http"

	"archblog/models"
	"archblog/services"

	"github.com/gin-gonic/gin"
)

type NewsletterController struct {
	newsletterService *services.NewsletterService
}

func NewNewsletterController(newsletterService *services.NewsletterService) *NewsletterController {
	return &NewsletterController{newsletterService: newsletterService}
}

// Subscribe godoc
// @Summary Subscribe an email to the newsletter
// @Tags newsletter
// @Accept json
// @Produce json
// @Param subscription body models.NewsletterRequest true "Email"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Router /newsletter [post]
func (nc *NewsletterController) Subscribe(c *gin.Context) {
	var req models.NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := nc.newsletterService.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err, "Failed to subscribe")
		return
	}

	switch {
	case result.AlreadySubscribed:
		c.JSON(http.StatusOK, gin.H{"message": "You are already subscribed", "alreadySubscribed": true})
	case result.Reactivated:
		c.JSON(http.StatusOK, gin.H{"message": "Welcome back! Your subscription has been reactivated", "reactivated": true})
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "Successfully subscribed to the newsletter"})
	}
}

// Unsubscribe godoc
// @Summary Unsubscribe an email from the newsletter
// @Tags newsletter
// @Accept json
// @Produce json
// @Param subscription body models.NewsletterRequest true "Email"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /newsletter [delete]
func (nc *NewsletterController) Unsubscribe(c *gin.Context) {
	var req models.NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if _, err := nc.newsletterService.UnsubscribeByEmail(c.Request.Context(), req.Email); err != nil {
		nc.unsubscribeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully unsubscribed"})
}

// UnsubscribeByToken godoc
// @Summary Unsubscribe through the link sent in newsletter emails
// @Tags newsletter
// @Produce json
// @Param token query string true "Unsubscribe token"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /newsletter/unsubscribe [get]
func (nc *NewsletterController) UnsubscribeByToken(c *gin.Context) {
	sub, err := nc.newsletterService.UnsubscribeByToken(c.Request.Context(), c.Query("token"))
	if err != nil {
		nc.unsubscribeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully unsubscribed", "email": sub.Email})
}

func (nc *NewsletterController) unsubscribeError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}
	respondError(c, err, "Failed to unsubscribe")
}
