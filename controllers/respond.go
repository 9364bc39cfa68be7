package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"archblog/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Unexpected errors are
// logged and replaced with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
	case errors.Is(err, services.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification code"})
	case errors.Is(err, services.ErrUnsupportedImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only JPEG, PNG, GIF and WEBP images are allowed"})
	case errors.Is(err, services.ErrImageTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 3MB"})
	case errors.Is(err, services.ErrImageSignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": "File content does not match its declared type"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": capitalize(err.Error())})
	case errors.Is(err, services.ErrAlreadyUnsubscribed):
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already unsubscribed"})
	case errors.Is(err, services.ErrAdminExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Admin already exists"})
	case errors.Is(err, services.ErrEmailDelivery):
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email. Please try again"})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func bindError(c *gin.Context, err error) {
	msg := err.Error()
	if strings.Contains(msg, "EOF") {
		msg = "Request body is required"
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
