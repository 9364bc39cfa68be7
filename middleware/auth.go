package middleware

import (
	"log"
	"net/http"
	"strings"

	"archblog/utils"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "admin_session"

	ContextAdminID    = "admin_id"
	ContextAdminEmail = "admin_email"
)

// AdminRequired accepts the session cookie set at login or a Bearer token.
func AdminRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := utils.ValidateJWT(token, secret)
		if err != nil {
			log.Printf("Session validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextAdminEmail, claims.Email)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
