package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mindzy/internal/utils"
)

// DeviceIDKey is the gin context key holding the authenticated device.
const DeviceIDKey = "device_id"

// public endpoints that need no token
func isPublicPath(path string) bool {
	switch path {
	case "/login", "/healthz":
		return true
	}
	if strings.HasPrefix(path, "/swagger") || strings.HasPrefix(path, "/psychologists") {
		return true
	}
	return false
}

func AuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(DeviceIDKey, claims.DeviceID)
		c.Next()
	}
}
