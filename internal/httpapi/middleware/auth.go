package middleware

import (
	"net/http"
	"strings"

	"gamesarchive/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the Authorization header.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// Set user info in context for handlers to use
		c.Set("claims", claims)
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("staff", claims.Staff)

		c.Next()
	}
}

// OptionalAuthMiddleware parses the token when one is present but lets
// anonymous requests through. Pages that merely render differently for
// signed-in users use this instead of AuthMiddleware.
func OptionalAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		if claims, err := authService.ValidateToken(parts[1]); err == nil {
			c.Set("claims", claims)
			c.Set("userID", claims.UserID)
			c.Set("username", claims.Username)
			c.Set("staff", claims.Staff)
		}

		c.Next()
	}
}

// RequireStaff allows only staff accounts past. Must run after AuthMiddleware.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		staffInterface, exists := c.Get("staff")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "staff flag not found in token"})
			c.Abort()
			return
		}

		staff, ok := staffInterface.(bool)
		if !ok || !staff {
			c.JSON(http.StatusForbidden, gin.H{"error": "staff access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ClaimsFromContext returns the parsed claims, or nil for anonymous requests.
func ClaimsFromContext(c *gin.Context) *service.Claims {
	claimsInterface, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := claimsInterface.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}
