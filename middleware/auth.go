package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/toyfront/storefront-gateway/auth"
	"github.com/toyfront/storefront-gateway/models"
)

// Context keys set by AuthMiddleware.
const (
	CtxUserID = "user_id"
	CtxUser   = "user"
)

// AuthMiddleware validates the Bearer session token and stores the user id
// and role list on the context.
func AuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		userID, err := auth.UserIDFromClaims(claims)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		user := &models.User{Roles: auth.RolesFromClaims(claims)}
		if id, err := strconv.ParseInt(userID, 10, 64); err == nil {
			user.ID = id
		}
		if username, ok := claims["username"].(string); ok {
			user.Username = username
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUser, user)
		c.Next()
	}
}

// RequirePermission gates a route on the wildcard RBAC table. Must run
// after AuthMiddleware.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		if !auth.HasPermission(user, perm) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole gates a route on role membership. Must run after
// AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		if !auth.HasRole(user, role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the context, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get(CtxUser); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// CurrentUserID returns the authenticated user id from the context.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
