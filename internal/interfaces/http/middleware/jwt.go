package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/solemart/backend/internal/infrastructure/auth"
	"github.com/solemart/backend/internal/interfaces/http/dto"
)

const (
	// ContextUserID is the gin context key for the authenticated user ID
	ContextUserID = "auth_user_id"
	// ContextUsername is the gin context key for the authenticated username
	ContextUsername = "auth_username"
	// ContextIsAdmin is the gin context key for the admin flag
	ContextIsAdmin = "auth_is_admin"
)

// JWTAuth validates the Bearer token and stores claims in the context
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Token is invalid")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin rejects requests from non-admin users. Must run after
// JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin access required"))
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID from the context
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// IsAdmin reports whether the authenticated user is an admin
func IsAdmin(c *gin.Context) bool {
	value, exists := c.Get(ContextIsAdmin)
	if !exists {
		return false
	}
	isAdmin, _ := value.(bool)
	return isAdmin
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
