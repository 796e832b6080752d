package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
)

// userIDKey and scopeKey hold the authenticated caller in the request context.
const (
	userIDKey = contextKey("userID")
	scopeKey  = contextKey("requestScope")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok && userID != "" {
		return userID, true
	}
	return "", false
}

// GetScopeFromContext returns the company, user and permissions of the authenticated caller.
func GetScopeFromContext(c *gin.Context) (domain.RequestScope, bool) {
	scope, ok := c.Request.Context().Value(scopeKey).(domain.RequestScope)
	return scope, ok
}
