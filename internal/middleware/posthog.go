package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/finova_ledger/internal/utils"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls with PostHog.
func PosthogMiddleware(client utils.AnalyticsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip if PostHog is not initialized or path is in skip list
		if client == nil || !client.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		// Process request first
		c.Next()

		// Skip if there was an error processing the request
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Scope is set by the auth middleware
		scope, ok := GetScopeFromContext(c)
		if !ok {
			return
		}

		// Event name from route path, e.g. "/api/v1/journal-entries/:headerID/post" -> "api_v1_journal-entries_:headerID_post"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		// Empty for unmatched routes
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"company_id":  scope.CompanyID,
		}
		// Add route parameters if any
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		// Send event to PostHog
		client.Enqueue(scope.UserID, eventName, props)
	}
}

// PosthogEvent sends a custom event for the authenticated caller from a handler.
func PosthogEvent(c *gin.Context, client utils.AnalyticsClient, eventName string, properties map[string]any) {
	if client == nil || !client.IsInitialized() {
		return
	}

	scope, ok := GetScopeFromContext(c)
	if !ok {
		return
	}

	// Ensure properties is not nil
	if properties == nil {
		properties = make(map[string]any)
	}
	// Add request context
	properties["company_id"] = scope.CompanyID
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path

	client.Enqueue(scope.UserID, eventName, properties)
}
