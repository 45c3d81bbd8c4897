// Package controllers adapts the services to gin handlers.
package controllers

import (
	"net/http"
	"strconv"

	"storefront-service/middleware"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

func abortWithServiceError(c *gin.Context, svcErr *services.ServiceError) {
	c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// sessionID reads the id set by middleware.Session.
func sessionID(c *gin.Context) (string, bool) {
	id, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session"})
		return "", false
	}
	return id, true
}

// parsePaginationParams extracts page and limit, falling back to the
// defaults on bad input and capping limit at MaxLimit.
func parsePaginationParams(c *gin.Context) (int, int) {
	page, limit := DefaultPage, DefaultLimit
	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && l > 0 {
		limit = min(l, MaxLimit)
	}
	return page, limit
}

func paginationMeta(page, limit int, total int64) gin.H {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return gin.H{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"total_pages": totalPages,
		"has_more":    page < totalPages,
	}
}
