package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeshua-high/school-site-api/internal/middleware"
	"github.com/yeshua-high/school-site-api/internal/models"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
)

func sessionFromContext(c *gin.Context) *models.SessionClaims {
	value, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// listFilterFromQuery reads the shared listing knobs: `all=true` includes
// deactivated rows and `limit` caps the result.
func listFilterFromQuery(c *gin.Context) models.ListFilter {
	filter := models.ListFilter{}
	if strings.EqualFold(c.Query("all"), "true") {
		filter.All = true
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	return filter
}

// idFromQuery parses the `id` query parameter used by DELETE routes.
func idFromQuery(c *gin.Context) (int64, error) {
	raw := c.Query("id")
	if raw == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "id query parameter is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "id must be a positive integer")
	}
	return id, nil
}
