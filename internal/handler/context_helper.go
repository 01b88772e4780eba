package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/careplan-api/internal/middleware"
	"github.com/noah-isme/careplan-api/internal/models"
	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.CurrentUser(c)
}

// planFilterFromQuery reads the history filter from the query string. Empty,
// ANY and Todos selections are vacuous.
func planFilterFromQuery(c *gin.Context) (models.PlanFilter, error) {
	filter := models.PlanFilter{
		Status:     c.Query("status"),
		Axis:       c.Query("axis"),
		CareLine:   c.Query("care_line"),
		Supporter:  c.Query("supporter"),
		SearchText: c.Query("search"),
	}
	var err error
	if filter.StartDate, err = dateQuery(c, "start_date"); err != nil {
		return models.PlanFilter{}, err
	}
	if filter.EndDate, err = dateQuery(c, "end_date"); err != nil {
		return models.PlanFilter{}, err
	}
	return filter.Normalized(), nil
}

func dateQuery(c *gin.Context, key string) (models.CalendarDate, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return models.CalendarDate{}, nil
	}
	d, err := models.ParseCalendarDate(raw)
	if err != nil {
		return models.CalendarDate{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid %s, expected YYYY-MM-DD", key))
	}
	return d, nil
}

func intQuery(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid %s", key))
	}
	return n, nil
}
