package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/careplan-api/internal/dto"
	"github.com/noah-isme/careplan-api/internal/middleware"
	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/internal/planning"
	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
	"github.com/noah-isme/careplan-api/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context, actor *models.JWTClaims, careLine string) (*dto.DashboardResponse, bool, error)
	Aggregate(ctx context.Context, actor *models.JWTClaims, req dto.AggregateRequest) (*dto.AggregateResponse, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary godoc
// @Summary Dashboard summary
// @Tags Dashboard
// @Produce json
// @Param care_line query string false "Care line (ANY for all)"
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.service.Summary(c.Request.Context(), claimsFromContext(c), strings.TrimSpace(c.Query("care_line")))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ResponseMeta(c)
	if _, ok := meta["processing_time_ms"]; !ok {
		meta["processing_time_ms"] = time.Since(start).Milliseconds()
	}
	response.JSON(c, http.StatusOK, summary, nil, meta)
}

// Aggregate godoc
// @Summary Group plans by one dimension
// @Tags Dashboard
// @Produce json
// @Param dimension query string true "status, axis, care_line, supporter, category or month"
// @Param status query string false "Status"
// @Param axis query string false "Axis"
// @Param care_line query string false "Care line"
// @Param supporter query string false "Supporter"
// @Param start_date query string false "Start date lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Start date upper bound (YYYY-MM-DD)"
// @Param search query string false "Free text"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /dashboard/aggregate [get]
func (h *DashboardHandler) Aggregate(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	dimension := strings.TrimSpace(c.Query("dimension"))
	if dimension == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "dimension is required"))
		return
	}
	filter, err := planFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.service.Aggregate(c.Request.Context(), claimsFromContext(c), dto.AggregateRequest{
		Dimension: planning.Dimension(dimension),
		Filter:    filter,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
