package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/careplan-api/internal/dto"
	"github.com/noah-isme/careplan-api/internal/models"
	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
	"github.com/noah-isme/careplan-api/pkg/response"
)

type planService interface {
	Get(ctx context.Context, actor *models.JWTClaims, id string) (*models.Plan, error)
	Create(ctx context.Context, actor *models.JWTClaims, req dto.PlanRequest) (*models.Plan, error)
	Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.PlanRequest) (*models.Plan, error)
	Delete(ctx context.Context, actor *models.JWTClaims, id string) error
}

type historyService interface {
	List(ctx context.Context, actor *models.JWTClaims, req dto.HistoryRequest) (*dto.HistoryResponse, *models.Pagination, error)
}

// PlanHandler exposes plan CRUD and the filtered history.
type PlanHandler struct {
	plans   planService
	history historyService
}

// NewPlanHandler constructs the handler.
func NewPlanHandler(plans planService, history historyService) *PlanHandler {
	return &PlanHandler{plans: plans, history: history}
}

// History godoc
// @Summary List plans
// @Description Filtered, paginated plan history
// @Tags Plans
// @Produce json
// @Param status query string false "Status (ANY for all)"
// @Param axis query string false "Axis"
// @Param care_line query string false "Care line"
// @Param supporter query string false "Supporter"
// @Param start_date query string false "Start date lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Start date upper bound (YYYY-MM-DD)"
// @Param search query string false "Free text"
// @Param page query int false "Page"
// @Param page_size query int false "Page size (5, 10, 20 or 50)"
// @Success 200 {object} response.Envelope
// @Router /plans [get]
func (h *PlanHandler) History(c *gin.Context) {
	filter, err := planFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := intQuery(c, "page")
	if err != nil {
		response.Error(c, err)
		return
	}
	size, err := intQuery(c, "page_size")
	if err != nil {
		response.Error(c, err)
		return
	}
	res, pagination, err := h.history.List(c.Request.Context(), claimsFromContext(c), dto.HistoryRequest{Filter: filter, Page: page, PageSize: size})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, pagination)
}

// Get godoc
// @Summary Get plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /plans/{id} [get]
func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.plans.Get(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan, nil)
}

// Create godoc
// @Summary Create plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param payload body dto.PlanRequest true "Plan payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /plans [post]
func (h *PlanHandler) Create(c *gin.Context) {
	var req dto.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid plan payload"))
		return
	}
	plan, err := h.plans.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan)
}

// Update godoc
// @Summary Update plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param payload body dto.PlanRequest true "Plan payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /plans/{id} [put]
func (h *PlanHandler) Update(c *gin.Context) {
	var req dto.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid plan payload"))
		return
	}
	plan, err := h.plans.Update(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan, nil)
}

// Delete godoc
// @Summary Delete plan
// @Tags Plans
// @Param id path string true "Plan ID"
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /plans/{id} [delete]
func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.plans.Delete(c.Request.Context(), claimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
