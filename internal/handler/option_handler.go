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

type optionService interface {
	List(ctx context.Context, actor *models.JWTClaims) (*dto.OptionCatalog, error)
	Add(ctx context.Context, actor *models.JWTClaims, req dto.AddOptionRequest) (*models.ConfigOption, error)
	Rename(ctx context.Context, actor *models.JWTClaims, optionType models.OptionType, oldLabel, newLabel string) (*dto.RenameOptionResult, error)
	RetryCascade(ctx context.Context, actor *models.JWTClaims, optionType models.OptionType, oldLabel, newLabel string) (*dto.RenameOptionResult, error)
	Delete(ctx context.Context, actor *models.JWTClaims, optionType models.OptionType, label string) error
}

// OptionHandler manages the controlled vocabularies.
type OptionHandler struct {
	service optionService
}

// NewOptionHandler constructs the handler.
func NewOptionHandler(svc optionService) *OptionHandler {
	return &OptionHandler{service: svc}
}

// List godoc
// @Summary List options
// @Description Labels of every vocabulary, grouped by type
// @Tags Options
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /options [get]
func (h *OptionHandler) List(c *gin.Context) {
	catalog, err := h.service.List(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, catalog, nil)
}

// Add godoc
// @Summary Add option
// @Tags Options
// @Accept json
// @Produce json
// @Param payload body dto.AddOptionRequest true "Option"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /options [post]
func (h *OptionHandler) Add(c *gin.Context) {
	var req dto.AddOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid option payload"))
		return
	}
	option, err := h.service.Add(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, option)
}

// Rename godoc
// @Summary Rename option
// @Description Renames the label and rewrites every plan referencing it. A partial rewrite answers PARTIAL_CASCADE_FAILURE with the cascade report in error details; resend with "retry": true to rewrite the remaining plans.
// @Tags Options
// @Accept json
// @Produce json
// @Param type path string true "eixo, linha_cuidado, apoiador or categoria"
// @Param label path string true "Current label"
// @Param payload body dto.RenameOptionRequest true "New label"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /options/{type}/{label} [put]
func (h *OptionHandler) Rename(c *gin.Context) {
	var req dto.RenameOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rename payload"))
		return
	}
	rename := h.service.Rename
	if req.Retry {
		rename = h.service.RetryCascade
	}
	res, err := rename(c.Request.Context(), claimsFromContext(c), models.OptionType(c.Param("type")), c.Param("label"), req.Label)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Delete godoc
// @Summary Delete option
// @Tags Options
// @Param type path string true "eixo, linha_cuidado, apoiador or categoria"
// @Param label path string true "Label"
// @Success 204 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /options/{type}/{label} [delete]
func (h *OptionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), claimsFromContext(c), models.OptionType(c.Param("type")), c.Param("label")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
