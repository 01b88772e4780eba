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

type profileService interface {
	Me(ctx context.Context, actor *models.JWTClaims) (*models.Profile, error)
	ChangeRole(ctx context.Context, actor *models.JWTClaims, req dto.ChangeRoleRequest) (*dto.ChangeRoleResponse, error)
}

// ProfileHandler exposes the caller's profile.
type ProfileHandler struct {
	service profileService
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(svc profileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// Me godoc
// @Summary Current profile
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile [get]
func (h *ProfileHandler) Me(c *gin.Context) {
	profile, err := h.service.Me(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// ChangeRole godoc
// @Summary Change privilege level
// @Description The administrator code grants Administrador, the user code reverts to Normal
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body dto.ChangeRoleRequest true "Role code"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /profile/role [put]
func (h *ProfileHandler) ChangeRole(c *gin.Context) {
	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid role payload"))
		return
	}
	res, err := h.service.ChangeRole(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
