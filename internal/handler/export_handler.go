package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/careplan-api/internal/dto"
	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/pkg/response"
)

type exportService interface {
	Plans(ctx context.Context, actor *models.JWTClaims, req dto.ExportRequest) (*dto.ExportFile, error)
}

// ExportHandler streams printable renderings of the plan history.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Plans godoc
// @Summary Export plans
// @Description Render the filtered history as CSV, PDF or XLSX
// @Tags Plans
// @Produce octet-stream
// @Param format query string false "csv, pdf or xlsx"
// @Param orientation query string false "portrait or landscape (PDF only)"
// @Param status query string false "Status"
// @Param axis query string false "Axis"
// @Param care_line query string false "Care line"
// @Param supporter query string false "Supporter"
// @Param start_date query string false "Start date lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Start date upper bound (YYYY-MM-DD)"
// @Param search query string false "Free text"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /plans/export [get]
func (h *ExportHandler) Plans(c *gin.Context) {
	filter, err := planFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.service.Plans(c.Request.Context(), claimsFromContext(c), dto.ExportRequest{
		Filter:      filter,
		Format:      c.Query("format"),
		Orientation: c.Query("orientation"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
