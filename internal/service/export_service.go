package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/careplan-api/internal/dto"
	"github.com/noah-isme/careplan-api/internal/models"
	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
	"github.com/noah-isme/careplan-api/pkg/export"
)

// Supported export formats.
const (
	ExportFormatCSV  = "csv"
	ExportFormatPDF  = "pdf"
	ExportFormatXLSX = "xlsx"
)

const exportTitle = "Histórico de Planos de Ação"

var exportHeaders = []string{
	"Eixo", "Linha de Cuidado", "Status", "Apoiadores", "Categorias", "Resumo", "Meta",
	"Avaliação", "Ciclo", "Data Inicial", "Data Final",
}

type filteredPlanSource interface {
	Filtered(ctx context.Context, actor *models.JWTClaims, filter models.PlanFilter) ([]models.Plan, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type documentRenderer interface {
	Render(data export.Dataset, header export.Header) ([]byte, error)
}

// ExportService renders the filtered history as a downloadable file.
type ExportService struct {
	source filteredPlanSource
	csv    csvRenderer
	xlsx   documentRenderer
	pdf    func(export.Orientation) documentRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService over the history source.
func NewExportService(source filteredPlanSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		source: source,
		csv:    export.NewCSVExporter(),
		xlsx:   export.NewXLSXExporter(),
		pdf: func(o export.Orientation) documentRenderer {
			return export.NewPDFExporter(o)
		},
		logger: logger,
		now:    time.Now,
	}
}

// Plans renders every plan matching req.Filter in the requested format.
func (s *ExportService) Plans(ctx context.Context, actor *models.JWTClaims, req dto.ExportRequest) (*dto.ExportFile, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF && format != ExportFormatXLSX {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", req.Format))
	}

	plans, err := s.source.Filtered(ctx, actor, req.Filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dataset := buildPlanDataset(plans)
	header := export.Header{
		Title:       exportTitle,
		Filter:      req.Filter.Summary(),
		GeneratedAt: now,
		Total:       len(plans),
	}

	var (
		body        []byte
		contentType string
	)
	switch format {
	case ExportFormatCSV:
		body, err = s.csv.Render(dataset)
		contentType = "text/csv; charset=utf-8"
	case ExportFormatPDF:
		body, err = s.pdf(export.ParseOrientation(req.Orientation)).Render(dataset, header)
		contentType = "application/pdf"
	case ExportFormatXLSX:
		body, err = s.xlsx.Render(dataset, header)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Debug("plans exported", zap.String("format", format), zap.Int("rows", len(plans)))
	return &dto.ExportFile{
		Filename:    fmt.Sprintf("planos_%s.%s", now.Format("20060102_150405"), format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func buildPlanDataset(plans []models.Plan) export.Dataset {
	data := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]string, 0, len(plans))}
	for _, p := range plans {
		data.Append(
			p.Axis,
			p.CareLine,
			string(p.Status),
			strings.Join(p.Supporters, ", "),
			strings.Join(p.Categories, ", "),
			p.Summary,
			p.Goal,
			p.EvaluationFrequency,
			deref(p.Cycle),
			displayDate(p.StartDate),
			displayDate(p.EndDate),
		)
	}
	return data
}

func displayDate(d models.CalendarDate) string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
