package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/studyhive-labs/studyhive-api/internal/models"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
	"github.com/studyhive-labs/studyhive-api/pkg/export"
)

type adminStatsProvider interface {
	Admin(ctx context.Context) (*models.AdminStatsReport, bool, error)
}

// ExportFormat selects the rendering backend.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered report.
type ExportResult struct {
	FileName    string
	ContentType string
	Payload     []byte
}

// ExportService renders the global statistics report as a downloadable file.
type ExportService struct {
	stats  adminStatsProvider
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(stats adminStatsProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		stats:  stats,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// AdminReport renders the admin statistics chart in the requested format.
func (s *ExportService) AdminReport(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	report, _, err := s.stats.Admin(ctx)
	if err != nil {
		return nil, err
	}

	dataset := chartDataset(report.Chart)
	switch format {
	case FormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{FileName: "sales-report.csv", ContentType: "text/csv", Payload: payload}, nil
	case FormatPDF:
		payload, err := s.pdf.Render(dataset, "Sales Report")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{FileName: "sales-report.pdf", ContentType: "application/pdf", Payload: payload}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

// chartDataset converts the self-describing chart series into a tabular
// dataset: the header row becomes the headers, the remaining rows the body.
func chartDataset(chart models.ChartSeries) export.Dataset {
	dataset := export.Dataset{}
	for i, row := range chart {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = renderCell(cell)
		}
		if i == 0 {
			dataset.Headers = cells
			continue
		}
		dataset.Rows = append(dataset.Rows, cells)
	}
	return dataset
}

func renderCell(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
