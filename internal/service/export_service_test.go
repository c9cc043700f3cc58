package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive-labs/studyhive-api/internal/models"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
)

type fakeAdminStats struct {
	report *models.AdminStatsReport
	err    error
}

func (f *fakeAdminStats) Admin(context.Context) (*models.AdminStatsReport, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.report, false, nil
}

func sampleReport() *models.AdminStatsReport {
	chart := models.NewChartSeries()
	chart = append(chart, []interface{}{"5/3", 50.0})
	chart = append(chart, []interface{}{"21/11", 0.0})
	return &models.AdminStatsReport{TotalBookings: 2, TotalPrice: 50, Chart: chart}
}

func TestExportServiceCSV(t *testing.T) {
	svc := NewExportService(&fakeAdminStats{report: sampleReport()}, nil)

	result, err := svc.AdminReport(context.Background(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "sales-report.csv", result.FileName)
	assert.Equal(t, "text/csv", result.ContentType)

	lines := strings.Split(strings.TrimSpace(string(result.Payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Day,Sales", lines[0])
	assert.Equal(t, "5/3,50", lines[1])
	assert.Equal(t, "21/11,0", lines[2])
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(&fakeAdminStats{report: sampleReport()}, nil)

	result, err := svc.AdminReport(context.Background(), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "sales-report.pdf", result.FileName)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Payload), "%PDF"))
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := NewExportService(&fakeAdminStats{report: sampleReport()}, nil)

	_, err := svc.AdminReport(context.Background(), ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
