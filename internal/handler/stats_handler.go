package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyhive-labs/studyhive-api/internal/middleware"
	"github.com/studyhive-labs/studyhive-api/internal/models"
	"github.com/studyhive-labs/studyhive-api/internal/service"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
	"github.com/studyhive-labs/studyhive-api/pkg/response"
)

type statsProvider interface {
	Admin(ctx context.Context) (*models.AdminStatsReport, bool, error)
	Tutor(ctx context.Context, email string) (*models.TutorStatsReport, bool, error)
	Student(ctx context.Context, email string) (*models.StudentStatsReport, bool, error)
}

type reportExporter interface {
	AdminReport(ctx context.Context, format service.ExportFormat) (*service.ExportResult, error)
}

// StatsHandler exposes the statistics dashboard endpoints. The subject of
// tutor and student reports is always the authenticated identity, never a
// request parameter.
type StatsHandler struct {
	stats  statsProvider
	export reportExporter
}

// NewStatsHandler constructs StatsHandler.
func NewStatsHandler(stats statsProvider, export reportExporter) *StatsHandler {
	return &StatsHandler{stats: stats, export: export}
}

// Admin godoc
// @Summary Platform-wide statistics
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /stats/admin [get]
func (h *StatsHandler) Admin(c *gin.Context) {
	start := time.Now()
	report, cacheHit, err := h.stats.Admin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, start, cacheHit, report)
}

// Tutor godoc
// @Summary Statistics for the authenticated tutor
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /stats/tutor [get]
func (h *StatsHandler) Tutor(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	start := time.Now()
	report, cacheHit, err := h.stats.Tutor(c.Request.Context(), claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, start, cacheHit, report)
}

// Student godoc
// @Summary Statistics for the authenticated student
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /stats/student [get]
func (h *StatsHandler) Student(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	start := time.Now()
	report, cacheHit, err := h.stats.Student(c.Request.Context(), claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, start, cacheHit, report)
}

// Export godoc
// @Summary Download the platform sales report
// @Tags Statistics
// @Produce octet-stream
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /stats/admin/export [get]
func (h *StatsHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.FormatCSV)))

	result, err := h.export.AdminReport(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.FileName)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}

func (h *StatsHandler) respond(c *gin.Context, start time.Time, cacheHit bool, report interface{}) {
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, report, nil, meta)
}
