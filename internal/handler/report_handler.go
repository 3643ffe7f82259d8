package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tanush-em/QWERTY/internal/service"
	"github.com/tanush-em/QWERTY/pkg/response"
)

type reportService interface {
	Generate(ctx context.Context, name string, format service.ReportFormat) (*service.ReportResult, error)
}

// ReportHandler streams rendered collection rosters.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Generate godoc
// @Summary Download a collection roster as CSV or PDF
// @Tags Reports
// @Produce json
// @Param collection path string true "Collection name"
// @Param format query string false "csv or pdf (default csv)"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /reports/{collection} [get]
func (h *ReportHandler) Generate(c *gin.Context) {
	name := strings.TrimSpace(c.Param("collection"))
	format := service.ReportFormat(strings.ToLower(strings.TrimSpace(c.Query("format"))))
	if format == "" {
		format = service.ReportFormatCSV
	}

	result, err := h.service.Generate(c.Request.Context(), name, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
