package handler

import (
	"bytes"

	"github.com/gin-gonic/gin"

	"study-planner/backend/internal/service"
	"study-planner/backend/pkg/response"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportExcel 导出周计划为 Excel
// POST /api/v1/plans/export/xlsx
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	req, ok := bindPlanRequest(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportExcel(c.Request.Context(), req)
	writeExport(c, buf, filename, mimeXLSX, err)
}

// ExportICS 导出周计划为 iCalendar
// POST /api/v1/plans/export/ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	req, ok := bindPlanRequest(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportICS(c.Request.Context(), req)
	writeExport(c, buf, filename, mimeICS, err)
}

func writeExport(c *gin.Context, buf *bytes.Buffer, filename, contentType string, err error) {
	if err != nil {
		handlePlanError(c, err)
		return
	}
	c.Header("Content-Description", "File Transfer")
	response.Attachment(c, contentType, filename, buf.Bytes())
}
