package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"shop-planner/internal/service"
	"shop-planner/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// ExportWorkbook 导出周摘要与月工时
// GET /api/v1/export/shops/:shop/weeks/:week/xlsx
func (h *ExportHandler) ExportWorkbook(c *gin.Context) {
	shop, week, ok := MustGetShopWeek(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportWeek(c.Request.Context(), shop, week)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportCalendar 导出周排班日历
// GET /api/v1/export/shops/:shop/weeks/:week/ics?employee=xxx
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	shop, week, ok := MustGetShopWeek(c)
	if !ok {
		return
	}

	body, filename, err := h.calendarSvc.ExportWeek(c.Request.Context(), shop, week, c.Query("employee"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, icsContentType, []byte(body))
}

// attachment 设置下载响应头
func attachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCalendarDisabled):
		response.NotFound(c, 14002, "日历导出未启用")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		handlePlanningError(c, err)
	}
}
