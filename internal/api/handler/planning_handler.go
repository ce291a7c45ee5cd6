package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shop-planner/internal/dto"
	"shop-planner/internal/service"
	"shop-planner/pkg/response"
)

// PlanningHandler 排班模块 HTTP 处理器
type PlanningHandler struct {
	planningSvc service.PlanningService
}

// NewPlanningHandler 创建 PlanningHandler
func NewPlanningHandler(planningSvc service.PlanningService) *PlanningHandler {
	return &PlanningHandler{planningSvc: planningSvc}
}

// GetWeek 获取校正后的周排班与工时
// GET /api/v1/shops/:shop/weeks/:week/planning
func (h *PlanningHandler) GetWeek(c *gin.Context) {
	shop, week, ok := MustGetShopWeek(c)
	if !ok {
		return
	}

	result, err := h.planningSvc.GetWeek(c.Request.Context(), shop, week)
	if err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.OK(c, result)
}

// ResetWeek 删除周排班
// DELETE /api/v1/shops/:shop/weeks/:week/planning
func (h *PlanningHandler) ResetWeek(c *gin.Context) {
	shop, week, ok := MustGetShopWeek(c)
	if !ok {
		return
	}

	if err := h.planningSvc.Reset(c.Request.Context(), shop, week); err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.OK(c, nil)
}

// ToggleSlot 切换单个时间段
// POST /api/v1/shops/:shop/weeks/:week/planning/toggle
func (h *PlanningHandler) ToggleSlot(c *gin.Context) {
	shop, week, ok := MustGetShopWeek(c)
	if !ok {
		return
	}

	var req dto.ToggleSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.planningSvc.Toggle(c.Request.Context(), shop, week, &req)
	if err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.OK(c, result)
}

// SetCell 写入单元格
// PUT /api/v1/shops/:shop/weeks/:week/planning/cell
func (h *PlanningHandler) SetCell(c *gin.Context) {
	shop, week, ok := MustGetShopWeek(c)
	if !ok {
		return
	}

	var req dto.SetCellRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.planningSvc.SetCell(c.Request.Context(), shop, week, &req)
	if err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.OK(c, result)
}

// CopyWeek 复制 from 周到当前周
// POST /api/v1/shops/:shop/weeks/:week/planning/copy
func (h *PlanningHandler) CopyWeek(c *gin.Context) {
	shop, week, ok := MustGetShopWeek(c)
	if !ok {
		return
	}

	var req dto.CopyWeekRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.planningSvc.CopyWeek(c.Request.Context(), shop, week, &req)
	if err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.OK(c, result)
}

// GetRecap 获取周摘要
// GET /api/v1/shops/:shop/weeks/:week/recap
func (h *PlanningHandler) GetRecap(c *gin.Context) {
	shop, week, ok := MustGetShopWeek(c)
	if !ok {
		return
	}

	result, err := h.planningSvc.Recap(c.Request.Context(), shop, week)
	if err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.OK(c, result)
}

// GetMonthlyHours 获取月工时
// GET /api/v1/shops/:shop/months/:month/hours?employee=xxx
func (h *PlanningHandler) GetMonthlyHours(c *gin.Context) {
	shop, ok := MustGetShop(c)
	if !ok {
		return
	}
	month := c.Param("month")

	var q dto.MonthlyHoursQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.planningSvc.MonthlyHours(c.Request.Context(), shop, month, q.Employee)
	if err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.OK(c, result)
}

// GetDayOverview 获取全部门店某天的工时
// GET /api/v1/days/:day/overview
func (h *PlanningHandler) GetDayOverview(c *gin.Context) {
	result, err := h.planningSvc.DayOverview(c.Request.Context(), c.Param("day"))
	if err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.OK(c, result)
}

// handleWeekError 统一处理排班模块业务错误
func (h *PlanningHandler) handleWeekError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSourceWeekNotFound):
		response.NotFound(c, 13009, "源周没有排班记录")
	default:
		handlePlanningError(c, err)
	}
}
