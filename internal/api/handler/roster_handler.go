package handler

import (
	"github.com/gin-gonic/gin"

	"shop-planner/internal/dto"
	"shop-planner/internal/service"
	"shop-planner/pkg/response"
)

// RosterHandler 员工名单模块 HTTP 处理器
type RosterHandler struct {
	rosterSvc service.RosterService
}

// NewRosterHandler 创建 RosterHandler
func NewRosterHandler(rosterSvc service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

// GetRoster 获取当周员工名单
// GET /api/v1/shops/:shop/weeks/:week/roster
func (h *RosterHandler) GetRoster(c *gin.Context) {
	shop, week, ok := MustGetShopWeek(c)
	if !ok {
		return
	}

	roster, err := h.rosterSvc.Get(c.Request.Context(), shop, week)
	if err != nil {
		handlePlanningError(c, err)
		return
	}

	response.OK(c, roster)
}

// UpdateRoster 保存当周员工名单
// PUT /api/v1/shops/:shop/weeks/:week/roster
func (h *RosterHandler) UpdateRoster(c *gin.Context) {
	shop, week, ok := MustGetShopWeek(c)
	if !ok {
		return
	}

	var req dto.UpdateRosterRequest
	if !bindJSON(c, &req) {
		return
	}

	roster, err := h.rosterSvc.Update(c.Request.Context(), shop, week, &req)
	if err != nil {
		handlePlanningError(c, err)
		return
	}

	response.OK(c, roster)
}
