package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop-planner/internal/planning"
	"shop-planner/internal/service"
	"shop-planner/pkg/response"
)

// MustGetShop 提取路径参数 :shop，为空时写入 400。
// 调用方应在 ok=false 时直接 return。
func MustGetShop(c *gin.Context) (string, bool) {
	shop := strings.TrimSpace(c.Param("shop"))
	if shop == "" {
		response.BadRequest(c, 10001, "门店名称不能为空")
		return "", false
	}
	return shop, true
}

// MustGetWeek 提取路径参数 :week
func MustGetWeek(c *gin.Context) (string, bool) {
	week := strings.TrimSpace(c.Param("week"))
	if week == "" {
		response.BadRequest(c, 10001, "周次不能为空")
		return "", false
	}
	return week, true
}

// MustGetShopWeek 同时提取 :shop 与 :week
func MustGetShopWeek(c *gin.Context) (string, string, bool) {
	shop, ok := MustGetShop(c)
	if !ok {
		return "", "", false
	}
	week, ok := MustGetWeek(c)
	if !ok {
		return "", "", false
	}
	return shop, week, true
}

// bindJSON 绑定请求体，失败时写入 400（超出大小限制时 413）
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
		return false
	}
	response.BadRequest(c, 10001, "参数校验失败")
	return false
}

// handlePlanningError 各模块共用的排班计算错误映射，未识别的错误返回 500
func handlePlanningError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, planning.ErrMissingRoster):
		response.BadRequest(c, 13001, "未选择任何员工")
	case errors.Is(err, planning.ErrMissingConfiguration):
		response.Conflict(c, 13002, "时间段配置缺失或无效")
	case errors.Is(err, planning.ErrInvalidDate):
		response.BadRequestWithDetails(c, 13003, "日期无效", err)
	case errors.Is(err, planning.ErrUnknownEmployee):
		response.BadRequestWithDetails(c, 13004, "员工不在当周名单中", err)
	case errors.Is(err, service.ErrDayOutsideWeek):
		response.BadRequestWithDetails(c, 13005, "日期不在当周范围内", err)
	case errors.Is(err, planning.ErrSlotOutOfRange):
		response.BadRequestWithDetails(c, 13006, "时间段索引越界", err)
	case errors.Is(err, planning.ErrNotSlotCell):
		response.Conflict(c, 13007, "单元格不是时间段格式")
	case errors.Is(err, planning.ErrTimeParse):
		response.BadRequestWithDetails(c, 13008, "时间格式无效，应为 HH:mm", err)
	case errors.Is(err, service.ErrInvalidShop):
		response.BadRequest(c, 12003, "门店名称无效")
	default:
		response.InternalError(c)
	}
}
