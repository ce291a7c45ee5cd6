package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shop-planner/internal/dto"
	"shop-planner/internal/service"
	"shop-planner/pkg/response"
)

// ConfigHandler 时间段配置模块 HTTP 处理器
type ConfigHandler struct {
	configSvc service.ConfigService
}

// NewConfigHandler 创建 ConfigHandler
func NewConfigHandler(configSvc service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configSvc: configSvc}
}

// GetConfig 获取时间段配置
// GET /api/v1/config
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	cfg, err := h.configSvc.Get(c.Request.Context())
	if err != nil {
		h.handleConfigError(c, err)
		return
	}

	response.OK(c, cfg)
}

// UpdateConfig 更新时间段配置
// PUT /api/v1/config
func (h *ConfigHandler) UpdateConfig(c *gin.Context) {
	var req dto.UpdateSlotConfigRequest
	if !bindJSON(c, &req) {
		return
	}

	cfg, err := h.configSvc.Update(c.Request.Context(), &req)
	if err != nil {
		h.handleConfigError(c, err)
		return
	}

	response.OK(c, cfg)
}

// handleConfigError 统一处理时间段配置模块业务错误
func (h *ConfigHandler) handleConfigError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTimeSlot):
		response.BadRequestWithDetails(c, 11001, "时间段标签格式无效", err)
	default:
		handlePlanningError(c, err)
	}
}
