package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shop-planner/internal/dto"
	"shop-planner/internal/service"
	"shop-planner/pkg/response"
)

// ShopHandler 门店模块 HTTP 处理器
type ShopHandler struct {
	shopSvc service.ShopService
}

// NewShopHandler 创建 ShopHandler
func NewShopHandler(shopSvc service.ShopService) *ShopHandler {
	return &ShopHandler{shopSvc: shopSvc}
}

// ListShops 获取门店列表
// GET /api/v1/shops
func (h *ShopHandler) ListShops(c *gin.Context) {
	shops, err := h.shopSvc.List(c.Request.Context())
	if err != nil {
		h.handleShopError(c, err)
		return
	}

	response.OK(c, shops)
}

// CreateShop 新增门店
// POST /api/v1/shops
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req dto.CreateShopRequest
	if !bindJSON(c, &req) {
		return
	}

	shops, err := h.shopSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleShopError(c, err)
		return
	}

	response.Created(c, shops)
}

// DeleteShop 删除门店（不删除其周记录）
// DELETE /api/v1/shops/:shop
func (h *ShopHandler) DeleteShop(c *gin.Context) {
	shop, ok := MustGetShop(c)
	if !ok {
		return
	}

	if err := h.shopSvc.Delete(c.Request.Context(), shop); err != nil {
		h.handleShopError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListWeeks 获取门店的正式周列表
// GET /api/v1/shops/:shop/weeks
func (h *ShopHandler) ListWeeks(c *gin.Context) {
	shop, ok := MustGetShop(c)
	if !ok {
		return
	}

	weeks, err := h.shopSvc.Weeks(c.Request.Context(), shop)
	if err != nil {
		h.handleShopError(c, err)
		return
	}

	response.OK(c, gin.H{"list": weeks})
}

// GetLastPlanning 获取门店最近编辑的周
// GET /api/v1/shops/:shop/last
func (h *ShopHandler) GetLastPlanning(c *gin.Context) {
	shop, ok := MustGetShop(c)
	if !ok {
		return
	}

	last, err := h.shopSvc.Last(c.Request.Context(), shop)
	if err != nil {
		h.handleShopError(c, err)
		return
	}

	response.OK(c, last)
}

// handleShopError 统一处理门店模块业务错误
func (h *ShopHandler) handleShopError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShopNotFound):
		response.NotFound(c, 12001, "门店不存在")
	case errors.Is(err, service.ErrShopExists):
		response.Conflict(c, 12002, "门店已存在")
	case errors.Is(err, service.ErrNoRecentPlanning):
		response.NotFound(c, 12004, "该门店暂无排班记录")
	default:
		handlePlanningError(c, err)
	}
}
