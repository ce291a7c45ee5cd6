package dto

// ── 门店模块 DTO ──

// CreateShopRequest 新增门店请求
type CreateShopRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// ShopListResponse 门店列表响应
type ShopListResponse struct {
	Shops []string `json:"shops"`
}

// WeekEntryResponse 已保存周
type WeekEntryResponse struct {
	Key     string `json:"key"`
	Date    string `json:"date"`
	Display string `json:"display"`
}

// LastPlanningResponse 最近编辑周
type LastPlanningResponse struct {
	Shop string `json:"shop"`
	Week string `json:"week"`
}

// ── 员工名单 DTO ──

// UpdateRosterRequest 设置本周员工名单请求
type UpdateRosterRequest struct {
	Employees []string `json:"employees" binding:"required,min=1,max=200,dive,required,max=100"`
}

// RosterResponse 员工名单响应
type RosterResponse struct {
	Shop      string   `json:"shop"`
	Week      string   `json:"week"`
	Employees []string `json:"employees"`
}
