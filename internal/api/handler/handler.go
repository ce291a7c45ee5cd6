package handler

import "shop-planner/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Config   *ConfigHandler
	Shop     *ShopHandler
	Roster   *RosterHandler
	Planning *PlanningHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Config:   NewConfigHandler(svc.Config),
		Shop:     NewShopHandler(svc.Shop),
		Roster:   NewRosterHandler(svc.Roster),
		Planning: NewPlanningHandler(svc.Planning),
		Export:   NewExportHandler(svc.Export, svc.Calendar),
	}
}
