package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shop-planner/config"
	"shop-planner/internal/api/handler"
	"shop-planner/internal/api/middleware"
	"shop-planner/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎，rdb 可为 nil（不限流）
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.NoStore())
	v1.Use(middleware.RateLimit(rdb, cfg.Planning.RateLimit, cfg.Planning.RateWindow, logger))
	{
		// 时间段配置
		v1.GET("/config", h.Config.GetConfig)
		v1.PUT("/config", h.Config.UpdateConfig)

		// 门店
		shops := v1.Group("/shops")
		{
			shops.GET("", h.Shop.ListShops)
			shops.POST("", h.Shop.CreateShop)
			shops.DELETE("/:shop", h.Shop.DeleteShop)
			shops.GET("/:shop/weeks", h.Shop.ListWeeks)
			shops.GET("/:shop/last", h.Shop.GetLastPlanning)
			shops.GET("/:shop/months/:month/hours", h.Planning.GetMonthlyHours)

			// 单周
			week := shops.Group("/:shop/weeks/:week")
			{
				week.GET("/roster", h.Roster.GetRoster)
				week.PUT("/roster", h.Roster.UpdateRoster)

				week.GET("/planning", h.Planning.GetWeek)
				week.DELETE("/planning", h.Planning.ResetWeek)
				week.POST("/planning/toggle", h.Planning.ToggleSlot)
				week.PUT("/planning/cell", h.Planning.SetCell)
				week.POST("/planning/copy", h.Planning.CopyWeek)

				week.GET("/recap", h.Planning.GetRecap)
			}
		}

		// 跨门店单日视图
		v1.GET("/days/:day/overview", h.Planning.GetDayOverview)

		// 导出
		export := v1.Group("/export/shops/:shop/weeks/:week")
		{
			export.GET("/xlsx", h.Export.ExportWorkbook)
			export.GET("/ics", h.Export.ExportCalendar)
		}
	}

	return r
}
