package service

import (
	"go.uber.org/zap"

	"shop-planner/config"
	"shop-planner/internal/repository"
	"shop-planner/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Config   ConfigService
	Shop     ShopService
	Roster   RosterService
	Planning PlanningService
	Export   ExportService
	Calendar CalendarService
}

// NewService 创建 Service 聚合
//
// rdb 可为 nil：月工时缓存退回进程内实现。存储为进程内时同样不使用 Redis 缓存。
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	locks := newShopLocks()

	var cache MonthlyCache
	if cfg.Feature.MonthlyCacheEnabled {
		cacheRDB := rdb
		if repo.InProcess && rdb != nil {
			// 进程内存储重启后版本号从 0 重新计数，Redis 里的旧键会被误命中
			logger.Info("进程内存储，月工时缓存改用进程内实现")
			cacheRDB = nil
		}
		cache = NewMonthlyCache(cacheRDB, cfg.Planning.MonthlyCacheTTL, logger)
	}

	configSvc := NewConfigService(repo, logger)
	planningSvc := NewPlanningService(repo, configSvc, cache, locks, logger)

	return &Service{
		Config:   configSvc,
		Shop:     NewShopService(repo, logger),
		Roster:   NewRosterService(repo, configSvc, locks, logger),
		Planning: planningSvc,
		Export:   NewExportService(planningSvc, logger),
		Calendar: NewCalendarService(planningSvc, cfg.Planning.Location(), cfg.Feature.ICSExportEnabled, logger),
	}
}
