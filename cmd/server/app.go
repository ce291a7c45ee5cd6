package main

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shop-planner/config"
	"shop-planner/internal/repository"
	"shop-planner/pkg/database"
	applogger "shop-planner/pkg/logger"
)

// app 各子命令共用的启动结果
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB // driver=memory 时为 nil
	repo   *repository.Repository
}

// bootstrap 加载配置、初始化日志并打开存储；migrate 为 true 时先执行迁移
func bootstrap(migrate bool) (*app, error) {
	// 1. 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}

	// 3. 打开存储
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("使用进程内存储，重启后数据丢失")
		a.repo = repository.NewRepository(repository.NewMemoryStore(), logger)
		return a, nil
	}

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}
	a.db = db

	if migrate {
		if err := database.RunMigrations(db, logger); err != nil {
			a.close()
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	a.repo = repository.NewGormRepository(db, logger)
	return a, nil
}

func (a *app) close() {
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	a.logger.Sync()
}
