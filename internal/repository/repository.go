package repository

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Week   WeekRepository
	Roster RosterRepository
	Shop   ShopRepository
	Config SlotConfigRepository

	// InProcess 底层存储不跨进程持久化（driver=memory）
	InProcess bool
}

// NewRepository 基于给定存储创建 Repository 聚合
func NewRepository(store KVStore, logger *zap.Logger) *Repository {
	ip, ok := store.(interface{ InProcess() bool })
	return &Repository{
		Week:      NewWeekRepo(store, logger),
		Roster:    NewRosterRepo(store),
		Shop:      NewShopRepo(store),
		Config:    NewSlotConfigRepo(store),
		InProcess: ok && ip.InProcess(),
	}
}

// NewGormRepository 基于数据库连接创建 Repository 聚合
func NewGormRepository(db *gorm.DB, logger *zap.Logger) *Repository {
	return NewRepository(NewGormStore(db), logger)
}
