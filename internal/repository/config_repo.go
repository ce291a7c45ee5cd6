package repository

import (
	"context"

	"shop-planner/internal/planning"
)

// SlotConfigRepository 时间段配置
type SlotConfigRepository interface {
	Get(ctx context.Context) (*planning.SlotConfig, bool, error)
	Set(ctx context.Context, cfg *planning.SlotConfig) error
}

type slotConfigRepo struct {
	store KVStore
}

// NewSlotConfigRepo 创建 SlotConfigRepository 实例
func NewSlotConfigRepo(store KVStore) SlotConfigRepository {
	return &slotConfigRepo{store: store}
}

func (r *slotConfigRepo) Get(ctx context.Context) (*planning.SlotConfig, bool, error) {
	cfg, ok, err := getJSON[planning.SlotConfig](ctx, r.store, configKey)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &cfg, true, nil
}

func (r *slotConfigRepo) Set(ctx context.Context, cfg *planning.SlotConfig) error {
	return setJSON(ctx, r.store, configKey, cfg)
}
