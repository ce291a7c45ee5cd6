package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shop-planner/internal/planning"
)

// LastPlanning 门店最近一次编辑的周
type LastPlanning struct {
	Week     string        `json:"week"`
	Planning planning.Grid `json:"planning"`
}

// WeekRepository 周网格与周索引的数据访问接口
//
// 周一对应的网格是正式周记录，登记到周索引；其他日期只作为草稿保存，不参与月度统计。
type WeekRepository interface {
	Load(ctx context.Context, shop string, week time.Time) (planning.Grid, bool, error)
	Save(ctx context.Context, shop string, week time.Time, grid planning.Grid) error
	Delete(ctx context.Context, shop string, week time.Time) error

	// ListWeekKeys 门店所有正式周记录的周键（按日期升序）
	ListWeekKeys(ctx context.Context, shop string) ([]string, error)
	// LoadWeek 按周键读取正式周记录
	LoadWeek(ctx context.Context, shop, weekKey string) (planning.Grid, bool, error)

	Index(ctx context.Context, shop string) (planning.WeekIndex, error)
	Version(ctx context.Context, shop string) (int64, error)
	LastPlanning(ctx context.Context, shop string) (*LastPlanning, bool, error)
}

type weekRepo struct {
	store  KVStore
	logger *zap.Logger
}

// NewWeekRepo 创建 WeekRepository 实例
func NewWeekRepo(store KVStore, logger *zap.Logger) WeekRepository {
	return &weekRepo{store: store, logger: logger}
}

// recordKey 周一走正式键，其余走草稿键
func recordKey(shop string, week time.Time) StoreKey {
	key := planning.DayKey(week)
	if planning.IsMonday(week) {
		return planningKey(shop, key)
	}
	return draftKey(shop, key)
}

func (r *weekRepo) Load(ctx context.Context, shop string, week time.Time) (planning.Grid, bool, error) {
	rec, ok, err := getJSON[planning.WeekRecord](ctx, r.store, recordKey(shop, week))
	if err != nil || !ok {
		return nil, ok, err
	}
	return rec.Grid, true, nil
}

func (r *weekRepo) LoadWeek(ctx context.Context, shop, weekKey string) (planning.Grid, bool, error) {
	rec, ok, err := getJSON[planning.WeekRecord](ctx, r.store, planningKey(shop, weekKey))
	if err != nil || !ok {
		return nil, ok, err
	}
	return rec.Grid, true, nil
}

// Save 写入周记录，依次更新周索引、版本号与最近编辑周。
// 各步骤相互独立，中途失败时 ListWeekKeys 负责修复索引。
func (r *weekRepo) Save(ctx context.Context, shop string, week time.Time, grid planning.Grid) error {
	weekKey := planning.DayKey(week)
	rec := planning.WeekRecord{WeekKey: weekKey, Grid: grid}
	if err := setJSON(ctx, r.store, recordKey(shop, week), rec); err != nil {
		return err
	}

	if planning.IsMonday(week) {
		idx, err := r.Index(ctx, shop)
		if err != nil {
			r.logger.Warn("周索引无法解析，跳过登记", zap.String("shop", shop), zap.Error(err))
		} else if next, added := idx.Register(weekKey, week); added {
			if err := setJSON(ctx, r.store, indexKey(shop), next); err != nil {
				return fmt.Errorf("更新周索引失败: %w", err)
			}
		}
		if err := r.bumpVersion(ctx, shop); err != nil {
			return err
		}
	}

	return setJSON(ctx, r.store, lastPlanningKey(shop), LastPlanning{Week: weekKey, Planning: grid})
}

func (r *weekRepo) Delete(ctx context.Context, shop string, week time.Time) error {
	if err := r.store.Delete(ctx, recordKey(shop, week)); err != nil {
		return err
	}
	if !planning.IsMonday(week) {
		return nil
	}

	idx, err := r.Index(ctx, shop)
	if err != nil {
		r.logger.Warn("周索引无法解析，跳过移除", zap.String("shop", shop), zap.Error(err))
	} else if next, removed := idx.Remove(planning.DayKey(week)); removed {
		if err := setJSON(ctx, r.store, indexKey(shop), next); err != nil {
			return fmt.Errorf("更新周索引失败: %w", err)
		}
	}
	return r.bumpVersion(ctx, shop)
}

func (r *weekRepo) Index(ctx context.Context, shop string) (planning.WeekIndex, error) {
	idx, _, err := getJSON[planning.WeekIndex](ctx, r.store, indexKey(shop))
	if err != nil {
		return nil, err
	}
	return idx.Canonical(), nil
}

// ListWeekKeys 索引与正式记录的周键集合完全一致时直接使用索引，
// 否则以枚举结果为准并重建索引。条数不同时跳过逐键比对。
func (r *weekRepo) ListWeekKeys(ctx context.Context, shop string) ([]string, error) {
	idx, idxErr := r.Index(ctx, shop)
	if idxErr != nil {
		r.logger.Warn("周索引无法解析，改为扫描周记录", zap.String("shop", shop), zap.Error(idxErr))
	}

	count, err := r.store.Count(ctx, KindPlanning, shop)
	if err != nil {
		return nil, fmt.Errorf("统计周记录失败: %w", err)
	}

	keys, err := r.store.ListKeys(ctx, KindPlanning, shop)
	if err != nil {
		return nil, fmt.Errorf("枚举周记录失败: %w", err)
	}
	if idxErr == nil && int64(len(idx)) == count && sameWeeks(idx.Keys(), keys) {
		return idx.Keys(), nil
	}

	var rebuilt planning.WeekIndex
	for _, k := range keys {
		d, err := planning.ParseDay(k.Week)
		if err != nil {
			r.logger.Warn("跳过无效的周记录键", zap.String("key", k.String()))
			continue
		}
		rebuilt, _ = rebuilt.Register(k.Week, d)
	}

	r.logger.Warn("周索引与周记录不一致，已重建",
		zap.String("shop", shop),
		zap.Int("index_len", len(idx)),
		zap.Int64("records", count),
	)
	if err := setJSON(ctx, r.store, indexKey(shop), rebuilt); err != nil {
		r.logger.Error("写回周索引失败", zap.String("shop", shop), zap.Error(err))
	}

	return rebuilt.Keys(), nil
}

// sameWeeks 索引周键与存储周键按集合比较
func sameWeeks(indexed []string, stored []StoreKey) bool {
	if len(indexed) != len(stored) {
		return false
	}
	seen := make(map[string]struct{}, len(indexed))
	for _, k := range indexed {
		seen[k] = struct{}{}
	}
	for _, k := range stored {
		if _, ok := seen[k.Week]; !ok {
			return false
		}
	}
	return len(seen) == len(stored)
}

func (r *weekRepo) Version(ctx context.Context, shop string) (int64, error) {
	v, _, err := getJSON[int64](ctx, r.store, versionKey(shop))
	return v, err
}

func (r *weekRepo) bumpVersion(ctx context.Context, shop string) error {
	v, err := r.Version(ctx, shop)
	if err != nil {
		// 以当前时间戳重新起算，保证大于历史版本
		r.logger.Warn("版本号无法解析，重置", zap.String("shop", shop), zap.Error(err))
		v = time.Now().UnixNano()
	}
	if err := setJSON(ctx, r.store, versionKey(shop), v+1); err != nil {
		return fmt.Errorf("更新版本号失败: %w", err)
	}
	return nil
}

func (r *weekRepo) LastPlanning(ctx context.Context, shop string) (*LastPlanning, bool, error) {
	lp, ok, err := getJSON[LastPlanning](ctx, r.store, lastPlanningKey(shop))
	if err != nil || !ok {
		return nil, ok, err
	}
	return &lp, true, nil
}
