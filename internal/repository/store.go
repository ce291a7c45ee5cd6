package repository

import (
	"context"
	"encoding/json"
	"fmt"

	pkgerrors "shop-planner/pkg/errors"
)

// Kind 存储记录类型
type Kind string

const (
	KindPlanning          Kind = "planning"
	KindPlanningDraft     Kind = "planning_draft"
	KindAvailableWeeks    Kind = "available_weeks"
	KindSelectedEmployees Kind = "selected_employees"
	KindShops             Kind = "shops"
	KindConfig            Kind = "config"
	KindLastPlanning      Kind = "lastPlanning"
	KindPlanningVersion   Kind = "planning_version"
)

// StoreKey 类型化的存储键
//
// 字符串形式与历史数据布局保持一致，例如 planning_<shop>_<week>、available_weeks_<shop>。
type StoreKey struct {
	Kind Kind
	Shop string
	Week string
}

func (k StoreKey) String() string {
	switch {
	case k.Shop == "" && k.Week == "":
		return string(k.Kind)
	case k.Week == "":
		return fmt.Sprintf("%s_%s", k.Kind, k.Shop)
	default:
		return fmt.Sprintf("%s_%s_%s", k.Kind, k.Shop, k.Week)
	}
}

// ── 构造函数 ──

func planningKey(shop, week string) StoreKey {
	return StoreKey{Kind: KindPlanning, Shop: shop, Week: week}
}

func draftKey(shop, week string) StoreKey {
	return StoreKey{Kind: KindPlanningDraft, Shop: shop, Week: week}
}

func indexKey(shop string) StoreKey {
	return StoreKey{Kind: KindAvailableWeeks, Shop: shop}
}

func rosterKey(shop, week string) StoreKey {
	return StoreKey{Kind: KindSelectedEmployees, Shop: shop, Week: week}
}

func lastPlanningKey(shop string) StoreKey {
	return StoreKey{Kind: KindLastPlanning, Shop: shop}
}

func versionKey(shop string) StoreKey {
	return StoreKey{Kind: KindPlanningVersion, Shop: shop}
}

var (
	shopsKey  = StoreKey{Kind: KindShops}
	configKey = StoreKey{Kind: KindConfig}
)

// KVStore 同步的字符串键值存储，无事务保证
//
// ListKeys/Count 只按 Kind+Shop 精确枚举，不做前缀匹配。
type KVStore interface {
	Get(ctx context.Context, key StoreKey) ([]byte, bool, error)
	Set(ctx context.Context, key StoreKey, value []byte) error
	Delete(ctx context.Context, key StoreKey) error
	ListKeys(ctx context.Context, kind Kind, shop string) ([]StoreKey, error)
	Count(ctx context.Context, kind Kind, shop string) (int64, error)
}

// getJSON 读取并解析 JSON 值
func getJSON[T any](ctx context.Context, s KVStore, key StoreKey) (T, bool, error) {
	var out T
	data, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return out, ok, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false, fmt.Errorf("%w: %s: %v", pkgerrors.ErrValueDecode, key, err)
	}
	return out, true, nil
}

// setJSON 序列化后写入
func setJSON(ctx context.Context, s KVStore, key StoreKey, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化 %s 失败: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
