package repository

import (
	"context"
)

// ShopRepository 门店列表
type ShopRepository interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, name string) (bool, error)
	Remove(ctx context.Context, name string) (bool, error)
}

type shopRepo struct {
	store KVStore
}

// NewShopRepo 创建 ShopRepository 实例
func NewShopRepo(store KVStore) ShopRepository {
	return &shopRepo{store: store}
}

func (r *shopRepo) List(ctx context.Context) ([]string, error) {
	shops, _, err := getJSON[[]string](ctx, r.store, shopsKey)
	if shops == nil {
		shops = []string{}
	}
	return shops, err
}

// Add 追加门店，已存在时返回 false
func (r *shopRepo) Add(ctx context.Context, name string) (bool, error) {
	shops, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, s := range shops {
		if s == name {
			return false, nil
		}
	}
	return true, setJSON(ctx, r.store, shopsKey, append(shops, name))
}

// Remove 移除门店（不删除该店的周记录）
func (r *shopRepo) Remove(ctx context.Context, name string) (bool, error) {
	shops, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	out := make([]string, 0, len(shops))
	for _, s := range shops {
		if s != name {
			out = append(out, s)
		}
	}
	if len(out) == len(shops) {
		return false, nil
	}
	return true, setJSON(ctx, r.store, shopsKey, out)
}
