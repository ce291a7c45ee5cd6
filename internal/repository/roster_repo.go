package repository

import (
	"context"
	"time"

	"shop-planner/internal/planning"
)

// RosterRepository 每店每周的在岗员工名单
type RosterRepository interface {
	Get(ctx context.Context, shop string, week time.Time) ([]string, bool, error)
	Set(ctx context.Context, shop string, week time.Time, roster []string) error
}

type rosterRepo struct {
	store KVStore
}

// NewRosterRepo 创建 RosterRepository 实例
func NewRosterRepo(store KVStore) RosterRepository {
	return &rosterRepo{store: store}
}

func (r *rosterRepo) Get(ctx context.Context, shop string, week time.Time) ([]string, bool, error) {
	return getJSON[[]string](ctx, r.store, rosterKey(shop, planning.DayKey(week)))
}

func (r *rosterRepo) Set(ctx context.Context, shop string, week time.Time, roster []string) error {
	if roster == nil {
		roster = []string{}
	}
	return setJSON(ctx, r.store, rosterKey(shop, planning.DayKey(week)), roster)
}
