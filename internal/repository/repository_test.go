package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"shop-planner/internal/planning"
	pkgerrors "shop-planner/pkg/errors"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := planning.ParseDay(s)
	if err != nil {
		t.Fatalf("解析日期失败: %v", err)
	}
	return d
}

func newTestRepo() (*Repository, KVStore) {
	store := NewMemoryStore()
	return NewRepository(store, zap.NewNop()), store
}

// ── StoreKey ──

func TestStoreKey_String(t *testing.T) {
	cases := map[StoreKey]string{
		planningKey("Lyon", "2024-01-29"): "planning_Lyon_2024-01-29",
		indexKey("Lyon"):                  "available_weeks_Lyon",
		rosterKey("Lyon", "2024-01-29"):   "selected_employees_Lyon_2024-01-29",
		lastPlanningKey("Lyon"):           "lastPlanning_Lyon",
		shopsKey:                          "shops",
		configKey:                         "config",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("键 %+v 期望 %q，实际 %q", k, want, got)
		}
	}
}

// ── WeekRepository ──

func TestWeekRepo_SaveRegistersMonday(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()
	week := mustDay(t, "2024-01-29")
	grid := planning.Grid{"Alice": {"2024-01-29": planning.SlotsOf(true)}}

	if err := repo.Week.Save(ctx, "Lyon", week, grid); err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}

	got, ok, err := repo.Week.Load(ctx, "Lyon", week)
	if err != nil || !ok {
		t.Fatalf("Load 应命中: ok=%v err=%v", ok, err)
	}
	if !planning.Equal(grid, got) {
		t.Error("读回的网格不一致")
	}

	keys, err := repo.Week.ListWeekKeys(ctx, "Lyon")
	if err != nil {
		t.Fatalf("ListWeekKeys 应成功: %v", err)
	}
	if len(keys) != 1 || keys[0] != "2024-01-29" {
		t.Errorf("周索引不符: %v", keys)
	}

	v, _ := repo.Week.Version(ctx, "Lyon")
	if v != 1 {
		t.Errorf("保存后版本号应为 1，实际 %d", v)
	}

	last, ok, err := repo.Week.LastPlanning(ctx, "Lyon")
	if err != nil || !ok || last.Week != "2024-01-29" {
		t.Errorf("最近编辑周不符: %+v ok=%v err=%v", last, ok, err)
	}
}

func TestWeekRepo_NonMondayIsDraft(t *testing.T) {
	repo, store := newTestRepo()
	ctx := context.Background()
	day := mustDay(t, "2024-01-31")

	if err := repo.Week.Save(ctx, "Lyon", day, planning.Grid{}); err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}

	if _, ok, _ := store.Get(ctx, draftKey("Lyon", "2024-01-31")); !ok {
		t.Error("非周一网格应保存为草稿")
	}
	if n, _ := store.Count(ctx, KindPlanning, "Lyon"); n != 0 {
		t.Errorf("草稿不应计入正式周记录，实际 %d", n)
	}
	keys, _ := repo.Week.ListWeekKeys(ctx, "Lyon")
	if len(keys) != 0 {
		t.Errorf("草稿不应进入周索引: %v", keys)
	}
	if _, ok, _ := repo.Week.Load(ctx, "Lyon", day); !ok {
		t.Error("草稿应可按日期读回")
	}
}

func TestWeekRepo_SaveTwiceKeepsSingleEntry(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()
	week := mustDay(t, "2024-01-29")

	_ = repo.Week.Save(ctx, "Lyon", week, planning.Grid{})
	_ = repo.Week.Save(ctx, "Lyon", week, planning.Grid{})

	idx, err := repo.Week.Index(ctx, "Lyon")
	if err != nil {
		t.Fatalf("Index 应成功: %v", err)
	}
	if len(idx) != 1 {
		t.Errorf("重复保存不应产生重复索引，实际 %d", len(idx))
	}
	if v, _ := repo.Week.Version(ctx, "Lyon"); v != 2 {
		t.Errorf("每次保存版本号递增，期望 2，实际 %d", v)
	}
}

func TestWeekRepo_Delete(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()
	week := mustDay(t, "2024-01-29")
	_ = repo.Week.Save(ctx, "Lyon", week, planning.Grid{})

	if err := repo.Week.Delete(ctx, "Lyon", week); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok, _ := repo.Week.Load(ctx, "Lyon", week); ok {
		t.Error("删除后不应再读到记录")
	}
	keys, _ := repo.Week.ListWeekKeys(ctx, "Lyon")
	if len(keys) != 0 {
		t.Errorf("删除后周索引应为空: %v", keys)
	}
}

func TestWeekRepo_ListWeekKeysRepairsIndex(t *testing.T) {
	repo, store := newTestRepo()
	ctx := context.Background()
	_ = repo.Week.Save(ctx, "Lyon", mustDay(t, "2024-01-29"), planning.Grid{})

	// 模拟索引写入丢失：记录存在但索引缺项
	rec := planning.WeekRecord{WeekKey: "2024-01-22", Grid: planning.Grid{}}
	if err := setJSON(ctx, store, planningKey("Lyon", "2024-01-22"), rec); err != nil {
		t.Fatalf("写入记录失败: %v", err)
	}
	// 其他门店的记录不应混入
	_ = setJSON(ctx, store, planningKey("Lyon-Est", "2024-01-15"), rec)

	keys, err := repo.Week.ListWeekKeys(ctx, "Lyon")
	if err != nil {
		t.Fatalf("ListWeekKeys 应成功: %v", err)
	}
	if len(keys) != 2 || keys[0] != "2024-01-22" || keys[1] != "2024-01-29" {
		t.Errorf("应回退扫描并按日期排序，实际 %v", keys)
	}

	idx, _ := repo.Week.Index(ctx, "Lyon")
	if len(idx) != 2 {
		t.Errorf("索引应被修复，实际 %d 条", len(idx))
	}
}

func TestWeekRepo_ListWeekKeysSameCountDifferentKeys(t *testing.T) {
	repo, store := newTestRepo()
	ctx := context.Background()
	_ = repo.Week.Save(ctx, "Lyon", mustDay(t, "2024-01-29"), planning.Grid{})
	_ = repo.Week.Save(ctx, "Lyon", mustDay(t, "2024-01-22"), planning.Grid{})

	// 索引移除丢失：记录已删，索引仍保留 01-22
	if err := store.Delete(ctx, planningKey("Lyon", "2024-01-22")); err != nil {
		t.Fatalf("删除记录失败: %v", err)
	}
	// 索引登记丢失：记录存在但未进索引
	rec := planning.WeekRecord{WeekKey: "2024-01-15", Grid: planning.Grid{}}
	if err := setJSON(ctx, store, planningKey("Lyon", "2024-01-15"), rec); err != nil {
		t.Fatalf("写入记录失败: %v", err)
	}

	keys, err := repo.Week.ListWeekKeys(ctx, "Lyon")
	if err != nil {
		t.Fatalf("ListWeekKeys 应成功: %v", err)
	}
	if len(keys) != 2 || keys[0] != "2024-01-15" || keys[1] != "2024-01-29" {
		t.Errorf("条数相同但周键不同时应以记录为准，实际 %v", keys)
	}

	idx, _ := repo.Week.Index(ctx, "Lyon")
	got := idx.Keys()
	if len(got) != 2 || got[0] != "2024-01-15" || got[1] != "2024-01-29" {
		t.Errorf("索引应被重建，实际 %v", got)
	}
}

func TestWeekRepo_CorruptIndexFallsBack(t *testing.T) {
	repo, store := newTestRepo()
	ctx := context.Background()
	_ = repo.Week.Save(ctx, "Lyon", mustDay(t, "2024-01-29"), planning.Grid{})
	_ = store.Set(ctx, indexKey("Lyon"), []byte(`{"broken":`))

	if _, err := repo.Week.Index(ctx, "Lyon"); !errors.Is(err, pkgerrors.ErrValueDecode) {
		t.Errorf("损坏的索引应返回 ErrValueDecode，实际: %v", err)
	}

	keys, err := repo.Week.ListWeekKeys(ctx, "Lyon")
	if err != nil || len(keys) != 1 {
		t.Errorf("索引损坏时应回退扫描: %v %v", keys, err)
	}
}

// ── 其他 Repository ──

func TestRosterRepo(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()
	week := mustDay(t, "2024-01-29")

	if _, ok, _ := repo.Roster.Get(ctx, "Lyon", week); ok {
		t.Error("未设置时不应命中")
	}
	if err := repo.Roster.Set(ctx, "Lyon", week, []string{"Alice", "Bob"}); err != nil {
		t.Fatalf("Set 应成功: %v", err)
	}
	got, ok, err := repo.Roster.Get(ctx, "Lyon", week)
	if err != nil || !ok || len(got) != 2 || got[0] != "Alice" {
		t.Errorf("名单不符: %v ok=%v err=%v", got, ok, err)
	}
}

func TestShopRepo(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()

	if added, err := repo.Shop.Add(ctx, "Lyon"); err != nil || !added {
		t.Fatalf("Add 应成功: %v", err)
	}
	if added, _ := repo.Shop.Add(ctx, "Lyon"); added {
		t.Error("重复添加应返回 false")
	}
	_, _ = repo.Shop.Add(ctx, "Paris")

	if removed, _ := repo.Shop.Remove(ctx, "Lyon"); !removed {
		t.Error("Remove 应返回 true")
	}
	shops, _ := repo.Shop.List(ctx)
	if len(shops) != 1 || shops[0] != "Paris" {
		t.Errorf("门店列表不符: %v", shops)
	}
}

func TestSlotConfigRepo(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()

	if _, ok, _ := repo.Config.Get(ctx); ok {
		t.Error("未设置时不应命中")
	}
	cfg := &planning.SlotConfig{TimeSlots: []string{"09:00", "09:30"}, Interval: 30}
	if err := repo.Config.Set(ctx, cfg); err != nil {
		t.Fatalf("Set 应成功: %v", err)
	}
	got, ok, err := repo.Config.Get(ctx)
	if err != nil || !ok || got.SlotCount() != 2 || got.Interval != 30 {
		t.Errorf("配置不符: %+v ok=%v err=%v", got, ok, err)
	}
}
