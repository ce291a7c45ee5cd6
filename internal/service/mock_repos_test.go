package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"shop-planner/internal/planning"
	"shop-planner/internal/repository"
)

// ── 测试环境 ──

var testSlots = []string{"09:00", "09:30", "10:00", "10:30"}

const testInterval = 30

type testEnv struct {
	store    *faultyStore
	repo     *repository.Repository
	cache    *countingCache
	config   ConfigService
	shop     ShopService
	roster   RosterService
	planning PlanningService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := &faultyStore{KVStore: repository.NewMemoryStore()}
	logger := zap.NewNop()
	repo := repository.NewRepository(store, logger)
	locks := newShopLocks()
	cache := &countingCache{inner: newMemoryMonthlyCache(0)}

	cfgSvc := NewConfigService(repo, logger)
	env := &testEnv{
		store:    store,
		repo:     repo,
		cache:    cache,
		config:   cfgSvc,
		shop:     NewShopService(repo, logger),
		roster:   NewRosterService(repo, cfgSvc, locks, logger),
		planning: NewPlanningService(repo, cfgSvc, cache, locks, logger),
	}

	err := repo.Config.Set(context.Background(), &planning.SlotConfig{TimeSlots: testSlots, Interval: testInterval})
	if err != nil {
		t.Fatalf("写入测试配置失败: %v", err)
	}
	return env
}

// withRoster 写入名单与可选的网格
func (e *testEnv) withRoster(t *testing.T, shop, week string, names ...string) {
	t.Helper()
	d, err := planning.ParseDay(week)
	if err != nil {
		t.Fatalf("无效的测试日期 %s: %v", week, err)
	}
	if err := e.repo.Roster.Set(context.Background(), shop, d, names); err != nil {
		t.Fatalf("写入名单失败: %v", err)
	}
}

func (e *testEnv) withGrid(t *testing.T, shop, week string, grid planning.Grid) {
	t.Helper()
	d, err := planning.ParseDay(week)
	if err != nil {
		t.Fatalf("无效的测试日期 %s: %v", week, err)
	}
	if err := e.repo.Week.Save(context.Background(), shop, d, grid); err != nil {
		t.Fatalf("写入网格失败: %v", err)
	}
}

// ── 可注入故障的存储 ──

var errStoreDown = errors.New("存储不可用")

type faultyStore struct {
	repository.KVStore

	mu      sync.Mutex
	failGet map[repository.Kind]bool
	failSet bool
}

func (s *faultyStore) failOnGet(kind repository.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet == nil {
		s.failGet = make(map[repository.Kind]bool)
	}
	s.failGet[kind] = true
}

func (s *faultyStore) setFailSet(v bool) {
	s.mu.Lock()
	s.failSet = v
	s.mu.Unlock()
}

func (s *faultyStore) Get(ctx context.Context, key repository.StoreKey) ([]byte, bool, error) {
	s.mu.Lock()
	fail := s.failGet[key.Kind]
	s.mu.Unlock()
	if fail {
		return nil, false, errStoreDown
	}
	return s.KVStore.Get(ctx, key)
}

func (s *faultyStore) Set(ctx context.Context, key repository.StoreKey, value []byte) error {
	s.mu.Lock()
	fail := s.failSet
	s.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return s.KVStore.Set(ctx, key, value)
}

// ── 计数缓存 ──

type countingCache struct {
	inner MonthlyCache

	mu   sync.Mutex
	hits int
	sets int
}

func (c *countingCache) Get(ctx context.Context, key string) (planning.Totals, bool) {
	t, ok := c.inner.Get(ctx, key)
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
	}
	return t, ok
}

func (c *countingCache) Set(ctx context.Context, key string, totals planning.Totals) {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	c.inner.Set(ctx, key, totals)
}

func (c *countingCache) counts() (hits, sets int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.sets
}

func boolPtr(v bool) *bool { return &v }

func intPtr(v int) *int { return &v }
