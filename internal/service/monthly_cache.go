package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"shop-planner/internal/planning"
	"shop-planner/pkg/redis"
)

// MonthlyCache 月工时缓存
//
// 键由 planning.MemoKey 生成，包含门店网格版本，写入周记录后旧键自然失效，无需主动清理。
type MonthlyCache interface {
	Get(ctx context.Context, key string) (planning.Totals, bool)
	Set(ctx context.Context, key string, totals planning.Totals)
}

// NewMonthlyCache rdb 非空时使用 Redis，否则使用进程内缓存
func NewMonthlyCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) MonthlyCache {
	if rdb != nil {
		return &redisMonthlyCache{rdb: rdb, ttl: ttl, logger: logger}
	}
	return newMemoryMonthlyCache(ttl)
}

// ── Redis ──

type redisMonthlyCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func (c *redisMonthlyCache) Get(ctx context.Context, key string) (planning.Totals, bool) {
	var t planning.Totals
	ok, err := c.rdb.GetJSON(ctx, key, &t)
	if err != nil {
		// 缓存故障时降级为直接计算
		c.logger.Warn("读取月工时缓存失败", zap.String("key", key), zap.Error(err))
		return planning.Totals{}, false
	}
	return t, ok
}

func (c *redisMonthlyCache) Set(ctx context.Context, key string, totals planning.Totals) {
	if err := c.rdb.SetJSON(ctx, key, totals, c.ttl); err != nil {
		c.logger.Warn("写入月工时缓存失败", zap.String("key", key), zap.Error(err))
	}
}

// ── 进程内 ──

type memoryCacheEntry struct {
	totals  planning.Totals
	expires time.Time
}

type memoryMonthlyCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryCacheEntry
	now     func() time.Time
}

func newMemoryMonthlyCache(ttl time.Duration) *memoryMonthlyCache {
	return &memoryMonthlyCache{ttl: ttl, entries: make(map[string]memoryCacheEntry), now: time.Now}
}

func (c *memoryMonthlyCache) Get(_ context.Context, key string) (planning.Totals, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return planning.Totals{}, false
	}
	if c.ttl > 0 && c.now().After(e.expires) {
		delete(c.entries, key)
		return planning.Totals{}, false
	}
	return e.totals, true
}

func (c *memoryMonthlyCache) Set(_ context.Context, key string, totals planning.Totals) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	// 顺带清理过期条目
	for k, e := range c.entries {
		if c.ttl > 0 && now.After(e.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = memoryCacheEntry{totals: totals, expires: now.Add(c.ttl)}
}
