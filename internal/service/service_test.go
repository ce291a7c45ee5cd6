package service

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"shop-planner/config"
	"shop-planner/internal/repository"
	"shop-planner/pkg/redis"
)

func TestNewService_InProcessStoreKeepsCacheLocal(t *testing.T) {
	cfg := &config.Config{
		Planning: config.PlanningConfig{MonthlyCacheTTL: time.Minute},
		Feature:  config.FeatureConfig{MonthlyCacheEnabled: true},
	}
	repo := repository.NewRepository(repository.NewMemoryStore(), zap.NewNop())
	if !repo.InProcess {
		t.Fatal("内存存储应标记为进程内")
	}

	svc := NewService(cfg, repo, &redis.Client{}, zap.NewNop())

	ps, ok := svc.Planning.(*planningService)
	if !ok {
		t.Fatalf("意外的 PlanningService 实现 %T", svc.Planning)
	}
	if _, ok := ps.cache.(*memoryMonthlyCache); !ok {
		t.Errorf("进程内存储即使配置了 Redis 也应使用进程内缓存，实际 %T", ps.cache)
	}
}

func TestNewService_CacheDisabled(t *testing.T) {
	cfg := &config.Config{Feature: config.FeatureConfig{MonthlyCacheEnabled: false}}
	repo := repository.NewRepository(repository.NewMemoryStore(), zap.NewNop())

	svc := NewService(cfg, repo, nil, zap.NewNop())

	if ps := svc.Planning.(*planningService); ps.cache != nil {
		t.Errorf("关闭缓存时不应创建缓存，实际 %T", ps.cache)
	}
}
