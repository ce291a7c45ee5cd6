package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"shop-planner/internal/dto"
	"shop-planner/internal/planning"
	"shop-planner/internal/repository"
)

// RosterService 每周员工名单业务接口
type RosterService interface {
	Get(ctx context.Context, shop, week string) (*dto.RosterResponse, error)
	// Update 保存名单，并按新名单校正、保存该周网格
	Update(ctx context.Context, shop, week string, req *dto.UpdateRosterRequest) (*dto.RosterResponse, error)
}

type rosterService struct {
	repo   *repository.Repository
	config ConfigService
	locks  *shopLocks
	logger *zap.Logger
}

// NewRosterService 创建 RosterService 实例
func NewRosterService(repo *repository.Repository, configSvc ConfigService, locks *shopLocks, logger *zap.Logger) RosterService {
	if locks == nil {
		locks = newShopLocks()
	}
	return &rosterService{repo: repo, config: configSvc, locks: locks, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *rosterService) Get(ctx context.Context, shop, week string) (*dto.RosterResponse, error) {
	if _, err := cleanShopName(shop); err != nil {
		return nil, err
	}
	w, err := planning.ParseDay(week)
	if err != nil {
		return nil, err
	}

	roster, ok, err := s.repo.Roster.Get(ctx, shop, w)
	if err != nil {
		s.logger.Error("读取员工名单失败", zap.String("shop", shop), zap.Error(err))
		return nil, err
	}
	if !ok || len(roster) == 0 {
		return nil, planning.ErrMissingRoster
	}
	return &dto.RosterResponse{Shop: shop, Week: planning.DayKey(w), Employees: roster}, nil
}

// ────────────────────── Update ──────────────────────

func (s *rosterService) Update(ctx context.Context, shop, week string, req *dto.UpdateRosterRequest) (*dto.RosterResponse, error) {
	if _, err := cleanShopName(shop); err != nil {
		return nil, err
	}
	w, err := planning.ParseDay(week)
	if err != nil {
		return nil, err
	}

	roster := dedupeNames(req.Employees)
	if len(roster) == 0 {
		return nil, planning.ErrMissingRoster
	}

	cfg, err := s.config.Current(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(shop)
	defer unlock()

	if err := s.repo.Roster.Set(ctx, shop, w, roster); err != nil {
		s.logger.Error("保存员工名单失败", zap.String("shop", shop), zap.Error(err))
		return nil, err
	}

	// 新名单：补齐新员工、移除离开的员工
	raw, _, err := s.repo.Week.Load(ctx, shop, w)
	if err != nil {
		s.logger.Error("读取周排班失败", zap.String("shop", shop), zap.Error(err))
		return nil, err
	}
	grid := planning.Normalize(raw, w, roster, cfg.SlotCount())
	if err := s.repo.Week.Save(ctx, shop, w, grid); err != nil {
		s.logger.Error("保存周排班失败", zap.String("shop", shop), zap.Error(err))
		return nil, err
	}

	// 新门店自动登记到门店列表
	if _, err := s.repo.Shop.Add(ctx, shop); err != nil {
		s.logger.Warn("登记门店失败", zap.String("shop", shop), zap.Error(err))
	}

	s.logger.Info("员工名单已更新",
		zap.String("shop", shop),
		zap.String("week", planning.DayKey(w)),
		zap.Int("count", len(roster)),
	)
	return &dto.RosterResponse{Shop: shop, Week: planning.DayKey(w), Employees: roster}, nil
}

// dedupeNames 去除首尾空白与重复，保持原顺序
func dedupeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
