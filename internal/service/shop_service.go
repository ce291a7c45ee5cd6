package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"shop-planner/internal/dto"
	"shop-planner/internal/planning"
	"shop-planner/internal/repository"
)

// ── 门店模块业务错误 ──

var (
	ErrShopNotFound     = errors.New("门店不存在")
	ErrShopExists       = errors.New("门店已存在")
	ErrInvalidShop      = errors.New("门店名称无效")
	ErrNoRecentPlanning = errors.New("该门店暂无编辑记录")
)

// ShopService 门店业务接口
type ShopService interface {
	List(ctx context.Context) (*dto.ShopListResponse, error)
	Create(ctx context.Context, req *dto.CreateShopRequest) (*dto.ShopListResponse, error)
	Delete(ctx context.Context, name string) error
	// Weeks 已保存的正式周，按日期升序
	Weeks(ctx context.Context, shop string) ([]dto.WeekEntryResponse, error)
	Last(ctx context.Context, shop string) (*dto.LastPlanningResponse, error)
}

type shopService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShopService 创建 ShopService 实例
func NewShopService(repo *repository.Repository, logger *zap.Logger) ShopService {
	return &shopService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *shopService) List(ctx context.Context) (*dto.ShopListResponse, error) {
	shops, err := s.repo.Shop.List(ctx)
	if err != nil {
		s.logger.Error("列出门店失败", zap.Error(err))
		return nil, err
	}
	return &dto.ShopListResponse{Shops: shops}, nil
}

// ────────────────────── Create ──────────────────────

func (s *shopService) Create(ctx context.Context, req *dto.CreateShopRequest) (*dto.ShopListResponse, error) {
	name, err := cleanShopName(req.Name)
	if err != nil {
		return nil, err
	}

	added, err := s.repo.Shop.Add(ctx, name)
	if err != nil {
		s.logger.Error("新增门店失败", zap.String("shop", name), zap.Error(err))
		return nil, err
	}
	if !added {
		return nil, ErrShopExists
	}

	return s.List(ctx)
}

// ────────────────────── Delete ──────────────────────

func (s *shopService) Delete(ctx context.Context, name string) error {
	removed, err := s.repo.Shop.Remove(ctx, name)
	if err != nil {
		s.logger.Error("删除门店失败", zap.String("shop", name), zap.Error(err))
		return err
	}
	if !removed {
		return ErrShopNotFound
	}
	return nil
}

// ────────────────────── Weeks ──────────────────────

func (s *shopService) Weeks(ctx context.Context, shop string) ([]dto.WeekEntryResponse, error) {
	// 先走 ListWeekKeys，索引不一致时会被修复
	keys, err := s.repo.Week.ListWeekKeys(ctx, shop)
	if err != nil {
		s.logger.Error("列出周记录失败", zap.String("shop", shop), zap.Error(err))
		return nil, err
	}

	result := make([]dto.WeekEntryResponse, 0, len(keys))
	for _, key := range keys {
		d, err := planning.ParseDay(key)
		if err != nil {
			continue
		}
		result = append(result, dto.WeekEntryResponse{
			Key:     key,
			Date:    planning.DayKey(d),
			Display: planning.WeekLabel(d),
		})
	}
	return result, nil
}

// ────────────────────── Last ──────────────────────

func (s *shopService) Last(ctx context.Context, shop string) (*dto.LastPlanningResponse, error) {
	last, ok, err := s.repo.Week.LastPlanning(ctx, shop)
	if err != nil {
		s.logger.Error("读取最近编辑周失败", zap.String("shop", shop), zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, ErrNoRecentPlanning
	}
	return &dto.LastPlanningResponse{Shop: shop, Week: last.Week}, nil
}

// ── 辅助函数 ──

func cleanShopName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || len(name) > 100 {
		return "", ErrInvalidShop
	}
	return name, nil
}
