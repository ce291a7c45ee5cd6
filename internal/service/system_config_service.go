package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"shop-planner/config"
	"shop-planner/internal/dto"
	"shop-planner/internal/planning"
	"shop-planner/internal/repository"
)

// ── 时间段配置模块业务错误 ──

var (
	ErrInvalidTimeSlot = errors.New("时间段标签格式无效，应为 HH:mm")
)

// ConfigService 时间段配置业务接口
type ConfigService interface {
	Get(ctx context.Context) (*dto.SlotConfigResponse, error)
	Update(ctx context.Context, req *dto.UpdateSlotConfigRequest) (*dto.SlotConfigResponse, error)
	// Current 当前生效的配置，未配置或无效时返回 planning.ErrMissingConfiguration
	Current(ctx context.Context) (*planning.SlotConfig, error)
	// Seed 存储中没有配置时写入默认值
	Seed(ctx context.Context, defaults config.PlanningConfig) error
}

type configService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewConfigService 创建 ConfigService 实例
func NewConfigService(repo *repository.Repository, logger *zap.Logger) ConfigService {
	return &configService{repo: repo, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *configService) Get(ctx context.Context) (*dto.SlotConfigResponse, error) {
	cfg, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return toSlotConfigResponse(cfg), nil
}

func (s *configService) Current(ctx context.Context) (*planning.SlotConfig, error) {
	cfg, ok, err := s.repo.Config.Get(ctx)
	if err != nil {
		s.logger.Error("读取时间段配置失败", zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, planning.ErrMissingConfiguration
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ────────────────────── Update ──────────────────────

func (s *configService) Update(ctx context.Context, req *dto.UpdateSlotConfigRequest) (*dto.SlotConfigResponse, error) {
	labels := make([]string, len(req.TimeSlots))
	for i, raw := range req.TimeSlots {
		label, err := normalizeSlotLabel(raw)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}

	cfg := &planning.SlotConfig{TimeSlots: labels, Interval: req.Interval}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Config.Set(ctx, cfg); err != nil {
		s.logger.Error("保存时间段配置失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("时间段配置已更新",
		zap.Int("slot_count", cfg.SlotCount()),
		zap.Int("interval", cfg.Interval),
	)
	return toSlotConfigResponse(cfg), nil
}

// ────────────────────── Seed ──────────────────────

func (s *configService) Seed(ctx context.Context, defaults config.PlanningConfig) error {
	_, ok, err := s.repo.Config.Get(ctx)
	if err != nil {
		// 已有配置但无法解析时不覆盖，留给用户通过接口修正
		s.logger.Warn("已有时间段配置无法解析，跳过初始化", zap.Error(err))
		return nil
	}
	if ok {
		return nil
	}

	cfg := &planning.SlotConfig{TimeSlots: defaults.TimeSlots, Interval: defaults.Interval}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("默认时间段配置无效: %w", err)
	}
	if err := s.repo.Config.Set(ctx, cfg); err != nil {
		return fmt.Errorf("写入默认时间段配置失败: %w", err)
	}

	s.logger.Info("已写入默认时间段配置", zap.Int("slot_count", cfg.SlotCount()))
	return nil
}

// ── 辅助函数 ──

func normalizeSlotLabel(raw string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeSlot, raw)
	}
	return t.Format("15:04"), nil
}

func toSlotConfigResponse(cfg *planning.SlotConfig) *dto.SlotConfigResponse {
	return &dto.SlotConfigResponse{
		TimeSlots: cfg.TimeSlots,
		Interval:  cfg.Interval,
		SlotCount: cfg.SlotCount(),
	}
}
