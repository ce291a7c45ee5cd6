package planning

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// clockLayouts 班次时刻可接受的格式
var clockLayouts = []string{"15:04", "15:04:05"}

// Diagnostic 单元格计算诊断（时刻解析失败等可恢复错误）
type Diagnostic struct {
	Employee string `json:"employee"`
	Day      string `json:"day"`
	Message  string `json:"message"`
	Err      error  `json:"-"`
}

// Calculator 工时计算器
//
// 计算结果只依赖入参网格与配置；诊断按调用顺序累积，供调用方展示。
// 每个请求使用独立实例。
type Calculator struct {
	cfg         SlotConfig
	logger      *zap.Logger
	diagnostics []Diagnostic
}

// NewCalculator 创建工时计算器，配置无效时返回 ErrMissingConfiguration
func NewCalculator(cfg *SlotConfig, logger *zap.Logger) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{cfg: *cfg, logger: logger}, nil
}

// Config 当前计算使用的配置
func (c *Calculator) Config() SlotConfig {
	return c.cfg
}

// Diagnostics 已记录的诊断
func (c *Calculator) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// DailyHours 某员工某天工时（>= 0）
func (c *Calculator) DailyHours(grid Grid, employee, day string) float64 {
	cell, ok := grid.Cell(employee, day)
	if !ok {
		return 0
	}
	hours, err := c.CellHours(cell)
	if err != nil {
		c.record(employee, day, err)
		return 0
	}
	return hours
}

// CellHours 单元格工时；仅 Shift 单元格可能返回 ErrTimeParse
func (c *Calculator) CellHours(cell Cell) (float64, error) {
	switch cell.Kind {
	case KindOff:
		return 0, nil
	case KindShift:
		return ShiftHours(cell.Shift)
	default:
		return float64(cell.CheckedCount()*c.cfg.Interval) / 60, nil
	}
}

// ShiftHours 四段式班次工时：下班 − 上班，暂停与恢复都存在时扣除休息。
// 结果小于 0 时按 0 计，不视为错误。
func ShiftHours(s Shift) (float64, error) {
	if s.Entry == "" || s.Exit == "" {
		return 0, nil
	}
	entry, err := parseClock(s.Entry)
	if err != nil {
		return 0, err
	}
	exit, err := parseClock(s.Exit)
	if err != nil {
		return 0, err
	}

	hours := exit.Sub(entry).Hours()
	if s.Pause != "" && s.Resume != "" {
		pause, err := parseClock(s.Pause)
		if err != nil {
			return 0, err
		}
		resume, err := parseClock(s.Resume)
		if err != nil {
			return 0, err
		}
		hours -= resume.Sub(pause).Hours()
	}

	if hours <= 0 {
		return 0, nil
	}
	return hours, nil
}

func parseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrTimeParse, s)
}

// ClockOffset 时刻相对当日零点的偏移，额外接受 "24:00" 表示当日结束
func ClockOffset(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "24:00" {
		return 24 * time.Hour, nil
	}
	t, err := parseClock(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
}

func (c *Calculator) record(employee, day string, err error) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Employee: employee,
		Day:      day,
		Message:  err.Error(),
		Err:      err,
	})
	c.logger.Warn("工时计算失败，按 0 计",
		zap.String("employee", employee),
		zap.String("day", day),
		zap.Error(err),
	)
}
