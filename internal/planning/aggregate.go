package planning

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// Totals 工时汇总
//
// RealHours 不论日期所属月份全部计入；CalendarHours 只计入属于目标月份的日期。
type Totals struct {
	CalendarHours float64 `json:"calendar_hours"`
	RealHours     float64 `json:"real_hours"`
}

// Add 累加
func (t Totals) Add(o Totals) Totals {
	return Totals{
		CalendarHours: t.CalendarHours + o.CalendarHours,
		RealHours:     t.RealHours + o.RealHours,
	}
}

// Rounded 展示用，保留 1 位小数（中间计算不要调用）
func (t Totals) Rounded() Totals {
	return Totals{CalendarHours: Round1(t.CalendarHours), RealHours: Round1(t.RealHours)}
}

// Round1 保留 1 位小数
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// WeekSource 已持久化周网格的发现与读取
//
// ListWeekKeys 是显式的发现步骤，实现方可以用周索引、全量扫描或带索引的查询。
type WeekSource interface {
	ListWeekKeys(ctx context.Context, shop string) ([]string, error)
	LoadWeek(ctx context.Context, shop, weekKey string) (Grid, bool, error)
}

// monthWindow 自然月的日期区间（闭区间，日期粒度）
type monthWindow struct {
	start time.Time
	end   time.Time
}

func monthOf(t time.Time) monthWindow {
	return monthWindow{start: StartOfMonth(t), end: EndOfMonth(t)}
}

func (w monthWindow) contains(day time.Time) bool {
	return !day.Before(w.start) && !day.After(w.end)
}

// ShopDailyHours 门店某天所有名单员工的工时合计
func (c *Calculator) ShopDailyHours(grid Grid, roster []string, day string) float64 {
	total := 0.0
	for _, emp := range roster {
		total += c.DailyHours(grid, emp, day)
	}
	return total
}

// WeeklyHours 员工周工时；CalendarHours 只计入与 week 同一自然月的日期
func (c *Calculator) WeeklyHours(employee string, week time.Time, grid Grid) Totals {
	w := monthOf(week)
	var t Totals
	for _, d := range WeekDates(week) {
		h := c.DailyHours(grid, employee, DayKey(d))
		t.RealHours += h
		if w.contains(d) {
			t.CalendarHours += h
		}
	}
	return t
}

// ShopWeeklyHours 门店周工时 = 名单内员工周工时之和（不做中间取整）
func (c *Calculator) ShopWeeklyHours(week time.Time, grid Grid, roster []string) Totals {
	var t Totals
	for _, emp := range roster {
		t = t.Add(c.WeeklyHours(emp, week, grid))
	}
	return t
}

// MonthlyHours 员工月工时：扫描门店所有周记录中周一日期落在
// [月初 − 6 天, 月末] 的周，逐日累加
func (c *Calculator) MonthlyHours(ctx context.Context, src WeekSource, shop, employee string, monthAnchor time.Time) (Totals, error) {
	return c.scanMonth(ctx, src, shop, monthAnchor, func(grid Grid, day string) float64 {
		return c.DailyHours(grid, employee, day)
	})
}

// ShopMonthlyHours 门店月工时：与 MonthlyHours 同样扫描，但每天先按名单求和再区分日历/实际
func (c *Calculator) ShopMonthlyHours(ctx context.Context, src WeekSource, shop string, roster []string, monthAnchor time.Time) (Totals, error) {
	return c.scanMonth(ctx, src, shop, monthAnchor, func(grid Grid, day string) float64 {
		return c.ShopDailyHours(grid, roster, day)
	})
}

func (c *Calculator) scanMonth(ctx context.Context, src WeekSource, shop string, monthAnchor time.Time, daily func(Grid, string) float64) (Totals, error) {
	w := monthOf(monthAnchor)
	lower := w.start.AddDate(0, 0, -(DaysPerWeek - 1))

	keys, err := src.ListWeekKeys(ctx, shop)
	if err != nil {
		return Totals{}, fmt.Errorf("列出门店周记录失败: %w", err)
	}

	var total Totals
	for _, key := range keys {
		weekDate, err := ParseDay(key)
		if err != nil {
			c.logger.Warn("跳过无效的周键", zap.String("shop", shop), zap.String("week", key))
			continue
		}
		if weekDate.Before(lower) || weekDate.After(w.end) {
			continue
		}

		grid, ok, err := src.LoadWeek(ctx, shop, key)
		if err != nil {
			return Totals{}, fmt.Errorf("读取周记录 %s 失败: %w", key, err)
		}
		if !ok {
			continue
		}

		for _, d := range WeekDates(weekDate) {
			h := daily(grid, DayKey(d))
			total.RealHours += h
			if w.contains(d) {
				total.CalendarHours += h
			}
		}
	}

	return total, nil
}
