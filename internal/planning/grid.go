package planning

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	// DayKeyLayout 日期键格式
	DayKeyLayout = "2006-01-02"
	// DaysPerWeek 每周天数（周一起算）
	DaysPerWeek = 7
)

// Grid 排班网格：员工 → 日期键 → 单元格
type Grid map[string]map[string]Cell

// WeekRecord 单店单周的持久化记录
type WeekRecord struct {
	WeekKey string `json:"week_key"`
	Grid    Grid   `json:"grid"`
}

// Clone 深拷贝网格
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for emp, row := range g {
		newRow := make(map[string]Cell, len(row))
		for day, cell := range row {
			newRow[day] = cell.Clone()
		}
		out[emp] = newRow
	}
	return out
}

// Cell 读取单元格
func (g Grid) Cell(employee, day string) (Cell, bool) {
	row, ok := g[employee]
	if !ok {
		return Cell{}, false
	}
	cell, ok := row[day]
	return cell, ok
}

// Employees 按名称排序的员工列表
func (g Grid) Employees() []string {
	names := make([]string, 0, len(g))
	for emp := range g {
		names = append(names, emp)
	}
	sort.Strings(names)
	return names
}

// Equal 判断两个网格是否等价
func Equal(a, b Grid) bool {
	if len(a) != len(b) {
		return false
	}
	for emp, rowA := range a {
		rowB, ok := b[emp]
		if !ok || len(rowA) != len(rowB) {
			return false
		}
		for day, cellA := range rowA {
			cellB, ok := rowB[day]
			if !ok || !cellA.Equal(cellB) {
				return false
			}
		}
	}
	return true
}

// ── 日期工具 ──

// ParseDay 解析日期键，兼容历史数据中的 ISO 时间戳（只取日期部分）
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: 日期为空", ErrInvalidDate)
	}
	if t, err := time.Parse(DayKeyLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// DayKey 将日期格式化为日期键
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// WeekDates 从 anchor 起连续 7 天
func WeekDates(anchor time.Time) []time.Time {
	dates := make([]time.Time, DaysPerWeek)
	for i := range dates {
		dates[i] = anchor.AddDate(0, 0, i)
	}
	return dates
}

// WeekDays 从 anchor 起连续 7 天的日期键
func WeekDays(anchor time.Time) []string {
	keys := make([]string, DaysPerWeek)
	for i, d := range WeekDates(anchor) {
		keys[i] = DayKey(d)
	}
	return keys
}

// IsMonday 是否为周一
func IsMonday(t time.Time) bool {
	return t.Weekday() == time.Monday
}

// StartOfWeek 所在周的周一
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth 所在月第一天
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth 所在月最后一天（日期粒度）
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// MonthKey 月份键 "2006-01"
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ParseMonth 解析 "2006-01" 或任意日期键，返回所在月第一天
func ParseMonth(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01", strings.TrimSpace(s)); err == nil {
		return t, nil
	}
	t, err := ParseDay(s)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfMonth(t), nil
}
