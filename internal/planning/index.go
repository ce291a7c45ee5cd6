package planning

import (
	"sort"
	"time"
)

// WeekEntry 周索引条目
type WeekEntry struct {
	Key     string    `json:"key"`
	Date    time.Time `json:"date"`
	Display string    `json:"display"`
}

// WeekIndex 门店已保存周的目录：按 Key 去重，按 Date 升序
type WeekIndex []WeekEntry

// WeekLabel 周索引展示文本
func WeekLabel(date time.Time) string {
	return date.Format(DayKeyLayout) + " 当周"
}

// Register 登记一周。只登记周一；已存在时原样返回。
func (idx WeekIndex) Register(weekKey string, date time.Time) (WeekIndex, bool) {
	if !IsMonday(date) || idx.Contains(weekKey) {
		return idx.Canonical(), false
	}
	out := append(idx.Canonical(), WeekEntry{
		Key:     weekKey,
		Date:    date,
		Display: WeekLabel(date),
	})
	return out.Canonical(), true
}

// Remove 移除一周
func (idx WeekIndex) Remove(weekKey string) (WeekIndex, bool) {
	out := make(WeekIndex, 0, len(idx))
	removed := false
	for _, e := range idx {
		if e.Key == weekKey {
			removed = true
			continue
		}
		out = append(out, e)
	}
	return out.Canonical(), removed
}

// Contains 是否已登记
func (idx WeekIndex) Contains(weekKey string) bool {
	for _, e := range idx {
		if e.Key == weekKey {
			return true
		}
	}
	return false
}

// Keys 按日期升序的周键
func (idx WeekIndex) Keys() []string {
	c := idx.Canonical()
	keys := make([]string, len(c))
	for i, e := range c {
		keys[i] = e.Key
	}
	return keys
}

// Canonical 返回去重并按日期排序的副本（保留每个 Key 第一次出现的条目）
func (idx WeekIndex) Canonical() WeekIndex {
	seen := make(map[string]bool, len(idx))
	out := make(WeekIndex, 0, len(idx))
	for _, e := range idx {
		if seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
