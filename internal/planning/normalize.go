package planning

import "time"

// Normalize 按当前名单与时间段数量校正网格，返回新网格，不修改入参。
//
//   - 名单内每位员工补齐 week 起 7 天的单元格
//   - Slots 单元格长度与 slotCount 不一致时重新分配，按位保留 min(旧, 新) 个值并补 false
//   - Shift / Off 单元格原样保留
//   - 不在名单内的员工被移除
//
// 时间段顺序变化时按位保留会错位，这是已知限制。
func Normalize(grid Grid, week time.Time, roster []string, slotCount int) Grid {
	days := WeekDays(week)
	out := make(Grid, len(roster))

	for _, emp := range roster {
		if _, done := out[emp]; done {
			continue
		}
		src := grid[emp]
		row := make(map[string]Cell, len(src)+DaysPerWeek)
		for day, cell := range src {
			row[day] = cell.Clone()
		}
		for _, day := range days {
			cell, ok := row[day]
			switch {
			case !ok:
				row[day] = NewSlotsCell(slotCount)
			case cell.Kind == KindSlots && len(cell.Slots) != slotCount:
				row[day] = cell.resized(slotCount)
			}
		}
		out[emp] = row
	}

	return out
}
