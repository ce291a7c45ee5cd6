package planning

import "fmt"

// Toggle 切换单个时间段，返回新网格（写时复制，入参不变）。
//
// forced 非 nil 时直接写入该值，否则取反。单元格不存在时先按 slotCount 初始化为全 false。
// slotCount <= 0 视为缺少配置，在任何修改之前返回 ErrMissingConfiguration。
func Toggle(grid Grid, employee, day string, slotIndex int, forced *bool, slotCount int) (Grid, error) {
	if slotCount <= 0 {
		return nil, ErrMissingConfiguration
	}
	if slotIndex < 0 || slotIndex >= slotCount {
		return nil, fmt.Errorf("%w: %d (共 %d 个)", ErrSlotOutOfRange, slotIndex, slotCount)
	}

	cell, ok := grid.Cell(employee, day)
	switch {
	case !ok:
		cell = NewSlotsCell(slotCount)
	case cell.Kind != KindSlots:
		return nil, fmt.Errorf("%w: %s %s 为 %s", ErrNotSlotCell, employee, day, cell.Kind)
	case len(cell.Slots) != slotCount:
		cell = cell.resized(slotCount)
	default:
		cell = cell.Clone()
	}

	value := !cell.Slots[slotIndex]
	if forced != nil {
		value = *forced
	}
	cell.Slots[slotIndex] = value

	return SetCell(grid, employee, day, cell), nil
}

// SetCell 写入整个单元格，返回新网格（写时复制，入参不变）
func SetCell(grid Grid, employee, day string, cell Cell) Grid {
	out := make(Grid, len(grid)+1)
	for emp, row := range grid {
		out[emp] = row
	}

	src := grid[employee]
	row := make(map[string]Cell, len(src)+1)
	for d, c := range src {
		row[d] = c
	}
	row[day] = cell.Clone()
	out[employee] = row

	return out
}
