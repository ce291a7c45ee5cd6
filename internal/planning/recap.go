package planning

import (
	"fmt"
	"time"
)

// DayRecap 员工单日排班摘要
//
// 由时间段勾选推导：第一段开始为 Start，第一处空档为 Pause，
// 第二段开始为 Resume，第二段结束为 End。只有一段时 Pause/Resume 为空。
type DayRecap struct {
	Day      string  `json:"day"`
	Employee string  `json:"employee"`
	Off      bool    `json:"off"`
	Start    string  `json:"start"`
	Pause    string  `json:"pause"`
	Resume   string  `json:"resume"`
	End      string  `json:"end"`
	Hours    float64 `json:"hours"`
}

// Recap 生成员工单日摘要，时间段标签取自配置（"HH:mm"）
func (c *Calculator) Recap(grid Grid, employee, day string) DayRecap {
	r := DayRecap{Day: day, Employee: employee}
	cell, ok := grid.Cell(employee, day)

	switch {
	case !ok, cell.Kind == KindOff, cell.Kind == KindSlots && cell.CheckedCount() == 0:
		r.Off = true
		r.Start = OffMarker
		return r
	case cell.Kind == KindShift:
		r.Start = cell.Shift.Entry
		r.Pause = cell.Shift.Pause
		r.Resume = cell.Shift.Resume
		r.End = cell.Shift.Exit
	default:
		r.Start, r.Pause, r.Resume, r.End = c.slotRange(cell.Slots)
	}

	r.Hours = c.DailyHours(grid, employee, day)
	return r
}

func (c *Calculator) slotRange(slots []bool) (start, pause, resume, end string) {
	labels := c.cfg.TimeSlots
	label := func(i int) string {
		if i < len(labels) && labels[i] != "" {
			return labels[i]
		}
		return "-"
	}

	inShift := false
	last := len(slots) - 1
	for i, checked := range slots {
		switch {
		case checked && !inShift && start == "":
			start = label(i)
			inShift = true
		case !checked && inShift && pause == "":
			pause = label(i)
			inShift = false
		case checked && !inShift && pause != "" && resume == "":
			resume = label(i)
			inShift = true
		case !checked && inShift && resume != "":
			end = label(i)
			inShift = false
		}
		if checked && i == last {
			end = c.slotEnd(i)
		}
	}
	if inShift && end == "" {
		end = c.slotEnd(last)
	}

	// 只有一段时，第一处空档即为下班时刻
	if resume == "" && pause != "" && end == "" {
		end, pause = pause, ""
	}
	return start, pause, resume, end
}

// slotEnd 第 i 个时间段的结束时刻 = 标签 + interval，跨过零点时记为 "24:00"
func (c *Calculator) slotEnd(i int) string {
	if i < 0 || i >= len(c.cfg.TimeSlots) {
		return "-"
	}
	off, err := ClockOffset(c.cfg.TimeSlots[i])
	if err != nil {
		return "-"
	}
	end := off + time.Duration(c.cfg.Interval)*time.Minute
	if end >= 24*time.Hour {
		return "24:00"
	}
	return fmt.Sprintf("%02d:%02d", int(end.Hours()), int(end.Minutes())%60)
}

// WeekRecap 一周内名单员工的逐日摘要，外层按日期，内层按名单顺序
func (c *Calculator) WeekRecap(grid Grid, week time.Time, roster []string) [][]DayRecap {
	days := WeekDays(week)
	out := make([][]DayRecap, len(days))
	for i, day := range days {
		row := make([]DayRecap, 0, len(roster))
		for _, emp := range roster {
			row = append(row, c.Recap(grid, emp, day))
		}
		out[i] = row
	}
	return out
}
