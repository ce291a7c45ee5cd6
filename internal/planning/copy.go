package planning

import "time"

// CopyWeek 将 from 周的网格平移到 to 周，只保留 to 周名单内的员工，并按 slotCount 校正
func CopyWeek(src Grid, from, to time.Time, roster []string, slotCount int) Grid {
	offset := int(to.Sub(from).Hours() / 24)

	inRoster := make(map[string]bool, len(roster))
	for _, emp := range roster {
		inRoster[emp] = true
	}

	shifted := make(Grid, len(roster))
	for emp, row := range src {
		if !inRoster[emp] {
			continue
		}
		newRow := make(map[string]Cell, len(row))
		for day, cell := range row {
			d, err := ParseDay(day)
			if err != nil {
				continue
			}
			newRow[DayKey(d.AddDate(0, 0, offset))] = cell.Clone()
		}
		shifted[emp] = newRow
	}

	return Normalize(shifted, to, roster, slotCount)
}
