package planning

import "fmt"

// SlotConfig 时间段配置（由外部配置模块提供，计算期间只读）
type SlotConfig struct {
	TimeSlots []string `json:"time_slots"` // 时间段标签，如 "09:00"
	Interval  int      `json:"interval"`   // 每个时间段的分钟数
}

// SlotCount 时间段数量，nil 配置返回 0
func (c *SlotConfig) SlotCount() int {
	if c == nil {
		return 0
	}
	return len(c.TimeSlots)
}

// Validate 校验配置可用于计算
func (c *SlotConfig) Validate() error {
	if c == nil || len(c.TimeSlots) == 0 {
		return ErrMissingConfiguration
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval 必须大于 0", ErrMissingConfiguration)
	}
	return nil
}
