package dto

import "shop-planner/internal/planning"

// ── 排班操作 DTO ──

// ToggleSlotRequest 切换单个时间段
type ToggleSlotRequest struct {
	Employee string `json:"employee" binding:"required"`
	Day      string `json:"day"      binding:"required"`
	Slot     *int   `json:"slot"     binding:"required,min=0"`
	Value    *bool  `json:"value"` // 为空时取反
}

// SetCellRequest 写入单元格（时间段数组、四段式班次或请假标记）
type SetCellRequest struct {
	Employee string         `json:"employee" binding:"required"`
	Day      string         `json:"day"      binding:"required"`
	Cell     *planning.Cell `json:"cell"     binding:"required"`
}

// CopyWeekRequest 将 from 周复制到当前周
type CopyWeekRequest struct {
	From string `json:"from" binding:"required"`
}

// MonthlyHoursQuery 月工时查询参数
type MonthlyHoursQuery struct {
	Employee string `form:"employee"`
}
