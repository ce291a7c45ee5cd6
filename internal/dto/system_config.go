package dto

// ── 时间段配置 DTO ──

// UpdateSlotConfigRequest 更新时间段配置请求
type UpdateSlotConfigRequest struct {
	TimeSlots []string `json:"time_slots" binding:"required,min=1,max=96,dive,required"`
	Interval  int      `json:"interval"   binding:"required,min=1,max=240"`
}

// SlotConfigResponse 时间段配置响应
type SlotConfigResponse struct {
	TimeSlots []string `json:"time_slots"`
	Interval  int      `json:"interval"`
	SlotCount int      `json:"slot_count"`
}
