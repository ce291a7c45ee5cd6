package planning

import "errors"

// ── 排班引擎错误 ──
//
// ErrInvalidDate / ErrMissingRoster / ErrMissingConfiguration 对当前计算不可恢复，
// 由调用方中止展示并引导用户修正周次、门店或配置。
// ErrTimeParse 仅在单元格内部恢复：该单元格记 0 工时并记录诊断，不中断整体汇总。

var (
	ErrInvalidDate          = errors.New("周次日期无效")
	ErrMissingRoster        = errors.New("未选择任何员工")
	ErrMissingConfiguration = errors.New("时间段配置无效")
	ErrTimeParse            = errors.New("时间格式无效，应为 HH:mm")

	ErrSlotOutOfRange  = errors.New("时间段索引越界")
	ErrUnknownEmployee = errors.New("员工不在当周名单中")
	ErrNotSlotCell     = errors.New("单元格不是时间段格式")
)
