package planning

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OffMarker 请假单元格的固定标记（与历史存储数据保持一致）
const OffMarker = "Congé ☀️"

// CellKind 单元格变体
type CellKind int

const (
	KindSlots CellKind = iota // 按时间段勾选的布尔数组
	KindShift                 // [上班, 暂停, 恢复, 下班] 四段时刻
	KindOff                   // 请假
)

func (k CellKind) String() string {
	switch k {
	case KindSlots:
		return "slots"
	case KindShift:
		return "shift"
	case KindOff:
		return "off"
	default:
		return "unknown"
	}
}

// Shift 四段式班次，Pause/Resume 为空表示无休息
type Shift struct {
	Entry  string
	Pause  string
	Resume string
	Exit   string
}

// Cell 某员工某天的排班单元格（显式标签联合体）
//
// 持久化格式沿用历史结构，不带显式标签：
//   - 布尔数组            → Slots
//   - 长度为 4 且首元素为字符串的数组 → Shift
//   - 字符串              → Off
type Cell struct {
	Kind  CellKind
	Slots []bool
	Shift Shift
	Label string // Off 单元格的原始标记文本
}

// NewSlotsCell 创建长度为 n 的全 false 时间段单元格
func NewSlotsCell(n int) Cell {
	if n < 0 {
		n = 0
	}
	return Cell{Kind: KindSlots, Slots: make([]bool, n)}
}

// SlotsOf 以给定取值创建时间段单元格
func SlotsOf(values ...bool) Cell {
	slots := make([]bool, len(values))
	copy(slots, values)
	return Cell{Kind: KindSlots, Slots: slots}
}

// ShiftOf 创建四段式班次单元格
func ShiftOf(entry, pause, resume, exit string) Cell {
	return Cell{Kind: KindShift, Shift: Shift{Entry: entry, Pause: pause, Resume: resume, Exit: exit}}
}

// OffCell 创建请假单元格
func OffCell() Cell {
	return Cell{Kind: KindOff, Label: OffMarker}
}

// Clone 深拷贝
func (c Cell) Clone() Cell {
	out := c
	if c.Slots != nil {
		out.Slots = make([]bool, len(c.Slots))
		copy(out.Slots, c.Slots)
	}
	return out
}

// Equal 判断两个单元格是否等价
func (c Cell) Equal(o Cell) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case KindShift:
		return c.Shift == o.Shift
	case KindOff:
		return c.Label == o.Label
	default:
		if len(c.Slots) != len(o.Slots) {
			return false
		}
		for i := range c.Slots {
			if c.Slots[i] != o.Slots[i] {
				return false
			}
		}
		return true
	}
}

// CheckedCount 已勾选的时间段数量（非 Slots 单元格为 0）
func (c Cell) CheckedCount() int {
	if c.Kind != KindSlots {
		return 0
	}
	n := 0
	for _, v := range c.Slots {
		if v {
			n++
		}
	}
	return n
}

// resized 返回按 n 重新分配的时间段单元格，按位保留 min(旧长度, n) 个值
func (c Cell) resized(n int) Cell {
	out := NewSlotsCell(n)
	copy(out.Slots, c.Slots)
	return out
}

// ── JSON 编解码 ──

// MarshalJSON 按历史结构输出，不附加类型标签
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindShift:
		return json.Marshal([4]string{c.Shift.Entry, c.Shift.Pause, c.Shift.Resume, c.Shift.Exit})
	case KindOff:
		label := c.Label
		if label == "" {
			label = OffMarker
		}
		return json.Marshal(label)
	default:
		if c.Slots == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(c.Slots)
	}
}

// UnmarshalJSON 按结构识别单元格变体。
// 判定规则：长度为 4 且首元素为字符串 → Shift；其余数组 → Slots。
// 4 个布尔值的数组始终是 Slots，不会被误判为 Shift。
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Cell{Kind: KindSlots}
		return nil
	}

	switch data[0] {
	case '"':
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		*c = Cell{Kind: KindOff, Label: label}
		return nil
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return err
		}
		if len(elems) == 4 && isJSONString(elems[0]) {
			*c = Cell{Kind: KindShift, Shift: Shift{
				Entry:  jsonString(elems[0]),
				Pause:  jsonString(elems[1]),
				Resume: jsonString(elems[2]),
				Exit:   jsonString(elems[3]),
			}}
			return nil
		}
		slots := make([]bool, len(elems))
		for i, e := range elems {
			slots[i] = jsonTruthy(e)
		}
		*c = Cell{Kind: KindSlots, Slots: slots}
		return nil
	default:
		return fmt.Errorf("无法识别的单元格格式: %s", string(data))
	}
}

func isJSONString(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '"'
}

func jsonString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// jsonTruthy 按宽松真值规则解析历史数据中的时间段取值
func jsonTruthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case 't':
		return true
	case 'f', 'n':
		return false
	case '"':
		return jsonString(raw) != ""
	case '[', '{':
		return true
	default:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return false
		}
		return f != 0
	}
}
