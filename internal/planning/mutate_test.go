package planning

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestToggle_Involution(t *testing.T) {
	week := mustDay(t, "2024-01-29")
	grid := Normalize(Grid{"Alice": {"2024-01-29": SlotsOf(true, false, false)}}, week, []string{"Alice", "Bob"}, 3)

	once, err := Toggle(grid, "Alice", "2024-01-29", 1, nil, 3)
	if err != nil {
		t.Fatalf("Toggle 应成功: %v", err)
	}
	if !once["Alice"]["2024-01-29"].Slots[1] {
		t.Fatal("第一次切换后应为 true")
	}
	twice, err := Toggle(once, "Alice", "2024-01-29", 1, nil, 3)
	if err != nil {
		t.Fatalf("Toggle 应成功: %v", err)
	}
	if diff := cmp.Diff(grid, twice, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("两次切换应还原 (-want +got):\n%s", diff)
	}
}

func TestToggle_DoesNotMutateInput(t *testing.T) {
	grid := Grid{"Alice": {"2024-01-29": SlotsOf(false, false)}}

	out, err := Toggle(grid, "Alice", "2024-01-29", 0, nil, 2)
	if err != nil {
		t.Fatalf("Toggle 应成功: %v", err)
	}
	if grid["Alice"]["2024-01-29"].Slots[0] {
		t.Error("入参网格被修改")
	}
	if !out["Alice"]["2024-01-29"].Slots[0] {
		t.Error("返回网格未生效")
	}
}

func TestToggle_ForcedValue(t *testing.T) {
	grid := Grid{"Alice": {"2024-01-29": SlotsOf(true, false)}}
	forced := true

	out, err := Toggle(grid, "Alice", "2024-01-29", 0, &forced, 2)
	if err != nil {
		t.Fatalf("Toggle 应成功: %v", err)
	}
	if !out["Alice"]["2024-01-29"].Slots[0] {
		t.Error("强制 true 时应保持 true")
	}
}

func TestToggle_AbsentCellInitialized(t *testing.T) {
	out, err := Toggle(Grid{}, "Alice", "2024-01-30", 2, nil, 4)
	if err != nil {
		t.Fatalf("Toggle 应成功: %v", err)
	}
	if diff := cmp.Diff([]bool{false, false, true, false}, out["Alice"]["2024-01-30"].Slots); diff != "" {
		t.Errorf("缺失单元格应初始化后再切换 (-want +got):\n%s", diff)
	}
}

func TestToggle_MissingConfiguration(t *testing.T) {
	grid := Grid{"Alice": {"2024-01-29": SlotsOf(false)}}

	out, err := Toggle(grid, "Alice", "2024-01-29", 0, nil, 0)
	if !errors.Is(err, ErrMissingConfiguration) {
		t.Errorf("期望 ErrMissingConfiguration，实际: %v", err)
	}
	if out != nil {
		t.Error("出错时不应返回网格")
	}
	if grid["Alice"]["2024-01-29"].Slots[0] {
		t.Error("出错时入参不应被修改")
	}
}

func TestToggle_SlotOutOfRange(t *testing.T) {
	_, err := Toggle(Grid{}, "Alice", "2024-01-29", 5, nil, 2)
	if !errors.Is(err, ErrSlotOutOfRange) {
		t.Errorf("期望 ErrSlotOutOfRange，实际: %v", err)
	}
}

func TestToggle_ShiftCellRejected(t *testing.T) {
	grid := Grid{"Alice": {"2024-01-29": ShiftOf("09:00", "", "", "17:00")}}

	_, err := Toggle(grid, "Alice", "2024-01-29", 0, nil, 4)
	if !errors.Is(err, ErrNotSlotCell) {
		t.Errorf("期望 ErrNotSlotCell，实际: %v", err)
	}
}

func TestSetCell_CopyOnWrite(t *testing.T) {
	grid := Grid{
		"Alice": {"2024-01-29": SlotsOf(true)},
		"Bob":   {"2024-01-29": SlotsOf(false)},
	}

	out := SetCell(grid, "Alice", "2024-01-29", OffCell())

	if grid["Alice"]["2024-01-29"].Kind != KindSlots {
		t.Error("入参网格被修改")
	}
	if out["Alice"]["2024-01-29"].Kind != KindOff {
		t.Error("写入未生效")
	}
	if out["Bob"]["2024-01-29"].Kind != KindSlots {
		t.Error("其他员工不应受影响")
	}
}
