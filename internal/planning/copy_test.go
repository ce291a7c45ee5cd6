package planning

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCopyWeek_ShiftsDays(t *testing.T) {
	from := mustDay(t, "2024-01-22")
	to := mustDay(t, "2024-01-29")
	src := Grid{
		"Alice": {
			"2024-01-22": SlotsOf(true, false),
			"2024-01-28": ShiftOf("09:00", "", "", "17:00"),
		},
		"Carol": {"2024-01-22": SlotsOf(true, true)},
	}

	got := CopyWeek(src, from, to, []string{"Alice", "Bob"}, 2)

	if diff := cmp.Diff([]bool{true, false}, got["Alice"]["2024-01-29"].Slots); diff != "" {
		t.Errorf("周一应平移 (-want +got):\n%s", diff)
	}
	if got["Alice"]["2024-02-04"].Kind != KindShift {
		t.Errorf("周日班次应平移，实际 %+v", got["Alice"]["2024-02-04"])
	}
	if _, ok := got["Carol"]; ok {
		t.Error("不在目标名单的员工不应复制")
	}
	if len(got["Bob"]) != DaysPerWeek {
		t.Errorf("新员工应补齐 7 天，实际 %d", len(got["Bob"]))
	}
	if _, ok := got["Alice"]["2024-01-22"]; ok {
		t.Error("源周日期不应残留")
	}
}

func TestCopyWeek_SourceUntouched(t *testing.T) {
	src := Grid{"Alice": {"2024-01-22": SlotsOf(true, false)}}

	got := CopyWeek(src, mustDay(t, "2024-01-22"), mustDay(t, "2024-01-29"), []string{"Alice"}, 2)
	got["Alice"]["2024-01-29"].Slots[1] = true

	if src["Alice"]["2024-01-22"].Slots[1] {
		t.Error("修改副本不应影响源网格")
	}
}
