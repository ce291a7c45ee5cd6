package planning

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func newRecapCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator(&SlotConfig{
		TimeSlots: []string{"09:00", "09:30", "10:00", "10:30"},
		Interval:  30,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("创建计算器失败: %v", err)
	}
	return calc
}

func TestRecap_TwoRuns(t *testing.T) {
	calc := newRecapCalculator(t)
	grid := Grid{"Alice": {"2024-01-29": SlotsOf(true, true, false, true)}}

	got := calc.Recap(grid, "Alice", "2024-01-29")

	want := DayRecap{
		Day: "2024-01-29", Employee: "Alice",
		Start: "09:00", Pause: "10:00", Resume: "10:30", End: "11:00",
		Hours: 1.5,
	}
	if got != want {
		t.Errorf("摘要不符\nwant %+v\ngot  %+v", want, got)
	}
}

func TestRecap_SingleRunEndsAtGap(t *testing.T) {
	calc := newRecapCalculator(t)
	grid := Grid{"Alice": {"2024-01-29": SlotsOf(true, true, false, false)}}

	got := calc.Recap(grid, "Alice", "2024-01-29")

	if got.Start != "09:00" || got.End != "10:00" || got.Pause != "" || got.Resume != "" {
		t.Errorf("单段排班应只有上下班时刻，实际 %+v", got)
	}
}

func TestRecap_RunToLastSlot(t *testing.T) {
	calc := newRecapCalculator(t)
	grid := Grid{"Alice": {"2024-01-29": SlotsOf(false, true, true, true)}}

	got := calc.Recap(grid, "Alice", "2024-01-29")

	if got.Start != "09:30" || got.End != "11:00" {
		t.Errorf("勾到最后一段时下班 = 标签 + 间隔，实际 %+v", got)
	}
}

func TestRecap_LastSlotEndsAtMidnight(t *testing.T) {
	calc, err := NewCalculator(&SlotConfig{TimeSlots: []string{"23:00", "23:30"}, Interval: 30}, zap.NewNop())
	if err != nil {
		t.Fatalf("创建计算器失败: %v", err)
	}
	grid := Grid{"Alice": {"2024-01-29": SlotsOf(true, true)}}

	got := calc.Recap(grid, "Alice", "2024-01-29")

	if got.Start != "23:00" || got.End != "24:00" {
		t.Errorf("跨过零点的下班时刻应为 24:00，实际 %+v", got)
	}
}

func TestClockOffset(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"09:30", 9*time.Hour + 30*time.Minute, false},
		{"24:00", 24 * time.Hour, false},
		{"23:59:30", 23*time.Hour + 59*time.Minute + 30*time.Second, false},
		{"24:30", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := ClockOffset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ClockOffset(%q) 错误不符: %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ClockOffset(%q) = %v, 期望 %v", tt.in, got, tt.want)
		}
	}
}

func TestRecap_OffDays(t *testing.T) {
	calc := newRecapCalculator(t)
	grid := Grid{"Alice": {
		"2024-01-29": SlotsOf(false, false, false, false),
		"2024-01-30": OffCell(),
	}}

	for _, day := range []string{"2024-01-29", "2024-01-30", "2024-01-31"} {
		got := calc.Recap(grid, "Alice", day)
		if !got.Off || got.Start != OffMarker || got.Hours != 0 {
			t.Errorf("%s 应为休息日，实际 %+v", day, got)
		}
	}
}

func TestRecap_Shift(t *testing.T) {
	calc := newRecapCalculator(t)
	grid := Grid{"Alice": {"2024-01-29": ShiftOf("09:00", "12:00", "13:00", "17:00")}}

	got := calc.Recap(grid, "Alice", "2024-01-29")

	if got.Start != "09:00" || got.Pause != "12:00" || got.Resume != "13:00" || got.End != "17:00" || got.Hours != 7 {
		t.Errorf("班次摘要不符: %+v", got)
	}
}

func TestWeekRecap_Shape(t *testing.T) {
	calc := newRecapCalculator(t)
	week := mustDay(t, "2024-01-29")
	roster := []string{"Bob", "Alice"}
	grid := Normalize(Grid{}, week, roster, 4)

	got := calc.WeekRecap(grid, week, roster)

	if len(got) != DaysPerWeek {
		t.Fatalf("期望 7 天，实际 %d", len(got))
	}
	for i, row := range got {
		if len(row) != 2 || row[0].Employee != "Bob" || row[1].Employee != "Alice" {
			t.Errorf("第 %d 天应按名单顺序排列，实际 %+v", i, row)
		}
	}
}
