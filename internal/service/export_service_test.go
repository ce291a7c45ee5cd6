package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"shop-planner/internal/planning"
)

func seedExportWeek(t *testing.T, env *testEnv) {
	t.Helper()
	env.withRoster(t, "Lyon", "2024-01-01", "Alice", "Bob")
	env.withGrid(t, "Lyon", "2024-01-01", planning.Grid{
		"Alice": {
			"2024-01-01": planning.SlotsOf(true, true, false, true),
			"2024-01-02": planning.ShiftOf("09:00", "", "", "12:00"),
		},
		"Bob": {"2024-01-01": planning.OffCell()},
	})
}

// ── Excel 导出 ──

func TestExportService_ExportWeek(t *testing.T) {
	env := newTestEnv(t)
	seedExportWeek(t, env)
	svc := NewExportService(env.planning, zap.NewNop())

	buf, filename, err := svc.ExportWeek(context.Background(), "Lyon", "2024-01-01")
	if err != nil {
		t.Fatalf("ExportWeek 应成功: %v", err)
	}
	if filename != "排班_Lyon_2024-01-01.xlsx" {
		t.Errorf("文件名错误: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("生成的文件无法打开: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("周摘要")
	if err != nil {
		t.Fatalf("读取周摘要失败: %v", err)
	}
	// 标题 + 表头 + 7 天 ×（2 名员工 + 当日合计）+ 本周合计
	if len(rows) != 2+7*3+1 {
		t.Errorf("周摘要行数错误: %d", len(rows))
	}
	if rows[2][1] != "Alice" || rows[2][2] != "09:00" || rows[2][5] != "11:00" {
		t.Errorf("首行摘要错误: %v", rows[2])
	}
	last := rows[len(rows)-1]
	if last[len(last)-1] != "4.5" {
		t.Errorf("本周合计期望 4.5，实际 %v", last)
	}

	month, err := f.GetRows("月工时")
	if err != nil {
		t.Fatalf("读取月工时失败: %v", err)
	}
	if len(month) != 2+2+1 {
		t.Errorf("月工时行数错误: %d", len(month))
	}
}

func TestExportService_MissingRoster(t *testing.T) {
	env := newTestEnv(t)
	svc := NewExportService(env.planning, zap.NewNop())

	_, _, err := svc.ExportWeek(context.Background(), "Lyon", "2024-01-01")
	if !errors.Is(err, planning.ErrMissingRoster) {
		t.Errorf("期望 ErrMissingRoster，实际: %v", err)
	}
}

// ── 日历导出 ──

func TestCalendarService_ExportWeek(t *testing.T) {
	env := newTestEnv(t)
	seedExportWeek(t, env)
	loc := time.FixedZone("CET", 3600)
	svc := NewCalendarService(env.planning, loc, true, zap.NewNop())

	body, filename, err := svc.ExportWeek(context.Background(), "Lyon", "2024-01-01", "Alice")
	if err != nil {
		t.Fatalf("ExportWeek 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("文件名错误: %s", filename)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(body))
	if err != nil {
		t.Fatalf("生成的日历无法解析: %v", err)
	}
	events := cal.Events()
	// 周一有暂停拆为两段，周二一段
	if len(events) != 3 {
		t.Fatalf("期望 3 个事件，实际 %d", len(events))
	}

	start, err := events[0].GetStartAt()
	if err != nil {
		t.Fatalf("读取开始时间失败: %v", err)
	}
	want := time.Date(2024, 1, 1, 9, 0, 0, 0, loc)
	if !start.Equal(want) {
		t.Errorf("期望开始 %v，实际 %v", want, start)
	}
}

func TestCalendarService_ShiftEndingAtMidnight(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if err := env.repo.Config.Set(ctx, &planning.SlotConfig{TimeSlots: []string{"23:00", "23:30"}, Interval: 30}); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	env.withRoster(t, "Lyon", "2024-01-01", "Alice")
	env.withGrid(t, "Lyon", "2024-01-01", planning.Grid{
		"Alice": {"2024-01-01": planning.SlotsOf(true, true)},
	})
	svc := NewCalendarService(env.planning, time.UTC, true, zap.NewNop())

	body, _, err := svc.ExportWeek(ctx, "Lyon", "2024-01-01", "Alice")
	if err != nil {
		t.Fatalf("ExportWeek 应成功: %v", err)
	}
	cal, err := ics.ParseCalendar(strings.NewReader(body))
	if err != nil {
		t.Fatalf("生成的日历无法解析: %v", err)
	}
	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("末段到零点的班次应生成 1 个事件，实际 %d", len(events))
	}
	end, err := events[0].GetEndAt()
	if err != nil {
		t.Fatalf("读取结束时间失败: %v", err)
	}
	if want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("期望结束 %v，实际 %v", want, end)
	}
}

func TestCalendarService_StableUIDs(t *testing.T) {
	env := newTestEnv(t)
	seedExportWeek(t, env)
	svc := NewCalendarService(env.planning, time.UTC, true, zap.NewNop())
	ctx := context.Background()

	a, _, _ := svc.ExportWeek(ctx, "Lyon", "2024-01-01", "")
	b, _, _ := svc.ExportWeek(ctx, "Lyon", "2024-01-01", "")
	calA, _ := ics.ParseCalendar(strings.NewReader(a))
	calB, _ := ics.ParseCalendar(strings.NewReader(b))
	for i, e := range calA.Events() {
		if e.Id() != calB.Events()[i].Id() {
			t.Errorf("重复导出的 UID 应保持一致: %s != %s", e.Id(), calB.Events()[i].Id())
		}
	}
}

func TestCalendarService_Disabled(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCalendarService(env.planning, nil, false, zap.NewNop())

	_, _, err := svc.ExportWeek(context.Background(), "Lyon", "2024-01-01", "")
	if !errors.Is(err, ErrCalendarDisabled) {
		t.Errorf("期望 ErrCalendarDisabled，实际: %v", err)
	}
}

func TestCalendarService_UnknownEmployee(t *testing.T) {
	env := newTestEnv(t)
	seedExportWeek(t, env)
	svc := NewCalendarService(env.planning, nil, true, zap.NewNop())

	_, _, err := svc.ExportWeek(context.Background(), "Lyon", "2024-01-01", "Zoé")
	if !errors.Is(err, planning.ErrUnknownEmployee) {
		t.Errorf("期望 ErrUnknownEmployee，实际: %v", err)
	}
}

// ── 月工时缓存 ──

func TestMemoryMonthlyCache_Expiry(t *testing.T) {
	c := newMemoryMonthlyCache(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	c.Set(ctx, "k", planning.Totals{CalendarHours: 1, RealHours: 2})
	if got, ok := c.Get(ctx, "k"); !ok || got.RealHours != 2 {
		t.Errorf("期望命中缓存，实际 %v %v", got, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("过期条目不应命中")
	}
}

func TestNewMonthlyCache_FallsBackToMemory(t *testing.T) {
	c := NewMonthlyCache(nil, time.Minute, zap.NewNop())
	if _, ok := c.(*memoryMonthlyCache); !ok {
		t.Errorf("未配置 Redis 时应使用进程内缓存，实际 %T", c)
	}
}
