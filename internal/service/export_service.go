package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"shop-planner/internal/planning"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
// 工作簿包含两个 Sheet：
//   - "周摘要"：按天 × 员工列出上班/暂停/恢复/下班/工时
//   - "月工时"：周一所在月份的员工日历工时与实际工时
type ExportService interface {
	ExportWeek(ctx context.Context, shop, week string) (*bytes.Buffer, string, error)
}

type exportService struct {
	planning PlanningService
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(planningSvc PlanningService, logger *zap.Logger) ExportService {
	return &exportService{planning: planningSvc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportWeek 导出周摘要与月工时为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportWeek(ctx context.Context, shop, week string) (*bytes.Buffer, string, error) {
	recap, err := s.planning.Recap(ctx, shop, week)
	if err != nil {
		return nil, "", err
	}
	monthly, err := s.planning.MonthlyHours(ctx, shop, recap.Week, "")
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	offStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFF2CC"}, Pattern: 1},
	})

	// ── Sheet 1: 周摘要 ──
	recapSheet := "周摘要"
	idx, _ := f.NewSheet(recapSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	weekDate, _ := planning.ParseDay(recap.Week)
	f.SetCellValue(recapSheet, "A1", fmt.Sprintf("%s %s", shop, planning.WeekLabel(weekDate)))
	f.MergeCell(recapSheet, "A1", "G1")
	f.SetCellStyle(recapSheet, "A1", "A1", headerStyle)

	headers := []string{"日期", "员工", "上班", "暂停", "恢复", "下班", "工时"}
	for i, h := range headers {
		f.SetCellValue(recapSheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(recapSheet, "A2", "G2", headerStyle)
	f.SetColWidth(recapSheet, "A", "A", 12)
	f.SetColWidth(recapSheet, "B", "B", 18)
	f.SetColWidth(recapSheet, "C", "G", 10)

	row := 3
	for _, day := range recap.Days {
		for _, e := range day.Entries {
			f.SetCellValue(recapSheet, cell("A", row), day.Day)
			f.SetCellValue(recapSheet, cell("B", row), e.Employee)
			f.SetCellValue(recapSheet, cell("C", row), e.Start)
			f.SetCellValue(recapSheet, cell("D", row), e.Pause)
			f.SetCellValue(recapSheet, cell("E", row), e.Resume)
			f.SetCellValue(recapSheet, cell("F", row), e.End)
			f.SetCellValue(recapSheet, cell("G", row), e.Hours)
			if e.Off {
				f.SetCellStyle(recapSheet, cell("A", row), cell("G", row), offStyle)
			}
			row++
		}
		f.SetCellValue(recapSheet, cell("F", row), "当日合计")
		f.SetCellValue(recapSheet, cell("G", row), day.Total)
		row++
	}
	f.SetCellValue(recapSheet, cell("F", row), "本周合计")
	f.SetCellValue(recapSheet, cell("G", row), recap.WeekTotal)

	// ── Sheet 2: 月工时 ──
	monthSheet := "月工时"
	f.NewSheet(monthSheet)
	f.SetCellValue(monthSheet, "A1", fmt.Sprintf("%s %s 月工时", shop, monthly.Month))
	f.MergeCell(monthSheet, "A1", "C1")
	f.SetCellStyle(monthSheet, "A1", "A1", headerStyle)
	for i, h := range []string{"员工", "日历工时", "实际工时"} {
		f.SetCellValue(monthSheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(monthSheet, "A2", "C2", headerStyle)
	f.SetColWidth(monthSheet, "A", "A", 18)
	f.SetColWidth(monthSheet, "B", "C", 12)

	row = 3
	for _, emp := range monthly.Roster {
		t := monthly.Employees[emp]
		f.SetCellValue(monthSheet, cell("A", row), emp)
		f.SetCellValue(monthSheet, cell("B", row), t.CalendarHours)
		f.SetCellValue(monthSheet, cell("C", row), t.RealHours)
		row++
	}
	f.SetCellValue(monthSheet, cell("A", row), "门店合计")
	f.SetCellValue(monthSheet, cell("B", row), monthly.Total.CalendarHours)
	f.SetCellValue(monthSheet, cell("C", row), monthly.Total.RealHours)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("排班_%s_%s.xlsx", shop, recap.Week)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

