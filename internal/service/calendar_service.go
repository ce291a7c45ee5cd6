package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shop-planner/internal/planning"
)

// ── 日历导出模块业务错误 ──

var (
	ErrCalendarDisabled = errors.New("日历导出未启用")
)

const calendarProductID = "-//shop-planner//planning//ZH"

// CalendarService 日历导出业务接口
//
// 每个员工每天生成一到两个 VEVENT：有暂停时拆为 上班→暂停、恢复→下班 两段。
// 休息日与未排班的日子不生成事件。
type CalendarService interface {
	ExportWeek(ctx context.Context, shop, week, employee string) (string, string, error)
}

type calendarService struct {
	planning PlanningService
	loc      *time.Location
	enabled  bool
	logger   *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例，loc 为 nil 时使用 UTC
func NewCalendarService(planningSvc PlanningService, loc *time.Location, enabled bool, logger *zap.Logger) CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &calendarService{planning: planningSvc, loc: loc, enabled: enabled, logger: logger}
}

// ExportWeek 导出门店一周的 iCalendar 文本；employee 非空时只导出该员工
func (s *calendarService) ExportWeek(ctx context.Context, shop, week, employee string) (string, string, error) {
	if !s.enabled {
		return "", "", ErrCalendarDisabled
	}

	recap, err := s.planning.Recap(ctx, shop, week)
	if err != nil {
		return "", "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetName(fmt.Sprintf("%s %s", shop, recap.Week))
	cal.SetTzid(s.loc.String())

	matched := employee == ""
	stamp := time.Now().UTC()
	for _, day := range recap.Days {
		for _, e := range day.Entries {
			if employee != "" && e.Employee != employee {
				continue
			}
			matched = true
			for i, span := range s.spans(e) {
				id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s/%s/%s/%d", shop, e.Day, e.Employee, i))).String()
				event := cal.AddEvent(id)
				event.SetDtStampTime(stamp)
				event.SetStartAt(span[0])
				event.SetEndAt(span[1])
				event.SetSummary(fmt.Sprintf("%s @ %s", e.Employee, shop))
				event.SetLocation(shop)
			}
		}
	}
	if !matched {
		return "", "", fmt.Errorf("%w: %s", planning.ErrUnknownEmployee, employee)
	}

	name := fmt.Sprintf("排班_%s_%s.ics", shop, recap.Week)
	if employee != "" {
		name = fmt.Sprintf("排班_%s_%s_%s.ics", shop, employee, recap.Week)
	}
	return cal.Serialize(), name, nil
}

// spans 将单日摘要转为时间段，无法解析的时刻记 Warn 后跳过
func (s *calendarService) spans(r planning.DayRecap) [][2]time.Time {
	if r.Off || r.Start == "" || r.End == "" {
		return nil
	}

	bounds := [][2]string{{r.Start, r.End}}
	if r.Pause != "" && r.Resume != "" {
		bounds = [][2]string{{r.Start, r.Pause}, {r.Resume, r.End}}
	}

	var out [][2]time.Time
	for _, b := range bounds {
		start, err1 := s.at(r.Day, b[0])
		end, err2 := s.at(r.Day, b[1])
		if err := errors.Join(err1, err2); err != nil {
			s.logger.Warn("跳过无法解析的时间段",
				zap.String("employee", r.Employee),
				zap.String("day", r.Day),
				zap.Error(err),
			)
			continue
		}
		if !end.After(start) {
			continue
		}
		out = append(out, [2]time.Time{start, end})
	}
	return out
}

// at 合并日期键与时刻，"24:00" 落在次日零点
func (s *calendarService) at(day, clock string) (time.Time, error) {
	d, err := planning.ParseDay(day)
	if err != nil {
		return time.Time{}, err
	}
	off, err := planning.ClockOffset(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, int(off/time.Minute), 0, 0, s.loc), nil
}
