package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"shop-planner/internal/dto"
	"shop-planner/internal/planning"
	"shop-planner/internal/repository"
)

// ── 排班模块业务错误 ──

var (
	ErrSourceWeekNotFound = errors.New("源周没有排班记录")
	ErrDayOutsideWeek     = errors.New("日期不在当周范围内")
)

// PlanningService 排班业务接口
//
// 每次写操作的顺序固定为：读取 → 校正 → 变更 → 再校正 → 持久化 → 计算工时。
// 同一门店的读改写按门店串行。
type PlanningService interface {
	GetWeek(ctx context.Context, shop, week string) (*dto.WeekPlanningResponse, error)
	Toggle(ctx context.Context, shop, week string, req *dto.ToggleSlotRequest) (*dto.WeekPlanningResponse, error)
	SetCell(ctx context.Context, shop, week string, req *dto.SetCellRequest) (*dto.WeekPlanningResponse, error)
	CopyWeek(ctx context.Context, shop, week string, req *dto.CopyWeekRequest) (*dto.WeekPlanningResponse, error)
	Reset(ctx context.Context, shop, week string) error

	Recap(ctx context.Context, shop, week string) (*dto.RecapResponse, error)
	MonthlyHours(ctx context.Context, shop, month, employee string) (*dto.MonthlyHoursResponse, error)
	DayOverview(ctx context.Context, day string) (*dto.DayOverviewResponse, error)
}

type planningService struct {
	repo   *repository.Repository
	config ConfigService
	cache  MonthlyCache
	locks  *shopLocks
	group  singleflight.Group
	logger *zap.Logger
}

// NewPlanningService 创建 PlanningService 实例，cache 为 nil 时不缓存月工时
func NewPlanningService(
	repo *repository.Repository,
	configSvc ConfigService,
	cache MonthlyCache,
	locks *shopLocks,
	logger *zap.Logger,
) PlanningService {
	if locks == nil {
		locks = newShopLocks()
	}
	return &planningService{
		repo:   repo,
		config: configSvc,
		cache:  cache,
		locks:  locks,
		logger: logger,
	}
}

// weekState 已校正的单店单周状态
type weekState struct {
	shop   string
	week   time.Time
	cfg    *planning.SlotConfig
	roster []string
	grid   planning.Grid
	dirty  bool // 存储中没有记录或校正后发生变化
}

// loadWeek 读取并校正；名单为空返回 ErrMissingRoster
func (s *planningService) loadWeek(ctx context.Context, shop, weekStr string) (*weekState, error) {
	if _, err := cleanShopName(shop); err != nil {
		return nil, err
	}
	week, err := planning.ParseDay(weekStr)
	if err != nil {
		return nil, err
	}

	cfg, err := s.config.Current(ctx)
	if err != nil {
		return nil, err
	}

	roster, ok, err := s.repo.Roster.Get(ctx, shop, week)
	if err != nil {
		s.logger.Error("读取员工名单失败", zap.String("shop", shop), zap.Error(err))
		return nil, err
	}
	if !ok || len(roster) == 0 {
		return nil, planning.ErrMissingRoster
	}

	raw, found, err := s.repo.Week.Load(ctx, shop, week)
	if err != nil {
		s.logger.Error("读取周排班失败", zap.String("shop", shop), zap.String("week", weekStr), zap.Error(err))
		return nil, err
	}

	grid := planning.Normalize(raw, week, roster, cfg.SlotCount())
	return &weekState{
		shop:   shop,
		week:   week,
		cfg:    cfg,
		roster: roster,
		grid:   grid,
		dirty:  !found || !planning.Equal(raw, grid),
	}, nil
}

func (s *planningService) save(ctx context.Context, st *weekState) error {
	if err := s.repo.Week.Save(ctx, st.shop, st.week, st.grid); err != nil {
		s.logger.Error("保存周排班失败",
			zap.String("shop", st.shop),
			zap.String("week", planning.DayKey(st.week)),
			zap.Error(err),
		)
		return err
	}
	st.dirty = false
	return nil
}

// ────────────────────── GetWeek ──────────────────────

func (s *planningService) GetWeek(ctx context.Context, shop, week string) (*dto.WeekPlanningResponse, error) {
	unlock := s.locks.lock(shop)
	defer unlock()

	st, err := s.loadWeek(ctx, shop, week)
	if err != nil {
		return nil, err
	}
	// 名单或配置变化后的校正结果需要落盘
	if st.dirty {
		if err := s.save(ctx, st); err != nil {
			return nil, err
		}
	}
	return s.buildWeekResponse(st), nil
}

// ────────────────────── Toggle ──────────────────────

func (s *planningService) Toggle(ctx context.Context, shop, week string, req *dto.ToggleSlotRequest) (*dto.WeekPlanningResponse, error) {
	return s.mutate(ctx, shop, week, func(st *weekState) (planning.Grid, error) {
		if err := checkTarget(st, req.Employee, req.Day); err != nil {
			return nil, err
		}
		return planning.Toggle(st.grid, req.Employee, req.Day, *req.Slot, req.Value, st.cfg.SlotCount())
	})
}

// ────────────────────── SetCell ──────────────────────

func (s *planningService) SetCell(ctx context.Context, shop, week string, req *dto.SetCellRequest) (*dto.WeekPlanningResponse, error) {
	return s.mutate(ctx, shop, week, func(st *weekState) (planning.Grid, error) {
		if err := checkTarget(st, req.Employee, req.Day); err != nil {
			return nil, err
		}

		cell := req.Cell.Clone()
		switch cell.Kind {
		case planning.KindOff:
			if cell.Label == "" {
				cell.Label = planning.OffMarker
			}
		case planning.KindShift:
			// 写入时即拒绝无法解析的时刻，避免存入只能按 0 计的数据
			if _, err := planning.ShiftHours(cell.Shift); err != nil {
				return nil, err
			}
		}
		return planning.SetCell(st.grid, req.Employee, req.Day, cell), nil
	})
}

// ────────────────────── CopyWeek ──────────────────────

func (s *planningService) CopyWeek(ctx context.Context, shop, week string, req *dto.CopyWeekRequest) (*dto.WeekPlanningResponse, error) {
	if _, err := cleanShopName(shop); err != nil {
		return nil, err
	}
	to, err := planning.ParseDay(week)
	if err != nil {
		return nil, err
	}
	from, err := planning.ParseDay(req.From)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(shop)
	defer unlock()

	cfg, err := s.config.Current(ctx)
	if err != nil {
		return nil, err
	}

	src, found, err := s.repo.Week.Load(ctx, shop, from)
	if err != nil {
		s.logger.Error("读取源周排班失败", zap.String("shop", shop), zap.String("from", req.From), zap.Error(err))
		return nil, err
	}
	if !found {
		return nil, ErrSourceWeekNotFound
	}

	// 目标周没有名单时沿用源周名单
	roster, ok, err := s.repo.Roster.Get(ctx, shop, to)
	if err != nil {
		return nil, err
	}
	if !ok || len(roster) == 0 {
		roster, ok, err = s.repo.Roster.Get(ctx, shop, from)
		if err != nil {
			return nil, err
		}
		if !ok || len(roster) == 0 {
			return nil, planning.ErrMissingRoster
		}
		if err := s.repo.Roster.Set(ctx, shop, to, roster); err != nil {
			s.logger.Error("写入员工名单失败", zap.String("shop", shop), zap.Error(err))
			return nil, err
		}
	}

	st := &weekState{
		shop:   shop,
		week:   to,
		cfg:    cfg,
		roster: roster,
		grid:   planning.CopyWeek(src, from, to, roster, cfg.SlotCount()),
	}
	if err := s.save(ctx, st); err != nil {
		return nil, err
	}

	s.logger.Info("已复制周排班",
		zap.String("shop", shop),
		zap.String("from", planning.DayKey(from)),
		zap.String("to", planning.DayKey(to)),
	)
	return s.buildWeekResponse(st), nil
}

// ────────────────────── Reset ──────────────────────

func (s *planningService) Reset(ctx context.Context, shop, week string) error {
	if _, err := cleanShopName(shop); err != nil {
		return err
	}
	w, err := planning.ParseDay(week)
	if err != nil {
		return err
	}

	unlock := s.locks.lock(shop)
	defer unlock()

	if err := s.repo.Week.Delete(ctx, shop, w); err != nil {
		s.logger.Error("重置周排班失败", zap.String("shop", shop), zap.String("week", week), zap.Error(err))
		return err
	}

	s.logger.Info("已重置周排班", zap.String("shop", shop), zap.String("week", planning.DayKey(w)))
	return nil
}

// mutate 串行执行一次读改写
func (s *planningService) mutate(ctx context.Context, shop, week string, fn func(st *weekState) (planning.Grid, error)) (*dto.WeekPlanningResponse, error) {
	unlock := s.locks.lock(shop)
	defer unlock()

	st, err := s.loadWeek(ctx, shop, week)
	if err != nil {
		return nil, err
	}

	next, err := fn(st)
	if err != nil {
		return nil, err
	}

	st.grid = planning.Normalize(next, st.week, st.roster, st.cfg.SlotCount())
	if err := s.save(ctx, st); err != nil {
		return nil, err
	}
	return s.buildWeekResponse(st), nil
}

// checkTarget 员工必须在名单内，日期必须在当周 7 天内
func checkTarget(st *weekState, employee, day string) error {
	if !containsString(st.roster, employee) {
		return fmt.Errorf("%w: %s", planning.ErrUnknownEmployee, employee)
	}
	d, err := planning.ParseDay(day)
	if err != nil {
		return err
	}
	if !containsString(planning.WeekDays(st.week), planning.DayKey(d)) || planning.DayKey(d) != day {
		return fmt.Errorf("%w: %s", ErrDayOutsideWeek, day)
	}
	return nil
}

// ────────────────────── Recap ──────────────────────

func (s *planningService) Recap(ctx context.Context, shop, week string) (*dto.RecapResponse, error) {
	st, err := s.loadWeek(ctx, shop, week)
	if err != nil {
		return nil, err
	}

	calc, err := planning.NewCalculator(st.cfg, s.logger)
	if err != nil {
		return nil, err
	}

	days := planning.WeekDays(st.week)
	recaps := calc.WeekRecap(st.grid, st.week, st.roster)

	resp := &dto.RecapResponse{
		Shop: shop,
		Week: planning.DayKey(st.week),
		Days: make([]dto.RecapDay, len(days)),
	}
	for i, day := range days {
		total := 0.0
		for j := range recaps[i] {
			total += recaps[i][j].Hours
			recaps[i][j].Hours = planning.Round1(recaps[i][j].Hours)
		}
		resp.Days[i] = dto.RecapDay{Day: day, Entries: recaps[i], Total: planning.Round1(total)}
		resp.WeekTotal += total
	}
	resp.WeekTotal = planning.Round1(resp.WeekTotal)
	return resp, nil
}

// ────────────────────── MonthlyHours ──────────────────────

func (s *planningService) MonthlyHours(ctx context.Context, shop, month, employee string) (*dto.MonthlyHoursResponse, error) {
	if _, err := cleanShopName(shop); err != nil {
		return nil, err
	}
	anchor, err := planning.ParseMonth(month)
	if err != nil {
		return nil, err
	}

	cfg, err := s.config.Current(ctx)
	if err != nil {
		return nil, err
	}
	calc, err := planning.NewCalculator(cfg, s.logger)
	if err != nil {
		return nil, err
	}

	version, err := s.repo.Week.Version(ctx, shop)
	if err != nil {
		s.logger.Warn("读取门店版本号失败，跳过缓存", zap.String("shop", shop), zap.Error(err))
		version = -1
	}

	var roster []string
	if employee != "" {
		roster = []string{employee}
	} else {
		roster, err = s.monthRoster(ctx, shop, anchor)
		if err != nil {
			return nil, err
		}
	}

	resp := &dto.MonthlyHoursResponse{
		Shop:      shop,
		Month:     planning.MonthKey(anchor),
		Roster:    roster,
		Employees: make(map[string]planning.Totals, len(roster)),
	}

	for _, emp := range roster {
		key := planning.EmployeeMemoKey(shop, anchor, version, emp, cfg.Interval)
		t, err := s.memo(ctx, key, version >= 0, func() (planning.Totals, error) {
			return calc.MonthlyHours(ctx, s.repo.Week, shop, emp, anchor)
		})
		if err != nil {
			s.logger.Error("计算员工月工时失败", zap.String("shop", shop), zap.String("employee", emp), zap.Error(err))
			return nil, err
		}
		resp.Employees[emp] = t.Rounded()
	}

	key := planning.ShopMemoKey(shop, anchor, version, roster, cfg.Interval)
	total, err := s.memo(ctx, key, version >= 0, func() (planning.Totals, error) {
		return calc.ShopMonthlyHours(ctx, s.repo.Week, shop, roster, anchor)
	})
	if err != nil {
		s.logger.Error("计算门店月工时失败", zap.String("shop", shop), zap.Error(err))
		return nil, err
	}
	resp.Total = total.Rounded()

	return resp, nil
}

// monthRoster 与目标月相交的所有周的名单并集，按首次出现顺序
func (s *planningService) monthRoster(ctx context.Context, shop string, anchor time.Time) ([]string, error) {
	keys, err := s.repo.Week.ListWeekKeys(ctx, shop)
	if err != nil {
		return nil, err
	}

	lower := planning.StartOfMonth(anchor).AddDate(0, 0, -(planning.DaysPerWeek - 1))
	upper := planning.EndOfMonth(anchor)

	var roster []string
	seen := make(map[string]bool)
	for _, key := range keys {
		d, err := planning.ParseDay(key)
		if err != nil || d.Before(lower) || d.After(upper) {
			continue
		}
		names, _, err := s.repo.Roster.Get(ctx, shop, d)
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				roster = append(roster, n)
			}
		}
	}
	if roster == nil {
		roster = []string{}
	}
	return roster, nil
}

// memo 先查缓存，未命中时合并相同键的并发计算
func (s *planningService) memo(ctx context.Context, key planning.MemoKey, cacheable bool, compute func() (planning.Totals, error)) (planning.Totals, error) {
	k := key.String()
	if cacheable && s.cache != nil {
		if t, ok := s.cache.Get(ctx, k); ok {
			return t, nil
		}
	}

	v, err, _ := s.group.Do(k, func() (interface{}, error) {
		t, err := compute()
		if err != nil {
			return planning.Totals{}, err
		}
		if cacheable && s.cache != nil {
			s.cache.Set(ctx, k, t)
		}
		return t, nil
	})
	if err != nil {
		return planning.Totals{}, err
	}
	return v.(planning.Totals), nil
}

// ────────────────────── DayOverview ──────────────────────

func (s *planningService) DayOverview(ctx context.Context, day string) (*dto.DayOverviewResponse, error) {
	d, err := planning.ParseDay(day)
	if err != nil {
		return nil, err
	}
	cfg, err := s.config.Current(ctx)
	if err != nil {
		return nil, err
	}
	calc, err := planning.NewCalculator(cfg, s.logger)
	if err != nil {
		return nil, err
	}

	shops, err := s.repo.Shop.List(ctx)
	if err != nil {
		s.logger.Error("列出门店失败", zap.Error(err))
		return nil, err
	}

	monday := planning.StartOfWeek(d)
	dayKey := planning.DayKey(d)
	resp := &dto.DayOverviewResponse{
		Day:       dayKey,
		Shops:     make([]dto.ShopDayHours, 0, len(shops)),
		Employees: make(map[string]float64),
	}

	for _, shop := range shops {
		grid, found, err := s.repo.Week.LoadWeek(ctx, shop, planning.DayKey(monday))
		if err != nil {
			s.logger.Error("读取周排班失败", zap.String("shop", shop), zap.Error(err))
			return nil, err
		}
		if !found {
			continue
		}

		roster, ok, err := s.repo.Roster.Get(ctx, shop, monday)
		if err != nil {
			return nil, err
		}
		if !ok {
			roster = grid.Employees()
		}

		entry := dto.ShopDayHours{Shop: shop, Employees: make(map[string]float64, len(roster))}
		for _, emp := range roster {
			h := calc.DailyHours(grid, emp, dayKey)
			entry.Employees[emp] = planning.Round1(h)
			entry.Total += h
			resp.Employees[emp] += h
		}
		resp.Total += entry.Total
		entry.Total = planning.Round1(entry.Total)
		resp.Shops = append(resp.Shops, entry)
	}

	for emp, h := range resp.Employees {
		resp.Employees[emp] = planning.Round1(h)
	}
	resp.Total = planning.Round1(resp.Total)
	return resp, nil
}

// ── 响应构建 ──

func (s *planningService) buildWeekResponse(st *weekState) *dto.WeekPlanningResponse {
	// 配置已在 loadWeek 中校验
	calc, _ := planning.NewCalculator(st.cfg, s.logger)
	// 周汇总会重复计算每天，诊断只取逐日那一遍
	agg, _ := planning.NewCalculator(st.cfg, zap.NewNop())

	days := planning.WeekDays(st.week)
	resp := &dto.WeekPlanningResponse{
		Shop:           st.shop,
		Week:           planning.DayKey(st.week),
		Canonical:      planning.IsMonday(st.week),
		PrevWeek:       planning.DayKey(st.week.AddDate(0, 0, -planning.DaysPerWeek)),
		NextWeek:       planning.DayKey(st.week.AddDate(0, 0, planning.DaysPerWeek)),
		Days:           days,
		Roster:         st.roster,
		TimeSlots:      st.cfg.TimeSlots,
		Interval:       st.cfg.Interval,
		Grid:           st.grid,
		DailyHours:     make(map[string]map[string]float64, len(st.roster)),
		ShopDailyHours: make(map[string]float64, len(days)),
		WeeklyHours:    make(map[string]planning.Totals, len(st.roster)),
	}

	for _, emp := range st.roster {
		row := make(map[string]float64, len(days))
		for _, day := range days {
			h := calc.DailyHours(st.grid, emp, day)
			row[day] = planning.Round1(h)
			resp.ShopDailyHours[day] += h
		}
		resp.DailyHours[emp] = row
		resp.WeeklyHours[emp] = agg.WeeklyHours(emp, st.week, st.grid).Rounded()
	}
	for day, h := range resp.ShopDailyHours {
		resp.ShopDailyHours[day] = planning.Round1(h)
	}
	resp.ShopWeekly = agg.ShopWeeklyHours(st.week, st.grid, st.roster).Rounded()
	resp.Diagnostics = calc.Diagnostics()

	return resp
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
