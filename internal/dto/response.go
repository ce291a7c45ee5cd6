package dto

import "shop-planner/internal/planning"

// ── 排班周视图响应 ──

// WeekPlanningResponse 单店单周排班与工时
type WeekPlanningResponse struct {
	Shop      string        `json:"shop"`
	Week      string        `json:"week"`
	Canonical bool          `json:"canonical"` // 周一为正式周记录
	PrevWeek  string        `json:"prev_week"`
	NextWeek  string        `json:"next_week"`
	Days      []string      `json:"days"`
	Roster    []string      `json:"roster"`
	TimeSlots []string      `json:"time_slots"`
	Interval  int           `json:"interval"`
	Grid      planning.Grid `json:"grid"`

	DailyHours     map[string]map[string]float64 `json:"daily_hours"` // 员工 → 日期 → 工时
	ShopDailyHours map[string]float64            `json:"shop_daily_hours"`
	WeeklyHours    map[string]planning.Totals    `json:"weekly_hours"`
	ShopWeekly     planning.Totals               `json:"shop_weekly"`

	Diagnostics []planning.Diagnostic `json:"diagnostics,omitempty"`
}

// RecapDay 单日摘要
type RecapDay struct {
	Day     string              `json:"day"`
	Entries []planning.DayRecap `json:"entries"`
	Total   float64             `json:"total"`
}

// RecapResponse 周摘要
type RecapResponse struct {
	Shop      string     `json:"shop"`
	Week      string     `json:"week"`
	Days      []RecapDay `json:"days"`
	WeekTotal float64    `json:"week_total"`
}

// MonthlyHoursResponse 月工时
type MonthlyHoursResponse struct {
	Shop      string                     `json:"shop"`
	Month     string                     `json:"month"`
	Roster    []string                   `json:"roster"`
	Employees map[string]planning.Totals `json:"employees"`
	Total     planning.Totals            `json:"total"`
}

// ShopDayHours 单店单日工时
type ShopDayHours struct {
	Shop      string             `json:"shop"`
	Employees map[string]float64 `json:"employees"`
	Total     float64            `json:"total"`
}

// DayOverviewResponse 全部门店单日工时
type DayOverviewResponse struct {
	Day       string             `json:"day"`
	Shops     []ShopDayHours     `json:"shops"`
	Employees map[string]float64 `json:"employees"` // 跨店合计
	Total     float64            `json:"total"`
}
