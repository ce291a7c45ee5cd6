package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shop-planner/internal/service"
)

var hoursEmployee string

var hoursCmd = &cobra.Command{
	Use:     "hours <shop> <month>",
	Short:   "打印门店月工时（日历工时 / 实际工时）",
	Example: "  shop-planner hours Lyon 2024-01\n  shop-planner hours Lyon 2024-01 --employee Alice",
	Args:    cobra.ExactArgs(2),
	RunE:    runHours,
}

func init() {
	hoursCmd.Flags().StringVarP(&hoursEmployee, "employee", "e", "", "只统计该员工")
}

func runHours(cmd *cobra.Command, args []string) error {
	a, err := bootstrap(false)
	if err != nil {
		return err
	}
	defer a.close()

	// 命令行一次性查询，不需要缓存
	a.cfg.Feature.MonthlyCacheEnabled = false
	svc := service.NewService(a.cfg, a.repo, nil, a.logger)

	result, err := svc.Planning.MonthlyHours(cmd.Context(), args[0], args[1], hoursEmployee)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", result.Shop, result.Month)
	fmt.Fprintln(w, "员工\t日历工时\t实际工时")
	for _, emp := range result.Roster {
		t := result.Employees[emp]
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\n", emp, t.CalendarHours, t.RealHours)
	}
	fmt.Fprintf(w, "合计\t%.1f\t%.1f\n", result.Total.CalendarHours, result.Total.RealHours)
	return w.Flush()
}
