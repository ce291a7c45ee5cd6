package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "执行数据库迁移后退出",
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := bootstrap(true)
		if err != nil {
			return err
		}
		defer a.close()

		if a.db == nil {
			a.logger.Info("进程内存储无需迁移")
			return nil
		}
		a.logger.Info("数据库迁移完成")
		return nil
	},
}
