package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("无配置文件时 Load 应成功: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("默认驱动应为 sqlite，实际 %q", cfg.Database.Driver)
	}
	if cfg.Planning.Interval != 30 || len(cfg.Planning.TimeSlots) == 0 {
		t.Errorf("默认排班配置不符: %+v", cfg.Planning)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 9090\nplanning:\n  interval: 15\n  time_slots: [\"08:00\", \"08:15\"]\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	t.Setenv("PLANNER_DB_DRIVER", "memory")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望端口 9090，实际 %d", cfg.Server.Port)
	}
	if cfg.Planning.Interval != 15 || len(cfg.Planning.TimeSlots) != 2 {
		t.Errorf("排班配置不符: %+v", cfg.Planning)
	}
	if cfg.Database.Driver != DriverMemory {
		t.Errorf("环境变量应覆盖驱动，实际 %q", cfg.Database.Driver)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Driver: DriverMemory},
		Planning: PlanningConfig{Timezone: "UTC", Interval: 30},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("合法配置不应报错: %v", err)
	}

	badDriver := valid
	badDriver.Database.Driver = "mysql"
	if err := badDriver.Validate(); err == nil {
		t.Error("不支持的驱动应报错")
	}

	noPath := valid
	noPath.Database = DatabaseConfig{Driver: DriverSQLite}
	if err := noPath.Validate(); err == nil {
		t.Error("sqlite 缺少路径应报错")
	}

	badTZ := valid
	badTZ.Planning.Timezone = "Mars/Olympus"
	if err := badTZ.Validate(); err == nil {
		t.Error("无效时区应报错")
	}
}

func TestDefaultTimeSlots(t *testing.T) {
	slots := defaultTimeSlots()
	if slots[0] != "09:00" || slots[len(slots)-1] != "19:30" || len(slots) != 22 {
		t.Errorf("默认时间段不符: %v", slots)
	}
}
