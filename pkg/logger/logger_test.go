package logger

import (
	"testing"

	"shop-planner/config"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(&config.LogConfig{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("格式 %s 初始化失败: %v", format, err)
		}
		_ = l.Sync()
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "loud"}); err == nil {
		t.Error("无效日志级别应报错")
	}
}
