package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"study-planner/backend/config"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(&config.LogConfig{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("%s: 期望初始化成功，实际 err=%v", format, err)
		}
		l.Debug("ok")
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "loud", Format: "json"}); err == nil {
		t.Error("期望无效日志级别返回错误")
	}
}

func TestNewCLI(t *testing.T) {
	l, err := NewCLI(false)
	if err != nil {
		t.Fatalf("期望初始化成功，实际 err=%v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("非 verbose 模式不应输出 debug 日志")
	}
}
