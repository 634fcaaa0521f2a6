package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("期望默认配置加载成功，实际 err=%v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("期望端口 8080，实际=%d", cfg.Server.Port)
	}
	if cfg.Planner.CacheTTL != 10*time.Minute {
		t.Errorf("期望缓存 10m，实际=%v", cfg.Planner.CacheTTL)
	}
	if len(cfg.Planner.ReminderMinutes) != 2 {
		t.Errorf("期望 2 个提醒，实际=%v", cfg.Planner.ReminderMinutes)
	}
	if cfg.Redis.Enabled() {
		t.Error("默认不应启用 Redis")
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
planner:
  timezone: UTC
  cache_ttl: 30s
redis:
  addr: localhost:6379
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLANNER_SERVER_PORT", "9191")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("环境变量应覆盖配置文件，期望 9191，实际=%d", cfg.Server.Port)
	}
	if cfg.Planner.CacheTTL != 30*time.Second {
		t.Errorf("期望 30s，实际=%v", cfg.Planner.CacheTTL)
	}
	if !cfg.Redis.Enabled() {
		t.Error("期望启用 Redis")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080, MaxBodyBytes: 1024},
			Planner: PlannerConfig{Timezone: "UTC", RateLimit: 10, RateWindow: time.Minute},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("期望校验通过，实际 err=%v", err)
	}

	cases := map[string]func(c *Config){
		"端口越界":   func(c *Config) { c.Server.Port = 70000 },
		"请求体上限为 0": func(c *Config) { c.Server.MaxBodyBytes = 0 },
		"时区无效":   func(c *Config) { c.Planner.Timezone = "Mars/Base" },
		"限流窗口为 0": func(c *Config) { c.Planner.RateWindow = 0 },
		"提醒为负数":  func(c *Config) { c.Planner.ReminderMinutes = []int{-5} },
	}
	for name, mutate := range cases {
		c := valid()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: 期望校验失败", name)
		}
	}
}
