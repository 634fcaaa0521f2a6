package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
	Planner PlannerConfig `mapstructure:"planner"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	MaxBodyBytes int64      `mapstructure:"max_body_bytes"`
	CORS         CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RedisConfig Redis 缓存配置；Addr 为空时不启用缓存与限流
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled 是否配置了 Redis
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PlannerConfig 学习计划生成配置
type PlannerConfig struct {
	Timezone        string        `mapstructure:"timezone"`         // 计算“今天”与导出日历时使用的时区
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`        // 计划缓存有效期，0 表示不缓存
	RateLimit       int           `mapstructure:"rate_limit"`       // 每个客户端在窗口内的最大请求数
	RateWindow      time.Duration `mapstructure:"rate_window"`      // 限流窗口
	ReminderMinutes []int         `mapstructure:"reminder_minutes"` // 日历提醒（开始前 N 分钟）
}

// Location 解析配置的时区
func (c *PlannerConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("planner.timezone", "Local")
	v.SetDefault("planner.cache_ttl", "10m")
	v.SetDefault("planner.rate_limit", 60)
	v.SetDefault("planner.rate_window", "1m")
	v.SetDefault("planner.reminder_minutes", []int{30, 10})

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("配置校验失败: server.max_body_bytes 必须大于 0")
	}
	if _, err := c.Planner.Location(); err != nil {
		return fmt.Errorf("配置校验失败: planner.timezone 无效: %w", err)
	}
	if c.Planner.CacheTTL < 0 {
		return fmt.Errorf("配置校验失败: planner.cache_ttl 不能为负")
	}
	if c.Planner.RateLimit < 0 {
		return fmt.Errorf("配置校验失败: planner.rate_limit 不能为负")
	}
	if c.Planner.RateLimit > 0 && c.Planner.RateWindow <= 0 {
		return fmt.Errorf("配置校验失败: 启用限流时 planner.rate_window 必须大于 0")
	}
	for _, m := range c.Planner.ReminderMinutes {
		if m <= 0 {
			return fmt.Errorf("配置校验失败: planner.reminder_minutes 必须为正数")
		}
	}
	return nil
}
