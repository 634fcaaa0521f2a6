package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"study-planner/backend/config"
	"study-planner/backend/internal/api/handler"
	"study-planner/backend/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 可为 nil（未配置 Redis 时不限流）
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		plans := v1.Group("/plans")
		plans.Use(middleware.RateLimit(limiter, cfg.Planner.RateLimit, cfg.Planner.RateWindow, logger))
		{
			plans.POST("", h.Plan.Generate)
			plans.POST("/export/xlsx", h.Export.ExportExcel)
			plans.POST("/export/ics", h.Export.ExportICS)
		}
	}

	return r
}
