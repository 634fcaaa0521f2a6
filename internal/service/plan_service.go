package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"study-planner/backend/config"
	"study-planner/backend/internal/dto"
	"study-planner/backend/internal/model"
	"study-planner/backend/internal/planner"
	"study-planner/backend/internal/repository"
	apperrors "study-planner/backend/pkg/errors"
)

// ── 学习计划模块业务错误 ──

var (
	ErrInvalidCourse        = errors.New("课程信息无效")
	ErrInvalidReferenceDate = errors.New("参考日期无效")
)

// Plan 一次计划生成的完整结果：规范化后的课程与周计划
type Plan struct {
	Courses  []model.Course
	Schedule *model.WeeklySchedule
}

// PlanService 学习计划业务接口
type PlanService interface {
	// Generate 生成周计划并返回 API 响应，相同请求在缓存有效期内直接返回缓存结果
	Generate(ctx context.Context, req *dto.GeneratePlanRequest) (*dto.PlanResponse, error)
	// Build 生成周计划领域模型（导出使用，不经过缓存）
	Build(ctx context.Context, req *dto.GeneratePlanRequest) (*Plan, error)
}

type planService struct {
	repo   *repository.Repository
	cfg    *config.PlannerConfig
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewPlanService 创建 PlanService 实例
func NewPlanService(cfg *config.PlannerConfig, repo *repository.Repository, logger *zap.Logger) (PlanService, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("加载时区失败: %w", err)
	}
	return &planService{
		repo:   repo,
		cfg:    cfg,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}, nil
}

// prepare 校验请求并解析出课程与参考日期
func (s *planService) prepare(req *dto.GeneratePlanRequest) ([]model.Course, time.Time, error) {
	if err := req.Validate(); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidCourse, err)
	}
	courses, err := req.ToCourses()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidCourse, err)
	}
	today, err := s.referenceDate(req.Today)
	if err != nil {
		return nil, time.Time{}, err
	}
	return courses, today, nil
}

// referenceDate 请求未指定 today 时取配置时区的当天，统一为 UTC 零点
func (s *planService) referenceDate(raw string) (time.Time, error) {
	if raw == "" {
		n := s.now().In(s.loc)
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := dto.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidReferenceDate, err)
	}
	return t, nil
}

func (s *planService) Build(_ context.Context, req *dto.GeneratePlanRequest) (*Plan, error) {
	courses, today, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	return &Plan{Courses: courses, Schedule: planner.Generate(courses, today)}, nil
}

func (s *planService) Generate(ctx context.Context, req *dto.GeneratePlanRequest) (*dto.PlanResponse, error) {
	courses, today, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	key, err := cacheKey(courses, today)
	if err != nil {
		return nil, err
	}

	// 1. 查缓存
	if resp, ok := s.loadCached(ctx, key); ok {
		s.logger.Debug("命中计划缓存", zap.String("key", key))
		return resp, nil
	}

	// 2. 计算
	schedule := planner.Generate(courses, today)
	resp := dto.NewPlanResponse(schedule)

	// 3. 写缓存，失败不影响结果
	if s.cfg.CacheTTL > 0 {
		if data, err := json.Marshal(resp); err != nil {
			s.logger.Warn("序列化计划失败", zap.Error(err))
		} else if err := s.repo.PlanCache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("写入计划缓存失败", zap.Error(err))
		}
	}

	s.logger.Info("周计划已生成",
		zap.String("reference_date", resp.ReferenceDate),
		zap.Int("courses", resp.Summary.CourseCount),
		zap.Int("sessions", resp.Summary.SessionCount),
		zap.Float64("total_hours", resp.Summary.TotalHours),
		zap.Int("warnings", len(resp.Warnings)),
	)
	return resp, nil
}

func (s *planService) loadCached(ctx context.Context, key string) (*dto.PlanResponse, bool) {
	if s.cfg.CacheTTL <= 0 {
		return nil, false
	}
	data, err := s.repo.PlanCache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCacheMiss) {
			s.logger.Warn("读取计划缓存失败", zap.Error(err))
		}
		return nil, false
	}
	var resp dto.PlanResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		s.logger.Warn("计划缓存内容损坏，重新计算", zap.Error(err))
		return nil, false
	}
	resp.Cached = true
	return &resp, true
}

// cacheKey 规范化课程与参考日期的 SHA-256 摘要；参考日期参与计算，跨天自然失效
func cacheKey(courses []model.Course, today time.Time) (string, error) {
	payload := struct {
		Today   string         `json:"today"`
		Courses []model.Course `json:"courses"`
	}{
		Today:   today.Format(dto.DateLayout),
		Courses: courses,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("计算缓存键失败: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
