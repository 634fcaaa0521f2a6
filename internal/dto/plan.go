package dto

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"study-planner/backend/internal/model"
)

// DateLayout 请求与响应中的日期格式
const DateLayout = "2006-01-02"

// ── 学习计划模块 DTO ──

// 课程字段限制
const (
	MaxCourseIDLen   = 64
	MaxCourseNameLen = 100
	MaxTopicLen      = 100
	MaxTopics        = 50
	MaxCourses       = 50
	MaxHoursPerWeek  = 168
)

// CourseRequest 课程信息（HTTP 请求体与 CLI 课程文件共用）
type CourseRequest struct {
	ID             string   `json:"id"              yaml:"id"              binding:"required,max=64"`
	Name           string   `json:"name"            yaml:"name"            binding:"required,max=100"`
	Deadline       string   `json:"deadline"        yaml:"deadline"        binding:"required"`
	Difficulty     int      `json:"difficulty"      yaml:"difficulty"      binding:"required,min=1,max=3"`
	Topics         []string `json:"topics"          yaml:"topics"          binding:"omitempty,max=50,dive,max=100"`
	HoursAvailable int      `json:"hours_available" yaml:"hours_available" binding:"required,min=1,max=168"`
}

// GeneratePlanRequest 生成周计划请求
// Today 为空时由服务端按配置时区取当天
type GeneratePlanRequest struct {
	Courses []CourseRequest `json:"courses"         yaml:"courses"         binding:"omitempty,max=50,dive"`
	Today   string          `json:"today,omitempty" yaml:"today,omitempty"`
}

// Validate 校验跨字段规则。HTTP 入口已经过 binding 校验，CLI 入口只经过这里，因此字段范围在此再检查一次。
func (r *GeneratePlanRequest) Validate() error {
	if len(r.Courses) > MaxCourses {
		return fmt.Errorf("课程数量不能超过 %d", MaxCourses)
	}
	if r.Today != "" {
		if _, err := ParseDate(r.Today); err != nil {
			return fmt.Errorf("today 格式错误: %w", err)
		}
	}

	seen := make(map[string]bool, len(r.Courses))
	for i := range r.Courses {
		c := &r.Courses[i]
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return fmt.Errorf("第 %d 门课程缺少 id", i+1)
		}
		if utf8.RuneCountInString(id) > MaxCourseIDLen {
			return fmt.Errorf("课程 %s: id 长度不能超过 %d", id, MaxCourseIDLen)
		}
		if seen[id] {
			return fmt.Errorf("课程 id 重复: %s", id)
		}
		seen[id] = true

		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("课程 %s: 名称不能为空", id)
		}
		if utf8.RuneCountInString(name) > MaxCourseNameLen {
			return fmt.Errorf("课程 %s: 名称长度不能超过 %d", id, MaxCourseNameLen)
		}
		if !model.Difficulty(c.Difficulty).Valid() {
			return fmt.Errorf("课程 %s: 难度必须为 1-3", id)
		}
		if c.HoursAvailable < 1 || c.HoursAvailable > MaxHoursPerWeek {
			return fmt.Errorf("课程 %s: 每周可用时长必须在 1-%d 之间", id, MaxHoursPerWeek)
		}
		if _, err := ParseDate(c.Deadline); err != nil {
			return fmt.Errorf("课程 %s: 截止日期格式错误: %w", id, err)
		}
		if len(c.Topics) > MaxTopics {
			return fmt.Errorf("课程 %s: 主题数量不能超过 %d", id, MaxTopics)
		}
		for _, topic := range c.Topics {
			if utf8.RuneCountInString(topic) > MaxTopicLen {
				return fmt.Errorf("课程 %s: 主题长度不能超过 %d", id, MaxTopicLen)
			}
		}
	}
	return nil
}

// ToCourses 转换为领域模型：去除首尾空白，主题去空去重（保留首次出现的顺序）。
// 调用前应先通过 Validate。
func (r *GeneratePlanRequest) ToCourses() ([]model.Course, error) {
	courses := make([]model.Course, 0, len(r.Courses))
	for _, c := range r.Courses {
		deadline, err := ParseDate(c.Deadline)
		if err != nil {
			return nil, fmt.Errorf("课程 %s: 截止日期格式错误: %w", c.ID, err)
		}
		courses = append(courses, model.Course{
			ID:             strings.TrimSpace(c.ID),
			Name:           strings.TrimSpace(c.Name),
			Deadline:       deadline,
			Difficulty:     model.Difficulty(c.Difficulty),
			Topics:         NormalizeTopics(c.Topics),
			HoursAvailable: c.HoursAvailable,
		})
	}
	return courses, nil
}

// NormalizeTopics 去除首尾空白、丢弃空主题并去重
func NormalizeTopics(topics []string) []string {
	out := make([]string, 0, len(topics))
	seen := make(map[string]bool, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// ParseDate 解析日期，接受 YYYY-MM-DD 或 RFC3339，结果为 UTC 零点
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("无法解析日期 %q，应为 YYYY-MM-DD", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ── 响应 ──

// PlanResponse 周计划响应
type PlanResponse struct {
	ReferenceDate string             `json:"reference_date"`
	Summary       PlanSummary        `json:"summary"`
	Days          []model.Day        `json:"days"`
	Courses       []model.CoursePlan `json:"courses"`
	Warnings      []string           `json:"warnings"`
	Cached        bool               `json:"cached"`
}

// PlanSummary 周计划统计
type PlanSummary struct {
	CourseCount  int      `json:"course_count"`
	SessionCount int      `json:"session_count"`
	TotalHours   float64  `json:"total_hours"`
	RestDays     []string `json:"rest_days"`
}

// NewPlanResponse 由领域模型构建响应
func NewPlanResponse(s *model.WeeklySchedule) *PlanResponse {
	resp := &PlanResponse{
		ReferenceDate: s.ReferenceDate.Format(DateLayout),
		Days:          s.Days,
		Courses:       s.Courses,
		Warnings:      s.Warnings,
		Summary: PlanSummary{
			CourseCount:  len(s.Courses),
			SessionCount: s.SessionCount(),
			TotalHours:   s.TotalHours(),
			RestDays:     []string{},
		},
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	for _, d := range s.Days {
		if d.IsRestDay() {
			resp.Summary.RestDays = append(resp.Summary.RestDays, d.Name)
		}
	}
	return resp
}
