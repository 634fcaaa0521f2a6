package dto

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"study-planner/backend/internal/model"
)

func validRequest() *GeneratePlanRequest {
	return &GeneratePlanRequest{
		Today: "2026-10-19",
		Courses: []CourseRequest{
			{ID: "c-1", Name: " 线性代数 ", Deadline: "2026-11-01", Difficulty: 3, Topics: []string{" 矩阵", "", "矩阵", "特征值 "}, HoursAvailable: 8},
			{ID: "c-2", Name: "英语", Deadline: "2026-12-01T08:00:00+08:00", Difficulty: 1, HoursAvailable: 4},
		},
	}
}

func TestGeneratePlanRequest_Validate_OK(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Fatalf("期望校验通过，实际 err=%v", err)
	}
	empty := &GeneratePlanRequest{}
	if err := empty.Validate(); err != nil {
		t.Errorf("空课程列表应允许，实际 err=%v", err)
	}
}

func TestGeneratePlanRequest_Validate_Errors(t *testing.T) {
	cases := map[string]func(r *GeneratePlanRequest){
		"id 缺失":   func(r *GeneratePlanRequest) { r.Courses[0].ID = "  " },
		"id 重复":   func(r *GeneratePlanRequest) { r.Courses[1].ID = "c-1" },
		"名称为空":    func(r *GeneratePlanRequest) { r.Courses[0].Name = " " },
		"名称过长":    func(r *GeneratePlanRequest) { r.Courses[0].Name = strings.Repeat("课", 101) },
		"难度越界":    func(r *GeneratePlanRequest) { r.Courses[0].Difficulty = 4 },
		"时长为 0":   func(r *GeneratePlanRequest) { r.Courses[0].HoursAvailable = 0 },
		"时长过大":    func(r *GeneratePlanRequest) { r.Courses[0].HoursAvailable = 169 },
		"截止日期错误":  func(r *GeneratePlanRequest) { r.Courses[0].Deadline = "11/01/2026" },
		"today 错误": func(r *GeneratePlanRequest) { r.Today = "tomorrow" },
	}
	for name, mutate := range cases {
		r := validRequest()
		mutate(r)
		if err := r.Validate(); err == nil {
			t.Errorf("%s: 期望校验失败", name)
		}
	}
}

func TestGeneratePlanRequest_ToCourses(t *testing.T) {
	courses, err := validRequest().ToCourses()
	if err != nil {
		t.Fatalf("转换失败: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("期望 2 门课程，实际=%d", len(courses))
	}

	c := courses[0]
	if c.Name != "线性代数" {
		t.Errorf("期望名称去除空白，实际=%q", c.Name)
	}
	if !reflect.DeepEqual(c.Topics, []string{"矩阵", "特征值"}) {
		t.Errorf("期望主题去空去重，实际=%v", c.Topics)
	}
	if c.Difficulty != model.DifficultyHard {
		t.Errorf("期望 Hard，实际=%v", c.Difficulty)
	}
	if want := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC); !c.Deadline.Equal(want) {
		t.Errorf("期望 %v，实际=%v", want, c.Deadline)
	}

	// RFC3339 按其本地日期截断为 UTC 零点
	if want := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC); !courses[1].Deadline.Equal(want) {
		t.Errorf("期望 %v，实际=%v", want, courses[1].Deadline)
	}
	if courses[1].Topics == nil || len(courses[1].Topics) != 0 {
		t.Errorf("无主题时期望空切片，实际=%#v", courses[1].Topics)
	}
}

func TestNewPlanResponse(t *testing.T) {
	s := &model.WeeklySchedule{
		ReferenceDate: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		Days: []model.Day{
			{Name: "Monday", Sessions: []model.Session{{CourseID: "c-1", Hours: 2}}, TotalHours: 2},
			{Name: "Tuesday", Sessions: []model.Session{}},
		},
		Courses: []model.CoursePlan{{CourseID: "c-1"}},
	}
	resp := NewPlanResponse(s)
	if resp.ReferenceDate != "2026-10-19" {
		t.Errorf("期望 2026-10-19，实际=%s", resp.ReferenceDate)
	}
	if resp.Summary.SessionCount != 1 || resp.Summary.TotalHours != 2 || resp.Summary.CourseCount != 1 {
		t.Errorf("统计错误: %+v", resp.Summary)
	}
	if !reflect.DeepEqual(resp.Summary.RestDays, []string{"Tuesday"}) {
		t.Errorf("期望休息日 [Tuesday]，实际=%v", resp.Summary.RestDays)
	}
	if resp.Warnings == nil {
		t.Error("warnings 应为空切片而非 nil")
	}
}
