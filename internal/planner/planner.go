// Package planner 周学习计划排程核心。
//
// 流水线：优先级排序 → 周时长分配 → 每日时段安排（内含主题轮换）。
// 纯计算：不读系统时钟、无随机、无 I/O，相同输入与参考日期得到相同结果。
package planner

import (
	"time"

	"study-planner/backend/internal/model"
)

// courseState 单次 Generate 调用内的课程工作状态，调用方的 Course 不会被修改
type courseState struct {
	course   model.Course
	rank     int
	daysLeft int
	urgency  int
	score    float64
	alloc    Allocation
	rotator  *topicRotator
}

func (s *courseState) plan() model.CoursePlan {
	dist := make(map[string]int, len(s.alloc.Distribution))
	for wd, h := range s.alloc.Distribution {
		if h > 0 {
			dist[wd.String()] = h
		}
	}
	return model.CoursePlan{
		CourseID:             s.course.ID,
		Name:                 s.course.Name,
		Rank:                 s.rank,
		DaysLeft:             s.daysLeft,
		Urgency:              s.urgency,
		PriorityScore:        s.score,
		DifficultyFactor:     s.alloc.DifficultyFactor,
		WeightedHours:        s.alloc.WeightedHours,
		AllocatedWeeklyHours: s.alloc.WeeklyHours,
		DailyDistribution:    dist,
	}
}

// Generate 根据课程列表与参考日期生成周学习计划，结果固定包含周一至周日 7 天。
// 主题轮换状态每次调用重新开始。
func Generate(courses []model.Course, today time.Time) *model.WeeklySchedule {
	ordered := Prioritize(courses, today)
	allocations := Allocate(ordered)

	states := make([]*courseState, len(ordered))
	for i, c := range ordered {
		daysLeft := DaysUntil(c.Deadline, today)
		states[i] = &courseState{
			course:   c,
			rank:     i + 1,
			daysLeft: daysLeft,
			urgency:  Urgency(daysLeft),
			score:    PriorityScore(daysLeft, c.Difficulty),
			alloc:    allocations[i],
			rotator:  newTopicRotator(c.Topics),
		}
	}

	schedule := &model.WeeklySchedule{
		ReferenceDate: today,
		Days:          make([]model.Day, 0, len(Weekdays)),
		Courses:       make([]model.CoursePlan, 0, len(states)),
	}

	for _, wd := range Weekdays {
		var entries []dayEntry
		for _, st := range states {
			if h := st.alloc.Distribution[wd]; h > 0 {
				entries = append(entries, dayEntry{state: st, hours: h})
			}
		}
		d, warnings := placeDay(wd, entries)
		schedule.Days = append(schedule.Days, d)
		schedule.Warnings = append(schedule.Warnings, warnings...)
	}

	for _, st := range states {
		schedule.Courses = append(schedule.Courses, st.plan())
	}
	return schedule
}
