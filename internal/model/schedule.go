package model

import "time"

// Session 学习时段；IsBreak=true 时为休息条目，不携带课程与主题
type Session struct {
	IsBreak           bool       `json:"is_break,omitempty"`
	CourseID          string     `json:"course_id,omitempty"`
	Course            string     `json:"course,omitempty"`
	Topics            []string   `json:"topics"`
	Hours             float64    `json:"hours"`
	StartHour         float64    `json:"start_hour"`
	EndHour           float64    `json:"end_hour"`
	StartTime         string     `json:"start_time"` // 12 小时制，15 分钟粒度，如 "3:30 PM"
	EndTime           string     `json:"end_time"`
	Difficulty        Difficulty `json:"difficulty,omitempty"`
	Urgency           int        `json:"urgency,omitempty"`
	DaysUntilDeadline int        `json:"days_until_deadline,omitempty"`
}

// Interval 时段对应的区间
func (s Session) Interval() Interval {
	return Interval{Start: s.StartHour, End: s.EndHour}
}

// UnplacedSession 当日找不到可用时间窗口而未排入的学习时段
type UnplacedSession struct {
	CourseID string  `json:"course_id"`
	Course   string  `json:"course"`
	Hours    float64 `json:"hours"`
	Reason   string  `json:"reason"`
}

// Day 一周中的某一天
type Day struct {
	Name       string            `json:"name"`
	Weekday    time.Weekday      `json:"-"`
	Sessions   []Session         `json:"sessions"` // 按开始时间排序，含休息条目
	TotalHours float64           `json:"total_hours"`
	FocusHours Interval          `json:"focus_hours"`
	BreakTimes Interval          `json:"break_times"`
	Unplaced   []UnplacedSession `json:"unplaced,omitempty"`
}

// StudySessions 返回不含休息条目的学习时段
func (d Day) StudySessions() []Session {
	out := make([]Session, 0, len(d.Sessions))
	for _, s := range d.Sessions {
		if !s.IsBreak {
			out = append(out, s)
		}
	}
	return out
}

// IsRestDay 当日无任何学习安排
func (d Day) IsRestDay() bool {
	return len(d.Sessions) == 0
}

// CoursePlan 课程派生状态的只读视图（优先级、周时长、每日分配）
type CoursePlan struct {
	CourseID             string         `json:"course_id"`
	Name                 string         `json:"name"`
	Rank                 int            `json:"rank"` // 1 起，越小越优先
	DaysLeft             int            `json:"days_left"`
	Urgency              int            `json:"urgency"`
	PriorityScore        float64        `json:"priority_score"`
	DifficultyFactor     float64        `json:"difficulty_factor"`
	WeightedHours        int            `json:"weighted_hours"`
	AllocatedWeeklyHours int            `json:"allocated_weekly_hours"`
	DailyDistribution    map[string]int `json:"daily_distribution"` // 星期名 → 小时（稀疏）
}

// WeeklySchedule 生成的周计划，固定 7 天（周一至周日）
type WeeklySchedule struct {
	ReferenceDate time.Time    `json:"reference_date"`
	Days          []Day        `json:"days"`
	Courses       []CoursePlan `json:"courses"`
	Warnings      []string     `json:"warnings,omitempty"`
}

// TotalHours 一周学习总时长
func (w *WeeklySchedule) TotalHours() float64 {
	total := 0.0
	for _, d := range w.Days {
		total += d.TotalHours
	}
	return total
}

// SessionCount 一周学习时段数（不含休息）
func (w *WeeklySchedule) SessionCount() int {
	n := 0
	for _, d := range w.Days {
		n += len(d.StudySessions())
	}
	return n
}
