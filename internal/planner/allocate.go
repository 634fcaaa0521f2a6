package planner

import (
	"math"
	"time"

	"study-planner/backend/internal/model"
)

// Weekdays 一周的固定顺序（周一至周日），也是剩余时长平摊时的遍历顺序
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// ── 各难度的分布模式 ──

var (
	// 困难：集中学习 + 次日复习
	hardPrimaryDays = []time.Weekday{time.Saturday, time.Tuesday, time.Thursday}
	hardReviewDays  = []time.Weekday{time.Sunday, time.Wednesday, time.Friday}

	// 中等：均衡分布
	mediumPrimaryDays = []time.Weekday{time.Monday, time.Thursday, time.Saturday}
	mediumReviewDays  = []time.Weekday{time.Wednesday, time.Sunday}

	// 简单：间隔重复
	easySpacedDays = []time.Weekday{time.Monday, time.Wednesday, time.Friday, time.Sunday}
)

// Allocation 单门课程的周时长与每日分配
type Allocation struct {
	CourseID         string
	DifficultyFactor float64
	WeightedHours    int
	WeeklyHours      int
	Distribution     map[time.Weekday]int // 稀疏：未分配的星期不出现
}

// DifficultyFactor 难度系数 (adj/2)^1.2，简单课程按 1.3 计算且不低于 0.85
func DifficultyFactor(d model.Difficulty) float64 {
	adjusted := float64(d)
	if d == model.DifficultyEasy {
		adjusted = 1.3
	}
	f := math.Pow(adjusted/2, 1.2)
	if d == model.DifficultyEasy {
		f = math.Max(0.85, f)
	}
	return f
}

// learningCurve 学习曲线系数：困难课程前期投入更多，简单课程略少
func learningCurve(d model.Difficulty) float64 {
	switch d {
	case model.DifficultyHard:
		return 1.2
	case model.DifficultyEasy:
		return 0.9
	default:
		return 1
	}
}

// MinimumWeeklyHours 周时长下限：简单 2h，其余 3h，且不超过课程自报的可用时长
func MinimumWeeklyHours(d model.Difficulty, hoursAvailable int) int {
	if d == model.DifficultyEasy {
		return min(2, hoursAvailable)
	}
	return min(3, hoursAvailable)
}

// Allocate 计算每门课程的周时长与每日分配，结果与入参一一对应。
// 加权总时长超过自报总时长时整体等比缩放。
func Allocate(courses []model.Course) []Allocation {
	out := make([]Allocation, len(courses))

	totalAvailable, totalWeighted := 0, 0
	for i, c := range courses {
		f := DifficultyFactor(c.Difficulty)
		weighted := int(math.Ceil(float64(c.HoursAvailable) * f * learningCurve(c.Difficulty)))
		out[i] = Allocation{CourseID: c.ID, DifficultyFactor: f, WeightedHours: weighted}
		totalAvailable += c.HoursAvailable
		totalWeighted += weighted
	}

	scale := 1.0
	if totalWeighted > 0 {
		scale = math.Min(1, float64(totalAvailable)/float64(totalWeighted))
	}

	for i, c := range courses {
		hours := int(math.Round(float64(out[i].WeightedHours) * scale))
		hours = max(MinimumWeeklyHours(c.Difficulty, c.HoursAvailable), hours)
		hours = min(hours, c.HoursAvailable)
		out[i].WeeklyHours = hours
		out[i].Distribution = Distribute(c.Difficulty, hours)
	}
	return out
}

// Distribute 按难度模式把周时长分配到具体星期
func Distribute(d model.Difficulty, weekly int) map[time.Weekday]int {
	dist := make(map[time.Weekday]int)
	if weekly <= 0 {
		return dist
	}
	remaining := weekly

	switch {
	case d >= model.DifficultyHard:
		fill(dist, hardPrimaryDays, ceilPercent(weekly, 30), &remaining)
		fill(dist, hardReviewDays, ceilPercent(weekly, 15), &remaining)

	case d == model.DifficultyMedium:
		fill(dist, mediumPrimaryDays, ceilPercent(weekly, 25), &remaining)
		fill(dist, mediumReviewDays, ceilPercent(weekly, 15), &remaining)

	default:
		count := min(len(easySpacedDays), max(2, weekly))
		selected := easySpacedDays[:count]

		// 首次学习时间更长
		fill(dist, selected[:1], ceilPercent(weekly, 40), &remaining)

		if rest := selected[1:]; len(rest) > 0 && remaining > 0 {
			perSession := max(1, ceilDiv(remaining, len(rest)))
			fill(dist, rest, perSession, &remaining)
		}

		// 周六最多 1 小时复习
		if remaining > 0 && dist[time.Saturday] == 0 {
			fill(dist, []time.Weekday{time.Saturday}, 1, &remaining)
		}
	}

	spread(dist, &remaining)
	return dist
}

// fill 依次为 days 分配 min(perDay, remaining)，剩余为 0 时提前结束
func fill(dist map[time.Weekday]int, days []time.Weekday, perDay int, remaining *int) {
	for _, wd := range days {
		if *remaining <= 0 {
			return
		}
		h := min(perDay, *remaining)
		dist[wd] = h
		*remaining -= h
	}
}

// spread 将剩余时长平摊到尚未分配的星期
func spread(dist map[time.Weekday]int, remaining *int) {
	if *remaining <= 0 {
		return
	}
	free := make([]time.Weekday, 0, len(Weekdays))
	for _, wd := range Weekdays {
		if dist[wd] == 0 {
			free = append(free, wd)
		}
	}
	if len(free) == 0 {
		return
	}
	fill(dist, free, ceilDiv(*remaining, len(free)), remaining)
}

// ceilPercent 计算 ceil(n * pct / 100)，整数运算避免 0.3*10 之类的浮点误差
func ceilPercent(n, pct int) int {
	return ceilDiv(n*pct, 100)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
