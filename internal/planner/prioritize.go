package planner

import (
	"math"
	"sort"
	"time"

	"study-planner/backend/internal/model"
)

const day = 24 * time.Hour

// DaysUntil 距截止日期的天数，向上取整，最少为 1（已过期的截止日期同样按 1 天处理）
func DaysUntil(deadline, today time.Time) int {
	days := int(math.Ceil(float64(deadline.Sub(today)) / float64(day)))
	if days < 1 {
		return 1
	}
	return days
}

// Urgency 紧迫度 1-10，截止日期越近越高
func Urgency(daysLeft int) int {
	if daysLeft < 1 {
		daysLeft = 1
	}
	u := int(math.Ceil(10 / (float64(daysLeft)/7 + 0.1)))
	if u > 10 {
		return 10
	}
	if u < 1 {
		return 1
	}
	return u
}

// PriorityScore 优先级分数，越小越先处理。
// 临近截止（10 天内）按 1.5 的指数放大，难度线性放大。
func PriorityScore(daysUntil int, difficulty model.Difficulty) float64 {
	urgencyFactor := math.Pow(1.5, math.Max(0, float64(10-daysUntil))/3)
	difficultyFactor := math.Max(1, float64(difficulty))
	return float64(daysUntil) / (difficultyFactor * 1.5 * urgencyFactor)
}

// Prioritize 按优先级分数升序返回课程的新切片（稳定排序，不修改入参）
func Prioritize(courses []model.Course, today time.Time) []model.Course {
	type ranked struct {
		course model.Course
		score  float64
	}
	items := make([]ranked, len(courses))
	for i, c := range courses {
		items[i] = ranked{course: c, score: PriorityScore(DaysUntil(c.Deadline, today), c.Difficulty)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score < items[j].score
	})

	out := make([]model.Course, len(items))
	for i, it := range items {
		out[i] = it.course
	}
	return out
}
