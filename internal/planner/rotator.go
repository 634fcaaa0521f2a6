package planner

import "study-planner/backend/internal/model"

// topicRotator 课程主题的循环取用池：全部主题轮过一遍后才会重复
type topicRotator struct {
	topics    []string
	remaining []string
}

func newTopicRotator(topics []string) *topicRotator {
	all := append([]string(nil), topics...)
	return &topicRotator{
		topics:    all,
		remaining: append([]string(nil), all...),
	}
}

// maxTopicsPerSession 单次学习的主题上限：难度越高越聚焦
func maxTopicsPerSession(d model.Difficulty, total int) int {
	switch {
	case d == model.DifficultyEasy:
		return min(total, max(2, 5-int(d)))
	case d == model.DifficultyMedium:
		return max(1, 3-int(d)/2)
	default:
		return max(1, 4-int(d))
	}
}

// next 按当前轮换顺序取出本次学习的主题
func (r *topicRotator) next(d model.Difficulty) []string {
	if len(r.topics) == 0 {
		return []string{}
	}
	if len(r.remaining) == 0 {
		r.remaining = append([]string(nil), r.topics...)
	}

	n := min(len(r.remaining), maxTopicsPerSession(d, len(r.topics)))
	picked := append([]string(nil), r.remaining[:n]...)
	r.remaining = r.remaining[n:]
	return picked
}
