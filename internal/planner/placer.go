package planner

import (
	"fmt"
	"sort"
	"time"

	"study-planner/backend/internal/model"
)

// MaxDailyHours 每日学习时长上限（不含休息）
const MaxDailyHours = 6

// slotStep 时间窗口扫描步长（小时）
const slotStep = 0.5

// dayWindow 某天的专注时段与固定休息时段
type dayWindow struct {
	focus model.Interval
	rest  model.Interval
}

// 周末白天学习；周一至周四傍晚；周五略短
var dayWindows = map[time.Weekday]dayWindow{
	time.Monday:    {focus: model.Interval{Start: 15, End: 21}, rest: model.Interval{Start: 18, End: 18.5}},
	time.Tuesday:   {focus: model.Interval{Start: 15, End: 21}, rest: model.Interval{Start: 18, End: 18.5}},
	time.Wednesday: {focus: model.Interval{Start: 15, End: 21}, rest: model.Interval{Start: 18, End: 18.5}},
	time.Thursday:  {focus: model.Interval{Start: 15, End: 21}, rest: model.Interval{Start: 18, End: 18.5}},
	time.Friday:    {focus: model.Interval{Start: 15, End: 20}, rest: model.Interval{Start: 17.5, End: 18}},
	time.Saturday:  {focus: model.Interval{Start: 10, End: 18}, rest: model.Interval{Start: 13, End: 14}},
	time.Sunday:    {focus: model.Interval{Start: 10, End: 18}, rest: model.Interval{Start: 13, End: 14}},
}

// DayWindow 返回某天的专注时段与休息时段
func DayWindow(wd time.Weekday) (focus, rest model.Interval) {
	w := dayWindows[wd]
	return w.focus, w.rest
}

// position 时段在专注窗口内的偏好位置
type position int

const (
	positionEarly position = iota
	positionMiddle
	positionLate
)

// preferredPosition 困难课程放在精力最好的前段，简单课程放在后段
func preferredPosition(d model.Difficulty) position {
	switch d {
	case model.DifficultyHard:
		return positionEarly
	case model.DifficultyMedium:
		return positionMiddle
	default:
		return positionLate
	}
}

// dayEntry 当日需要安排的一门课程及其时长
type dayEntry struct {
	state *courseState
	hours int
}

// findSlot 在 window 内寻找长度为 hours 且不与 occupied 重叠的区间。
// 纯函数：只读 occupied，由调用方决定是否占用。
func findSlot(window model.Interval, hours float64, occupied []model.Interval, pos position) (model.Interval, bool) {
	if hours <= 0 || hours > window.Hours() {
		return model.Interval{}, false
	}

	fits := func(start float64) (model.Interval, bool) {
		cand := model.Interval{Start: start, End: start + hours}
		if !window.Contains(cand) {
			return model.Interval{}, false
		}
		for _, o := range occupied {
			if cand.Overlaps(o) {
				return model.Interval{}, false
			}
		}
		return cand, true
	}

	switch pos {
	case positionLate:
		for h := window.End - hours; h >= window.Start; h -= slotStep {
			if iv, ok := fits(h); ok {
				return iv, true
			}
		}

	case positionMiddle:
		span := window.Hours()
		mid := window.Start + span/2 - hours/2
		for offset := 0.0; offset <= span/2; offset += slotStep {
			if iv, ok := fits(mid - offset); ok {
				return iv, true
			}
			if offset > 0 {
				if iv, ok := fits(mid + offset); ok {
					return iv, true
				}
			}
		}

	default:
		for h := window.Start; h+hours <= window.End; h += slotStep {
			if iv, ok := fits(h); ok {
				return iv, true
			}
		}
	}
	return model.Interval{}, false
}

// capDailyHours 当日总时长超过上限时等比缩减，每门课至少保留 1 小时。
// 缩减后仍超限（同日课程过多）时，先逐次削减最长的时段，
// 全部为 1 小时仍超限则移出排序最靠后的课程。
func capDailyHours(entries []dayEntry, limit int) (kept, dropped []dayEntry) {
	total := 0
	for _, e := range entries {
		total += e.hours
	}
	if total <= limit {
		return entries, nil
	}

	kept = make([]dayEntry, len(entries))
	copy(kept, entries)
	scaled := 0
	for i := range kept {
		kept[i].hours = max(1, kept[i].hours*limit/total)
		scaled += kept[i].hours
	}

	for scaled > limit {
		idx := -1
		for i := range kept {
			if kept[i].hours > 1 && (idx < 0 || kept[i].hours >= kept[idx].hours) {
				idx = i
			}
		}
		if idx < 0 {
			break
		}
		kept[idx].hours--
		scaled--
	}

	for scaled > limit && len(kept) > 0 {
		last := kept[len(kept)-1]
		kept = kept[:len(kept)-1]
		dropped = append([]dayEntry{last}, dropped...)
		scaled -= last.hours
	}
	return kept, dropped
}

// placeDay 为某一天排入学习时段，返回当天安排与警告信息
func placeDay(wd time.Weekday, entries []dayEntry) (model.Day, []string) {
	w := dayWindows[wd]
	d := model.Day{
		Name:       wd.String(),
		Weekday:    wd,
		Sessions:   []model.Session{},
		FocusHours: w.focus,
		BreakTimes: w.rest,
	}
	var warnings []string

	// 困难课程优先，同难度按紧迫度
	ordered := make([]dayEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].state, ordered[j].state
		if a.course.Difficulty != b.course.Difficulty {
			return a.course.Difficulty > b.course.Difficulty
		}
		return a.urgency > b.urgency
	})

	kept, dropped := capDailyHours(ordered, MaxDailyHours)
	for _, e := range dropped {
		d.Unplaced = append(d.Unplaced, model.UnplacedSession{
			CourseID: e.state.course.ID,
			Course:   e.state.course.Name,
			Hours:    float64(e.hours),
			Reason:   "超出每日学习上限",
		})
		warnings = append(warnings, fmt.Sprintf("%s: 课程 %s 超出每日 %d 小时上限，未安排", d.Name, e.state.course.Name, MaxDailyHours))
	}

	occupied := []model.Interval{w.rest}
	for _, e := range kept {
		c := e.state.course
		hours := float64(e.hours)

		slot, ok := findSlot(w.focus, hours, occupied, preferredPosition(c.Difficulty))
		if !ok {
			slot, ok = findSlot(w.focus, hours, occupied, positionEarly)
		}
		if !ok {
			d.Unplaced = append(d.Unplaced, model.UnplacedSession{
				CourseID: c.ID,
				Course:   c.Name,
				Hours:    hours,
				Reason:   "专注时段内无可用时间",
			})
			warnings = append(warnings, fmt.Sprintf("%s: 课程 %s 的 %d 小时无法排入专注时段", d.Name, c.Name, e.hours))
			continue
		}
		occupied = append(occupied, slot)

		d.Sessions = append(d.Sessions, model.Session{
			CourseID:          c.ID,
			Course:            c.Name,
			Topics:            e.state.rotator.next(c.Difficulty),
			Hours:             hours,
			StartHour:         slot.Start,
			EndHour:           slot.End,
			StartTime:         FormatClock(slot.Start),
			EndTime:           FormatClock(slot.End),
			Difficulty:        c.Difficulty,
			Urgency:           e.state.urgency,
			DaysUntilDeadline: e.state.daysLeft,
		})
		d.TotalHours += hours
	}

	sort.SliceStable(d.Sessions, func(i, j int) bool {
		return d.Sessions[i].StartHour < d.Sessions[j].StartHour
	})

	if len(d.Sessions) > 0 {
		idx := 0
		for idx < len(d.Sessions) && d.Sessions[idx].StartHour < w.rest.Start {
			idx++
		}
		rest := model.Session{
			IsBreak:   true,
			Topics:    []string{},
			Hours:     w.rest.Hours(),
			StartHour: w.rest.Start,
			EndHour:   w.rest.End,
			StartTime: FormatClock(w.rest.Start),
			EndTime:   FormatClock(w.rest.End),
		}
		d.Sessions = append(d.Sessions[:idx], append([]model.Session{rest}, d.Sessions[idx:]...)...)
	}

	return d, warnings
}
