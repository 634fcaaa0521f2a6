package planner

import (
	"fmt"
	"math"
)

var quarterMinutes = []int{0, 15, 30, 45}

// FormatClock 将小数小时格式化为 12 小时制时间，分钟吸附到最近的 15 分钟刻度，如 18.5 → "6:30 PM"。
// 吸附不进位到下一小时（x:53 → x:45）。
func FormatClock(hour float64) string {
	h := int(math.Floor(hour))
	minutes := (hour - float64(h)) * 60

	minute := quarterMinutes[0]
	for _, m := range quarterMinutes[1:] {
		if math.Abs(float64(m)-minutes) < math.Abs(float64(minute)-minutes) {
			minute = m
		}
	}

	display := h % 12
	if display == 0 {
		display = 12
	}
	period := "PM"
	if h%24 < 12 {
		period = "AM"
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}
