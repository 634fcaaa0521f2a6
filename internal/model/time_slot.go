package model

// Interval 半开时间区间 [Start, End)，单位为 24 小时制的小数小时（18.5 = 18:30）
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Hours 区间时长（小时）
func (iv Interval) Hours() float64 {
	return iv.End - iv.Start
}

// Overlaps 两个半开区间是否相交（首尾相接不算重叠）
func (iv Interval) Overlaps(other Interval) bool {
	return !(iv.End <= other.Start || iv.Start >= other.End)
}

// Contains 区间是否完整落在 iv 内
func (iv Interval) Contains(other Interval) bool {
	return other.Start >= iv.Start && other.End <= iv.End
}
