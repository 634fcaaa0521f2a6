package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"study-planner/backend/config"
	"study-planner/backend/internal/dto"
	"study-planner/backend/internal/model"
	"study-planner/backend/internal/planner"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSessions   = errors.New("计划中没有可导出的学习时段")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel：周计划、课程分配、未安排时段三个 Sheet
//   - iCalendar：每个学习时段一个按周重复的事件，重复到课程截止日期，附带开始前提醒
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	ExportExcel(ctx context.Context, req *dto.GeneratePlanRequest) (*bytes.Buffer, string, error)
	ExportICS(ctx context.Context, req *dto.GeneratePlanRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	plans  PlanService
	cfg    *config.PlannerConfig
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.PlannerConfig, plans PlanService, logger *zap.Logger) (ExportService, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("加载时区失败: %w", err)
	}
	return &exportService{plans: plans, cfg: cfg, loc: loc, now: time.Now, logger: logger}, nil
}

// 中文星期名，按 time.Weekday 索引
var weekdayNames = [...]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// ═══════════════════════════════════════════════════════════
// ExportExcel 导出周计划为 Excel
// ═══════════════════════════════════════════════════════════

const (
	sheetSchedule   = "周计划"
	sheetAllocation = "课程分配"
	sheetUnplaced   = "未安排"
)

func (s *exportService) ExportExcel(ctx context.Context, req *dto.GeneratePlanRequest) (*bytes.Buffer, string, error) {
	plan, err := s.plans.Build(ctx, req)
	if err != nil {
		return nil, "", err
	}
	schedule := plan.Schedule
	refDate := schedule.ReferenceDate.Format(dto.DateLayout)

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(sheetSchedule)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	breakStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "#7F7F7F"},
	})

	// ── Sheet 1: 周计划 ──
	scheduleHeaders := []string{"星期", "时间", "课程", "主题", "时长(h)", "难度", "紧迫度"}
	for i, w := range []float64{8, 20, 20, 36, 10, 10, 10} {
		col := colName(i)
		f.SetColWidth(sheetSchedule, col, col, w)
	}
	f.SetCellValue(sheetSchedule, "A1", fmt.Sprintf("学习计划（参考日期 %s）", refDate))
	f.MergeCell(sheetSchedule, "A1", cell(colName(len(scheduleHeaders)-1), 1))
	f.SetCellStyle(sheetSchedule, "A1", "A1", headerStyle)
	writeHeader(f, sheetSchedule, 2, scheduleHeaders, headerStyle)

	row := 3
	for _, d := range schedule.Days {
		dayName := weekdayNames[d.Weekday]
		if d.IsRestDay() {
			f.SetCellValue(sheetSchedule, cell("A", row), dayName)
			f.SetCellValue(sheetSchedule, cell("C", row), "休息日")
			f.SetCellStyle(sheetSchedule, cell("A", row), cell("G", row), breakStyle)
			row++
			continue
		}
		for _, sess := range d.Sessions {
			f.SetCellValue(sheetSchedule, cell("A", row), dayName)
			f.SetCellValue(sheetSchedule, cell("B", row), fmt.Sprintf("%s - %s", sess.StartTime, sess.EndTime))
			f.SetCellValue(sheetSchedule, cell("E", row), sess.Hours)
			if sess.IsBreak {
				f.SetCellValue(sheetSchedule, cell("C", row), "休息")
				f.SetCellStyle(sheetSchedule, cell("A", row), cell("G", row), breakStyle)
			} else {
				f.SetCellValue(sheetSchedule, cell("C", row), sess.Course)
				f.SetCellValue(sheetSchedule, cell("D", row), strings.Join(sess.Topics, "、"))
				f.SetCellValue(sheetSchedule, cell("F", row), sess.Difficulty.String())
				f.SetCellValue(sheetSchedule, cell("G", row), fmt.Sprintf("%d/10", sess.Urgency))
			}
			row++
		}
	}

	// ── Sheet 2: 课程分配 ──
	f.NewSheet(sheetAllocation)
	allocHeaders := []string{"排名", "课程", "剩余天数", "紧迫度", "优先级得分", "难度系数", "加权时长", "周时长"}
	for _, wd := range planner.Weekdays {
		allocHeaders = append(allocHeaders, weekdayNames[wd])
	}
	f.SetColWidth(sheetAllocation, "A", colName(len(allocHeaders)-1), 10)
	f.SetColWidth(sheetAllocation, "B", "B", 20)
	writeHeader(f, sheetAllocation, 1, allocHeaders, headerStyle)

	for i, cp := range schedule.Courses {
		r := i + 2
		values := []interface{}{
			cp.Rank, cp.Name, cp.DaysLeft, cp.Urgency,
			fmt.Sprintf("%.2f", cp.PriorityScore), fmt.Sprintf("%.2f", cp.DifficultyFactor),
			cp.WeightedHours, cp.AllocatedWeeklyHours,
		}
		for _, wd := range planner.Weekdays {
			values = append(values, cp.DailyDistribution[wd.String()])
		}
		for j, v := range values {
			f.SetCellValue(sheetAllocation, cell(colName(j), r), v)
		}
	}

	// ── Sheet 3: 未安排（仅在存在时输出）──
	unplacedRow := 2
	for _, d := range schedule.Days {
		for _, u := range d.Unplaced {
			if unplacedRow == 2 {
				f.NewSheet(sheetUnplaced)
				f.SetColWidth(sheetUnplaced, "A", "D", 20)
				writeHeader(f, sheetUnplaced, 1, []string{"星期", "课程", "时长(h)", "原因"}, headerStyle)
			}
			f.SetCellValue(sheetUnplaced, cell("A", unplacedRow), weekdayNames[d.Weekday])
			f.SetCellValue(sheetUnplaced, cell("B", unplacedRow), u.Course)
			f.SetCellValue(sheetUnplaced, cell("C", unplacedRow), u.Hours)
			f.SetCellValue(sheetUnplaced, cell("D", unplacedRow), u.Reason)
			unplacedRow++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	s.logger.Info("导出 Excel 计划", zap.String("reference_date", refDate), zap.Int("sessions", schedule.SessionCount()))
	return buf, fmt.Sprintf("学习计划_%s.xlsx", refDate), nil
}

// ═══════════════════════════════════════════════════════════
// ExportICS 导出周计划为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每个学习时段生成一个 VEVENT：
//   - 首次发生在参考日期当天或之后的对应星期
//   - RRULE 每周重复，直到课程截止日期当天结束（配置时区）
//   - 具名时区写墙上时间并附 VTIMEZONE，夏令时切换后仍在原定钟点
//   - 首次发生已晚于截止日期的时段不导出
//   - 休息条目不导出

func (s *exportService) ExportICS(ctx context.Context, req *dto.GeneratePlanRequest) (*bytes.Buffer, string, error) {
	plan, err := s.plans.Build(ctx, req)
	if err != nil {
		return nil, "", err
	}
	schedule := plan.Schedule
	refDate := schedule.ReferenceDate.Format(dto.DateLayout)

	deadlines := make(map[string]time.Time, len(plan.Courses))
	latest := schedule.ReferenceDate
	for _, c := range plan.Courses {
		deadlines[c.ID] = c.Deadline
		if c.Deadline.After(latest) {
			latest = c.Deadline
		}
	}

	cal := ics.NewCalendarFor("study-planner")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName("学习计划")
	mode := calendarTimeMode(s.loc)
	if mode == timeZoned {
		cal.SetXWRTimezone(s.loc.String())
		addTimezone(cal, s.loc,
			atHour(schedule.ReferenceDate, 0, s.loc),
			atHour(latest.AddDate(0, 0, 1), 0, s.loc))
	}

	stamp := s.now().UTC()
	events := 0
	for _, d := range schedule.Days {
		date := firstOnOrAfter(schedule.ReferenceDate, d.Weekday)
		for _, sess := range d.StudySessions() {
			deadline := deadlines[sess.CourseID]
			if date.After(deadline) {
				continue
			}
			start := atHour(date, sess.StartHour, s.loc)
			end := atHour(date, sess.EndHour, s.loc)
			until := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 23, 59, 59, 0, s.loc)

			evt := cal.AddEvent(eventUID(refDate, d.Name, sess))
			evt.SetDtStampTime(stamp)
			setEventTime(evt, ics.ComponentPropertyDtStart, start, mode)
			setEventTime(evt, ics.ComponentPropertyDtEnd, end, mode)
			evt.SetSummary("学习: " + sess.Course)
			evt.SetDescription(eventDescription(sess))
			evt.AddCategory(sess.Difficulty.String())
			evt.AddRrule("FREQ=WEEKLY;UNTIL=" + untilValue(until, mode))

			for _, minutes := range s.cfg.ReminderMinutes {
				alarm := evt.AddAlarm()
				alarm.SetAction(ics.ActionDisplay)
				alarm.SetTrigger(fmt.Sprintf("-PT%dM", minutes))
				alarm.SetDescription(fmt.Sprintf("%d 分钟后开始学习 %s", minutes, sess.Course))
			}
			events++
		}
	}

	if events == 0 {
		return nil, "", ErrExportNoSessions
	}

	buf := new(bytes.Buffer)
	if err := cal.SerializeTo(buf); err != nil {
		s.logger.Error("写入 iCalendar 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	s.logger.Info("导出 iCalendar 计划", zap.String("reference_date", refDate), zap.Int("events", events))
	return buf, fmt.Sprintf("学习计划_%s.ics", refDate), nil
}

// ── 辅助函数 ──

var icsNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("study-planner"))

// eventUID 由参考日期、星期与时段生成稳定的 UID，重复导入同一计划不会产生重复事件
func eventUID(refDate, day string, sess model.Session) string {
	name := fmt.Sprintf("%s/%s/%s/%.1f", refDate, day, sess.CourseID, sess.StartHour)
	return uuid.NewSHA1(icsNamespace, []byte(name)).String() + "@study-planner"
}

func eventDescription(sess model.Session) string {
	var b strings.Builder
	if len(sess.Topics) > 0 {
		fmt.Fprintf(&b, "主题: %s\n", strings.Join(sess.Topics, ", "))
	}
	fmt.Fprintf(&b, "难度: %s\n", sess.Difficulty)
	fmt.Fprintf(&b, "紧迫度: %d/10\n", sess.Urgency)
	fmt.Fprintf(&b, "距截止: %d 天", sess.DaysUntilDeadline)
	return b.String()
}

const (
	icsUTCLayout   = "20060102T150405Z"
	icsLocalLayout = "20060102T150405"
)

// timeMode 事件时间在日历中的写法
type timeMode int

const (
	timeUTC      timeMode = iota // UTC 时刻，带 Z 后缀
	timeFloating                 // 浮动时间，按日历客户端所在时区解释
	timeZoned                    // 墙上时间 + TZID，跨夏令时切换保持同一钟点
)

// calendarTimeMode 系统本地时区（"Local"）没有客户端可识别的名称，使用浮动时间
func calendarTimeMode(loc *time.Location) timeMode {
	switch loc.String() {
	case "UTC", "":
		return timeUTC
	case "Local":
		return timeFloating
	default:
		return timeZoned
	}
}

func setEventTime(evt *ics.VEvent, prop ics.ComponentProperty, t time.Time, mode timeMode) {
	switch mode {
	case timeUTC:
		evt.SetProperty(prop, t.UTC().Format(icsUTCLayout))
	case timeFloating:
		evt.SetProperty(prop, t.Format(icsLocalLayout))
	default:
		evt.SetProperty(prop, t.Format(icsLocalLayout), ics.WithTZID(t.Location().String()))
	}
}

// untilValue RRULE 的 UNTIL：DTSTART 为浮动时间时 UNTIL 也须为浮动时间，否则写 UTC
func untilValue(t time.Time, mode timeMode) string {
	if mode == timeFloating {
		return t.Format(icsLocalLayout)
	}
	return t.UTC().Format(icsUTCLayout)
}

// addTimezone 写入 VTIMEZONE，覆盖 [from, to) 内的全部时区切换
func addTimezone(cal *ics.Calendar, loc *time.Location, from, to time.Time) {
	tz := cal.AddTimezone(loc.String())
	t := from.In(loc)
	for {
		start, end := t.ZoneBounds()
		name, offset := t.Zone()
		prev := offset
		onset := "19700101T000000"
		if !start.IsZero() {
			_, prev = start.Add(-time.Second).Zone()
			onset = start.In(time.FixedZone(name, prev)).Format(icsLocalLayout)
		}

		var c *ics.ComponentBase
		if t.IsDST() {
			d := &ics.Daylight{}
			tz.Components = append(tz.Components, d)
			c = &d.ComponentBase
		} else {
			c = &tz.AddStandard().ComponentBase
		}
		c.AddProperty(ics.ComponentProperty(ics.PropertyTzname), name)
		c.AddProperty(ics.ComponentPropertyDtStart, onset)
		c.AddProperty(ics.ComponentProperty(ics.PropertyTzoffsetfrom), formatOffset(prev))
		c.AddProperty(ics.ComponentProperty(ics.PropertyTzoffsetto), formatOffset(offset))

		if end.IsZero() || !end.Before(to) {
			return
		}
		t = end
	}
}

// formatOffset 秒数偏移 → "+0800" / "-0500"
func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d%02d", sign, seconds/3600, seconds%3600/60)
}

// firstOnOrAfter 返回 ref 当天或之后第一个星期为 wd 的日期
func firstOnOrAfter(ref time.Time, wd time.Weekday) time.Time {
	offset := (int(wd) - int(ref.Weekday()) + 7) % 7
	return ref.AddDate(0, 0, offset)
}

// atHour 将日期（UTC 零点表示）与小数小时组合为 loc 时区的时刻
func atHour(date time.Time, hour float64, loc *time.Location) time.Time {
	minutes := int(hour*60 + 0.5)
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, loc)
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string, style int) {
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), row), h)
	}
	f.SetCellStyle(sheet, cell("A", row), cell(colName(len(headers)-1), row), style)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
