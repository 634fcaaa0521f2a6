package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"study-planner/backend/internal/dto"
)

// renderText 以表格形式输出周计划
func renderText(w io.Writer, resp *dto.PlanResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "学习计划（参考日期 %s）\n", resp.ReferenceDate)
	fmt.Fprintf(tw, "共 %d 门课程，%d 个学习时段，%.0f 小时\n\n",
		resp.Summary.CourseCount, resp.Summary.SessionCount, resp.Summary.TotalHours)

	for _, d := range resp.Days {
		if d.IsRestDay() {
			fmt.Fprintf(tw, "%s\t休息日\n", d.Name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.0fh\n", d.Name, d.TotalHours)
		for _, s := range d.Sessions {
			if s.IsBreak {
				fmt.Fprintf(tw, "\t%s - %s\t休息\n", s.StartTime, s.EndTime)
				continue
			}
			fmt.Fprintf(tw, "\t%s - %s\t%s\t%s\t%s\n",
				s.StartTime, s.EndTime, s.Course, s.Difficulty, strings.Join(s.Topics, ", "))
		}
		for _, u := range d.Unplaced {
			fmt.Fprintf(tw, "\t未安排\t%s\t%.0fh\t%s\n", u.Course, u.Hours, u.Reason)
		}
	}

	if len(resp.Courses) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "排名\t课程\t剩余天数\t紧迫度\t周时长")
		for _, c := range resp.Courses {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d/10\t%dh\n", c.Rank, c.Name, c.DaysLeft, c.Urgency, c.AllocatedWeeklyHours)
		}
	}
	return tw.Flush()
}
