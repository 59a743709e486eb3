// Package calendar 把活動排進單月的週 x 星期格子
package calendar

import (
	"time"

	"gin-event-calendar/internal/datekey"
	"gin-event-calendar/internal/model"
)

// FirstWeekday 每週從星期日開始
const FirstWeekday = time.Sunday

// WeekdayOffset 當月一號相對 FirstWeekday 的偏移 (0..6)
func WeekdayOffset(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return (int(first.Weekday()) - int(FirstWeekday) + 7) % 7
}

// Build 產生月曆格子。純函式：不讀系統時間，相同輸入得到相同結果。
// day_chosen 超出當月天數的活動不會放進格子，只計入 OrphanedDayBucket。
func Build(year int, month time.Month, events []*model.Event) *model.CalendarGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	year, month = first.Year(), first.Month()

	days := datekey.DaysIn(year, month)
	offset := WeekdayOffset(year, month)

	buckets := make([][]model.EventSummary, days+1)
	orphans := 0
	for _, e := range events {
		if e == nil {
			continue
		}
		if e.DayChosen < 1 || e.DayChosen > days {
			orphans++
			continue
		}
		buckets[e.DayChosen] = append(buckets[e.DayChosen], e.Summary())
	}

	total := offset + days
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	weeks := make([]model.CalendarWeek, total/7)
	for i := 0; i < total; i++ {
		day := i - offset + 1
		if day < 1 || day > days {
			weeks[i/7][i%7] = model.CalendarCell{Events: []model.EventSummary{}}
			continue
		}
		d := day
		cell := model.CalendarCell{DayOfMonth: &d, Events: buckets[day]}
		if cell.Events == nil {
			cell.Events = []model.EventSummary{}
		}
		weeks[i/7][i%7] = cell
	}

	return &model.CalendarGrid{
		Year:                  year,
		Month:                 int(month),
		MonthName:             month.String(),
		Weeks:                 weeks,
		WeekdayOffsetOfDayOne: offset,
		OrphanedDayBucket:     orphans,
	}
}
