package model

type EventSummary struct {
	ID        string `json:"id"`
	EventName string `json:"event_name"`
	PhotoURL  string `json:"photo_url,omitempty"`
}

// CalendarCell 月曆中的一格；DayOfMonth 為 nil 表示補位格
type CalendarCell struct {
	DayOfMonth *int           `json:"day_of_month"`
	Events     []EventSummary `json:"events"`
}

func (c CalendarCell) IsPadding() bool {
	return c.DayOfMonth == nil
}

type CalendarWeek [7]CalendarCell

type CalendarGrid struct {
	Year                  int            `json:"year"`
	Month                 int            `json:"month"`
	MonthName             string         `json:"month_name"`
	Weeks                 []CalendarWeek `json:"weeks"`
	WeekdayOffsetOfDayOne int            `json:"weekday_offset_of_day_one"`
	// OrphanedDayBucket 被略過的活動數（day_chosen 超出當月天數）
	OrphanedDayBucket int `json:"orphaned_day_bucket"`
}
