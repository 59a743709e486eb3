// Package export 將活動輸出成 iCalendar (RFC 5545) 格式
package export

import (
	"fmt"
	"time"

	"gin-event-calendar/internal/datekey"
	"gin-event-calendar/internal/model"

	ical "github.com/arran4/golang-ical"
)

const productID = "-//gin-event-calendar//EN"

// MonthCalendar 每個活動輸出成 date_created 當天的全天 VEVENT。
// date_created 無法解析的活動會被略過並計入 skipped。
func MonthCalendar(year, month int, events []*model.Event, stamp time.Time) (body string, skipped int) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(fmt.Sprintf("Events %04d-%02d", year, month))

	for _, e := range events {
		day, err := time.Parse(datekey.Layout, e.DateCreated)
		if err != nil {
			skipped++
			continue
		}

		ve := cal.AddEvent(e.ID + "@gin-event-calendar")
		ve.SetDtStampTime(stamp.UTC())
		ve.SetAllDayStartAt(day)
		ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		ve.SetSummary(e.EventName)
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.PhotoURL != "" {
			ve.SetURL(e.PhotoURL)
		}
	}

	return cal.Serialize(), skipped
}
