package model

// Event 使用者發布的活動；DayChosen 永遠等於 DateCreated 的日
type Event struct {
	ID          string `json:"id" db:"id"`
	EventName   string `json:"event_name" db:"event_name"`
	PhotoURL    string `json:"photo_url" db:"photo_url"`
	Location    string `json:"location" db:"location"`
	Description string `json:"description" db:"description"`
	DateCreated string `json:"date_created" db:"date_created"`
	DayChosen   int    `json:"day_chosen" db:"day_chosen"`
}

// EventForm 表單送來的原始欄位，尚未驗證
type EventForm struct {
	EventName   string `json:"event_name" form:"event_name"`
	PhotoURL    string `json:"photo_url" form:"photo"`
	Location    string `json:"location" form:"location"`
	Description string `json:"description" form:"description"`
	DateCreated string `json:"date_created" form:"date_created"`
}

// EventFields 驗證後寫入 store 的完整欄位（整筆取代）
type EventFields struct {
	EventName   string
	PhotoURL    string
	Location    string
	Description string
	DateCreated string
	DayChosen   int
}

// Summary 月曆格子裡顯示的精簡資訊
func (e *Event) Summary() EventSummary {
	return EventSummary{
		ID:        e.ID,
		EventName: e.EventName,
		PhotoURL:  e.PhotoURL,
	}
}

type EventDetail struct {
	Event    *Event     `json:"event"`
	Profiles []*Profile `json:"profiles"`
}
