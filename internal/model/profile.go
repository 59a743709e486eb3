package model

// Profile 活動的出席登記 (RSVP)
type Profile struct {
	ID              string `json:"id" db:"id"`
	EventID         string `json:"event_id" db:"event_id"`
	ProfileName     string `json:"profile_name" db:"profile_name"`
	NumberAttending int    `json:"number_attending" db:"number_attending"`
	DateCreated     string `json:"date_created" db:"date_created"`
	Time            string `json:"time" db:"time"`
}

type ProfileForm struct {
	ProfileName     string `json:"profile_name" form:"profile_name"`
	NumberAttending string `json:"number_attending" form:"number_attending"`
	DateCreated     string `json:"date_created" form:"date_created"`
	Time            string `json:"time" form:"time"`
}

type ProfileFields struct {
	EventID         string
	ProfileName     string
	NumberAttending int
	DateCreated     string
	Time            string
}
