package models

import "time"

// Window is a half-open [start,end) range in minutes from midnight
// (e.g. 540–720 for 09:00–12:00).
type Window struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// Technician is the field resource (photographer/videographer) that fulfils
// bookings. Weekly holds the working windows per weekday, indexed by
// time.Weekday (0 = Sunday).
type Technician struct {
	ID        string      `bson:"id" json:"id"`
	Name      string      `bson:"name" json:"name"`
	HomeBase  GeoPoint    `bson:"home_base" json:"home_base"`
	Weekly    [7][]Window `bson:"weekly" json:"weekly"`
	Active    bool        `bson:"active" json:"active"`
	FCMToken  string      `bson:"fcm_token,omitempty" json:"fcm_token,omitempty"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
}

// WindowsOn returns the technician's working windows for the given weekday.
func (t Technician) WindowsOn(day time.Weekday) []Window {
	return t.Weekly[int(day)]
}
