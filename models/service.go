package models

// Service is a bookable catalogue item. A booking's required duration is the
// sum of its services' durations.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
	Category        string  `bson:"category" json:"category"`
	Price           float64 `bson:"price" json:"price"`
	ClientVisible   bool    `bson:"client_visible" json:"client_visible"`
}
