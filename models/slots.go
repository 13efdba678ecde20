package models

import "fmt"

// AvailableSlot is one candidate start time on the scheduling grid for which
// at least one active technician can take the full requested duration.
type AvailableSlot struct {
	Start int    `json:"start"`          // minutes from midnight
	Label string `json:"label"`          // "HH:MM"
	Date  string `json:"date"`           // "2006-01-02"
}

// MinutesToLabel formats minutes-from-midnight as "HH:MM".
func MinutesToLabel(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// SwapCandidate is one ranked takeover candidate for a booking reassignment.
// Ordering is ascending distance, then ascending same-day load, then
// technician id so repeated calls over the same data rank identically.
type SwapCandidate struct {
	Technician        Technician `json:"technician"`
	DistanceKm        float64    `json:"distance_km"`
	DailyBookingCount int        `json:"daily_booking_count"`
}

// RouteSuggestion proposes exchanging the technicians of two same-day
// bookings. Time windows are untouched; applying a suggestion goes through
// the reassignment path, which re-validates both sides.
type RouteSuggestion struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	BookingA      string  `json:"booking_a"`
	BookingB      string  `json:"booking_b"`
	TechnicianA   string  `json:"technician_a"` // current technician of BookingA
	TechnicianB   string  `json:"technician_b"` // current technician of BookingB
	TravelBefore  float64 `json:"travel_before_km"`
	TravelAfter   float64 `json:"travel_after_km"`
	SavedKm       float64 `json:"saved_km"`
}

// DaySchedule is the admin view of one technician's day: assigned bookings
// plus time-off blocks, both in start order.
type DaySchedule struct {
	TechnicianID string         `json:"technician_id"`
	Date         string         `json:"date"`
	Bookings     []Booking      `json:"bookings"`
	TimeOffs     []TimeOffBlock `json:"time_offs"`
}
