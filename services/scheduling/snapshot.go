package scheduling

import (
	"time"

	"fotura/models"
	"fotura/utils"
)

// DaySnapshot is a read snapshot of everything scheduling decisions need for
// one date: technicians, their bookings and their time-off blocks. All
// decision logic (availability, eligibility, route planning) is a pure
// function over a snapshot; writers re-validate against the store before
// committing, so a snapshot being slightly stale is safe.
type DaySnapshot struct {
	Date        string
	Weekday     time.Weekday
	Technicians []models.Technician
	Bookings    []models.Booking
	TimeOffs    []models.TimeOffBlock
}

// NewDaySnapshot derives the weekday from the date and assembles a snapshot.
func NewDaySnapshot(date string, techs []models.Technician, bookings []models.Booking, timeOffs []models.TimeOffBlock) (DaySnapshot, error) {
	day, err := time.Parse(utils.DateLayout, date)
	if err != nil {
		return DaySnapshot{}, NewValidationError("invalid date %q: must be YYYY-MM-DD", date)
	}
	return DaySnapshot{
		Date:        date,
		Weekday:     day.Weekday(),
		Technicians: techs,
		Bookings:    bookings,
		TimeOffs:    timeOffs,
	}, nil
}

// technician returns the snapshot's technician by id, or nil.
func (s DaySnapshot) technician(id string) *models.Technician {
	for i := range s.Technicians {
		if s.Technicians[i].ID == id {
			return &s.Technicians[i]
		}
	}
	return nil
}

// assignedBookingsOf returns the technician's bookings that occupy time
// (Confirmado/Realizado/Concluído), skipping excludeBookingID.
func (s DaySnapshot) assignedBookingsOf(technicianID, excludeBookingID string) []models.Booking {
	var out []models.Booking
	for _, b := range s.Bookings {
		if b.TechnicianID != technicianID || !b.Status.Assigned() {
			continue
		}
		if b.ID == excludeBookingID {
			continue
		}
		out = append(out, b)
	}
	return out
}

// loadOf counts the technician's assigned bookings on the snapshot date.
func (s DaySnapshot) loadOf(technicianID string) int {
	return len(s.assignedBookingsOf(technicianID, ""))
}

// busyIntervalsOf merges the technician's bookings and time-off blocks, each
// expanded by the travel buffer on both sides.
func (s DaySnapshot) busyIntervalsOf(technicianID, excludeBookingID string, bufferMin int) []interval {
	var busy []interval
	for _, b := range s.assignedBookingsOf(technicianID, excludeBookingID) {
		busy = append(busy, interval{start: b.Start, end: b.End}.expand(bufferMin))
	}
	for _, blk := range s.TimeOffs {
		if blk.TechnicianID != technicianID {
			continue
		}
		busy = append(busy, interval{start: blk.Start, end: blk.End}.expand(bufferMin))
	}
	return mergeIntervals(busy)
}

// freeIntervalsOf subtracts the buffered busy set from the technician's
// weekday windows.
func (s DaySnapshot) freeIntervalsOf(t models.Technician, excludeBookingID string, bufferMin int) []interval {
	busy := s.busyIntervalsOf(t.ID, excludeBookingID, bufferMin)
	var free []interval
	for _, w := range t.WindowsOn(s.Weekday) {
		free = append(free, subtractIntervals(interval{start: w.Start, end: w.End}, busy)...)
	}
	return free
}

// canTake reports whether the technician has a free interval fully covering
// [start,end) on the snapshot date, ignoring excludeBookingID's own slot.
func (s DaySnapshot) canTake(t models.Technician, start, end int, excludeBookingID string, bufferMin int) bool {
	if !t.Active {
		return false
	}
	return covers(s.freeIntervalsOf(t, excludeBookingID, bufferMin), interval{start: start, end: end})
}
