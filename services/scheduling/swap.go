package scheduling

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"fotura/models"
	"fotura/utils"

	"go.uber.org/zap"
)

// haversine returns the great-circle distance in km between two coordinates.
// This is a straight-line approximation of travel, not road-network distance.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

func distanceKm(from, to models.GeoPoint) float64 {
	if !from.Valid() || !to.Valid() {
		return 0
	}
	return haversine(from.Lat(), from.Lon(), to.Lat(), to.Lon())
}

// EligibleForSwap ranks the technicians that could take over the booking:
// active, inside the service radius, and with a free interval covering the
// booking's [start,end) on its date (the booking's own slot is excluded from
// the current holder's conflict check). Ranking is ascending distance, then
// ascending same-day load, then technician id, so repeated calls over the
// same snapshot order identically.
func EligibleForSwap(snap DaySnapshot, booking models.Booking, radiusKm float64, bufferMin int) []models.SwapCandidate {
	type scored struct {
		tech models.Technician
		dist float64
		load int
	}

	resultsCh := make(chan scored, len(snap.Technicians))
	var wg sync.WaitGroup

	for _, t := range snap.Technicians {
		if t.ID == booking.TechnicianID {
			continue
		}
		wg.Add(1)
		go func(t models.Technician) {
			defer wg.Done()
			if !snap.canTake(t, booking.Start, booking.End, booking.ID, bufferMin) {
				return
			}
			dist := distanceKm(t.HomeBase, booking.LocationGeo)
			if radiusKm > 0 && dist > radiusKm {
				return
			}
			resultsCh <- scored{tech: t, dist: dist, load: snap.loadOf(t.ID)}
		}(t)
	}

	wg.Wait()
	close(resultsCh)

	var scores []scored
	for s := range resultsCh {
		scores = append(scores, s)
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].dist != scores[j].dist {
			return scores[i].dist < scores[j].dist
		}
		if scores[i].load != scores[j].load {
			return scores[i].load < scores[j].load
		}
		return scores[i].tech.ID < scores[j].tech.ID
	})

	candidates := make([]models.SwapCandidate, 0, len(scores))
	for _, s := range scores {
		candidates = append(candidates, models.SwapCandidate{
			Technician:        s.tech,
			DistanceKm:        s.dist,
			DailyBookingCount: s.load,
		})
	}
	return candidates
}

// GetEligibleTechniciansForSwap returns the ranked takeover candidates for a
// booking. An empty list is a valid outcome.
func (se *DefaultSchedulingEngine) GetEligibleTechniciansForSwap(ctx context.Context, bookingID string) ([]models.SwapCandidate, error) {
	b, err := se.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.Status.Assigned() {
		return nil, NewValidationError("booking %s has no assigned slot to swap", bookingID)
	}

	snap, err := se.loadSnapshot(ctx, b.Date)
	if err != nil {
		return nil, err
	}
	return EligibleForSwap(snap, *b, se.Cfg.MaxServiceRadiusKm, se.Cfg.TravelBufferMinutes), nil
}

// ReassignBooking hands the booking to another technician. Eligibility is
// re-checked from a fresh snapshot and again inside the store transaction; a
// candidate gone stale surfaces as ConflictError and the caller re-queries.
func (se *DefaultSchedulingEngine) ReassignBooking(ctx context.Context, bookingID, technicianID, actor string) error {
	logger := utils.GetLogger()

	b, err := se.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if !b.Status.Assigned() {
		return NewValidationError("booking %s has no assigned slot to reassign", bookingID)
	}
	if b.TechnicianID == technicianID {
		return NewValidationError("booking %s is already assigned to technician %s", bookingID, technicianID)
	}

	tech, err := se.TechnicianRepo.GetByID(ctx, technicianID)
	if err != nil {
		return NewNotFoundError("technician %s not found", technicianID)
	}

	snap, err := se.loadSnapshot(ctx, b.Date)
	if err != nil {
		return err
	}
	if !snap.canTake(*tech, b.Start, b.End, b.ID, se.Cfg.TravelBufferMinutes) {
		return NewConflictError("technician %s is no longer free for booking %s", technicianID, bookingID)
	}
	if dist := distanceKm(tech.HomeBase, b.LocationGeo); se.Cfg.MaxServiceRadiusKm > 0 && dist > se.Cfg.MaxServiceRadiusKm {
		return NewValidationError("technician %s is outside the service radius (%.1f km)", technicianID, dist)
	}

	entry := models.HistoryEntry{
		At:    time.Now(),
		Actor: actor,
		Note:  "reassigned from technician " + b.TechnicianID + " to " + technicianID,
	}
	if err := se.BookingRepo.Reassign(ctx, bookingID, b.TechnicianID, technicianID, se.Cfg.TravelBufferMinutes, entry); err != nil {
		return se.mapRepoError(err, bookingID)
	}

	utils.BumpAvailabilityVersion(ctx, b.Date)

	logger.Info("booking reassigned",
		zap.String("bookingID", bookingID),
		zap.String("from", b.TechnicianID),
		zap.String("to", technicianID))

	se.notifySwap(ctx, b, technicianID)
	return nil
}
