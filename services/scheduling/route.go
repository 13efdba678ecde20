package scheduling

import (
	"context"
	"sort"

	"fotura/models"
	"fotura/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const travelEpsilonKm = 1e-9

// RoutePlanConfig bounds the optimizer.
type RoutePlanConfig struct {
	BufferMin         int
	MaxPasses         int
	MaxBookingsPerDay int
}

// routeDistanceKm is the technician's travel for the day: home base through
// the assigned addresses in start-time order, summing consecutive legs.
func routeDistanceKm(tech models.Technician, bookings []models.Booking) float64 {
	ordered := make([]models.Booking, len(bookings))
	copy(ordered, bookings)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start < ordered[j].Start
		}
		return ordered[i].ID < ordered[j].ID
	})

	total := 0.0
	prev := tech.HomeBase
	for _, b := range ordered {
		total += distanceKm(prev, b.LocationGeo)
		prev = b.LocationGeo
	}
	return total
}

// PlanRouteSwaps proposes technician exchanges between pairs of Confirmado
// bookings that strictly reduce the travel of the technicians involved. Time
// windows never change; each receiving technician must already have a free
// matching interval once the departing booking is discounted. The search is
// greedy and local: it scans pairs in booking-id order, applies improving
// exchanges to a working assignment, and stops when a full pass finds nothing
// or the pass cap is hit. Not a global optimum.
func PlanRouteSwaps(snap DaySnapshot, cfg RoutePlanConfig) []models.RouteSuggestion {
	var swappable []models.Booking
	for _, b := range snap.Bookings {
		if b.Status == models.StatusConfirmado && b.TechnicianID != "" {
			swappable = append(swappable, b)
		}
	}
	sort.Slice(swappable, func(i, j int) bool { return swappable[i].ID < swappable[j].ID })

	// Working assignment, mutated as exchanges are accepted.
	assigned := make(map[string]string, len(swappable))
	for _, b := range swappable {
		assigned[b.ID] = b.TechnicianID
	}

	bookingsOf := func(techID string) []models.Booking {
		var out []models.Booking
		for _, b := range swappable {
			if assigned[b.ID] == techID {
				out = append(out, b)
			}
		}
		return out
	}

	// workingSnap rebuilds a snapshot reflecting the working assignment so
	// eligibility checks see earlier accepted exchanges.
	workingSnap := func() DaySnapshot {
		s := snap
		s.Bookings = make([]models.Booking, len(snap.Bookings))
		copy(s.Bookings, snap.Bookings)
		for i := range s.Bookings {
			if techID, ok := assigned[s.Bookings[i].ID]; ok {
				s.Bookings[i].TechnicianID = techID
			}
		}
		return s
	}

	var suggestions []models.RouteSuggestion

	maxPasses := cfg.MaxPasses
	if maxPasses <= 0 {
		maxPasses = 1
	}

	for pass := 0; pass < maxPasses; pass++ {
		improved := false
		for i := 0; i < len(swappable); i++ {
			for j := i + 1; j < len(swappable); j++ {
				a, b := swappable[i], swappable[j]
				techAID, techBID := assigned[a.ID], assigned[b.ID]
				if techAID == techBID {
					continue
				}
				techA := snap.technician(techAID)
				techB := snap.technician(techBID)
				if techA == nil || techB == nil || !techA.Active || !techB.Active {
					continue
				}

				ws := workingSnap()
				if !ws.canTake(*techB, a.Start, a.End, b.ID, cfg.BufferMin) {
					continue
				}
				if !ws.canTake(*techA, b.Start, b.End, a.ID, cfg.BufferMin) {
					continue
				}
				if cfg.MaxBookingsPerDay > 0 &&
					(ws.loadOf(techAID) > cfg.MaxBookingsPerDay || ws.loadOf(techBID) > cfg.MaxBookingsPerDay) {
					continue
				}

				before := routeDistanceKm(*techA, bookingsOf(techAID)) +
					routeDistanceKm(*techB, bookingsOf(techBID))

				assigned[a.ID], assigned[b.ID] = techBID, techAID
				after := routeDistanceKm(*techA, bookingsOf(techAID)) +
					routeDistanceKm(*techB, bookingsOf(techBID))

				if after >= before-travelEpsilonKm {
					// Not a strict improvement; revert.
					assigned[a.ID], assigned[b.ID] = techAID, techBID
					continue
				}

				improved = true
				suggestions = append(suggestions, models.RouteSuggestion{
					ID:           uuid.New().String(),
					Date:         snap.Date,
					BookingA:     a.ID,
					BookingB:     b.ID,
					TechnicianA:  techAID,
					TechnicianB:  techBID,
					TravelBefore: before,
					TravelAfter:  after,
					SavedKm:      before - after,
				})
			}
		}
		if !improved {
			break
		}
	}

	return suggestions
}

// FindRouteOptimizations runs the swap heuristic over a date's bookings.
// Suggestions are advisory: applying one goes through ReassignBooking, which
// re-validates. Any failure here degrades to an empty suggestion list so
// dependent views keep working.
func (se *DefaultSchedulingEngine) FindRouteOptimizations(ctx context.Context, date string) ([]models.RouteSuggestion, error) {
	logger := utils.GetLogger()

	snap, err := se.loadSnapshot(ctx, date)
	if err != nil {
		if IsValidation(err) {
			return nil, err
		}
		logger.Warn("route optimizer degraded to no suggestions",
			zap.String("date", date), zap.Error(err))
		return []models.RouteSuggestion{}, nil
	}

	suggestions := PlanRouteSwaps(snap, RoutePlanConfig{
		BufferMin:         se.Cfg.TravelBufferMinutes,
		MaxPasses:         se.Cfg.RouteOptMaxPasses,
		MaxBookingsPerDay: se.Cfg.MaxBookingsPerDay,
	})
	return suggestions, nil
}
