package scheduling

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"fotura/models"
	"fotura/utils"

	"go.uber.org/zap"
)

// AvailableStarts computes the union, across all active technicians, of grid
// start times at which a session of durationMin fits. Per technician: the
// weekday windows minus that technician's buffered bookings and time-off
// blocks yield free sub-intervals; each free sub-interval contributes grid
// starts whose session plus trailing travel buffer still fits. Technicians
// already at maxPerDay assigned bookings contribute nothing (0 disables the
// cap), matching the finalize-time selection. An empty result is a valid
// outcome.
func AvailableStarts(snap DaySnapshot, durationMin, gridMin, bufferMin, maxPerDay int) []int {
	seen := make(map[int]bool)
	for _, t := range snap.Technicians {
		if !t.Active {
			continue
		}
		if maxPerDay > 0 && snap.loadOf(t.ID) >= maxPerDay {
			continue
		}
		for _, free := range snap.freeIntervalsOf(t, "", bufferMin) {
			for _, s := range gridStartsWithin(free, durationMin, bufferMin, gridMin) {
				seen[s] = true
			}
		}
	}
	starts := make([]int, 0, len(seen))
	for s := range seen {
		starts = append(starts, s)
	}
	sort.Ints(starts)
	return starts
}

// GetAvailableSlots validates the request, then returns the open slot starts
// for the date and service set. Results are cached per (date, services,
// version); every scheduling write bumps the date's version, so a cached list
// can never outlive the data it was computed from.
func (se *DefaultSchedulingEngine) GetAvailableSlots(ctx context.Context, location models.GeoPoint, serviceIDs []string, date string) ([]models.AvailableSlot, error) {
	logger := utils.GetLogger()

	duration, _, err := se.resolveServices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	version := utils.AvailabilityVersion(ctx, date)
	cacheKey := utils.AvailabilityCacheKey(date, requestFingerprint(serviceIDs, location), version)
	if cached, err := utils.GetCacheClient().Get(ctx, cacheKey).Result(); err == nil {
		var slots []models.AvailableSlot
		if err := json.Unmarshal([]byte(cached), &slots); err == nil {
			return slots, nil
		}
	}

	snap, err := se.loadSnapshot(ctx, date)
	if err != nil {
		return nil, err
	}

	// A slot is only worth offering if a technician within the service
	// radius could take it.
	if location.Valid() && se.Cfg.MaxServiceRadiusKm > 0 {
		inRange := snap.Technicians[:0:0]
		for _, t := range snap.Technicians {
			if distanceKm(t.HomeBase, location) <= se.Cfg.MaxServiceRadiusKm {
				inRange = append(inRange, t)
			}
		}
		snap.Technicians = inRange
	}

	starts := AvailableStarts(snap, duration, se.Cfg.SlotGridMinutes, se.Cfg.TravelBufferMinutes, se.Cfg.MaxBookingsPerDay)
	slots := make([]models.AvailableSlot, 0, len(starts))
	for _, s := range starts {
		slots = append(slots, models.AvailableSlot{
			Start: s,
			Label: models.MinutesToLabel(s),
			Date:  date,
		})
	}

	if payload, err := json.Marshal(slots); err == nil {
		if err := utils.GetCacheClient().Set(ctx, cacheKey, payload, 10*time.Minute).Err(); err != nil {
			logger.Warn("failed to cache slot list", zap.String("date", date), zap.Error(err))
		}
	}

	return slots, nil
}

// resolveServices loads the service set and returns (total duration, total
// price). Unknown ids and zero-duration sets are validation failures.
func (se *DefaultSchedulingEngine) resolveServices(ctx context.Context, serviceIDs []string) (int, float64, error) {
	if len(serviceIDs) == 0 {
		return 0, 0, NewValidationError("at least one service is required")
	}
	svcs, err := se.ServiceRepo.GetByIDs(ctx, serviceIDs)
	if err != nil {
		return 0, 0, err
	}
	byID := make(map[string]models.Service, len(svcs))
	for _, svc := range svcs {
		byID[svc.ID] = svc
	}
	var duration int
	var price float64
	for _, id := range serviceIDs {
		svc, ok := byID[id]
		if !ok {
			return 0, 0, NewValidationError("unknown service %q", id)
		}
		duration += svc.DurationMinutes
		price += svc.Price
	}
	if duration <= 0 {
		return 0, 0, NewValidationError("service set has zero total duration")
	}
	return duration, price, nil
}

func validateDate(date string) error {
	day, err := time.Parse(utils.DateLayout, date)
	if err != nil {
		return NewValidationError("invalid date %q: must be YYYY-MM-DD", date)
	}
	today := time.Now().Format(utils.DateLayout)
	if day.Format(utils.DateLayout) < today {
		return NewValidationError("date %q is in the past", date)
	}
	return nil
}

// requestFingerprint condenses the service set and the rounded request
// location into a short cache-key component. Coordinates are truncated to
// ~100 m so nearby requests share cache entries.
func requestFingerprint(serviceIDs []string, location models.GeoPoint) string {
	key := strings.Join(serviceIDs, ",")
	if location.Valid() {
		key += fmt.Sprintf("|%.3f,%.3f", location.Lon(), location.Lat())
	}
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:8])
}
