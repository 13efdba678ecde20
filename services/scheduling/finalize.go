package scheduling

import (
	"context"
	"sort"
	"time"

	bookingRepo "fotura/database/repository/booking"
	"fotura/models"
	"fotura/utils"

	"go.uber.org/zap"
)

// DraftRequest creates a Draft booking from client intake. No technician or
// time window yet; those arrive at finalize time.
type DraftRequest struct {
	ClientID    string          `json:"client_id"`
	Address     string          `json:"address"`
	LocationGeo models.GeoPoint `json:"location_geo"`
	Date        string          `json:"date"`
	ServiceIDs  []string        `json:"service_ids"`
	Actor       string          `json:"-"`
}

// FinalizeRequest commits a Draft booking to a concrete slot. The technician
// is chosen server-side: nearest free home base first, least loaded on ties.
type FinalizeRequest struct {
	BookingID  string   `json:"booking_id"`
	Date       string   `json:"date"`
	Start      int      `json:"start"` // minutes from midnight, on the slot grid
	ServiceIDs []string `json:"service_ids"`
	Actor      string   `json:"-"`
}

// CreateDraftBooking records client intake as a Draft booking.
func (se *DefaultSchedulingEngine) CreateDraftBooking(ctx context.Context, p DraftRequest) (*models.Booking, error) {
	if p.ClientID == "" {
		return nil, NewValidationError("client id is required")
	}
	if !p.LocationGeo.Valid() {
		return nil, NewValidationError("booking location is required")
	}
	if _, _, err := se.resolveServices(ctx, p.ServiceIDs); err != nil {
		return nil, err
	}
	if err := validateDate(p.Date); err != nil {
		return nil, err
	}

	b := &models.Booking{
		ClientID:    p.ClientID,
		Address:     p.Address,
		LocationGeo: p.LocationGeo,
		Date:        p.Date,
		ServiceIDs:  p.ServiceIDs,
		Status:      models.StatusDraft,
		History: []models.HistoryEntry{{
			At:    time.Now(),
			Actor: p.Actor,
			Note:  "draft created",
		}},
	}
	if err := se.BookingRepo.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// FinalizeDraftBooking validates the chosen slot against current
// availability, picks a technician, and writes technician + window + status
// atomically. The store transaction re-validates the technician's interval,
// so a lost race returns ConflictError and the caller re-queries slots.
func (se *DefaultSchedulingEngine) FinalizeDraftBooking(ctx context.Context, p FinalizeRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := se.getBooking(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusDraft {
		return nil, NewIllegalTransitionError("booking %s is %s, only Draft bookings can be finalized", p.BookingID, b.Status)
	}

	serviceIDs := p.ServiceIDs
	if len(serviceIDs) == 0 {
		serviceIDs = b.ServiceIDs
	}
	duration, price, err := se.resolveServices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}
	if err := validateDate(p.Date); err != nil {
		return nil, err
	}
	if p.Start%se.Cfg.SlotGridMinutes != 0 {
		return nil, NewValidationError("start %d is not on the %d-minute grid", p.Start, se.Cfg.SlotGridMinutes)
	}

	snap, err := se.loadSnapshot(ctx, p.Date)
	if err != nil {
		return nil, err
	}

	tech := pickTechnician(snap, b.LocationGeo, p.Start, duration, se.Cfg)
	if tech == nil {
		return nil, NewConflictError("slot %s on %s is no longer available", models.MinutesToLabel(p.Start), p.Date)
	}

	end := p.Start + duration
	err = se.BookingRepo.FinalizeDraft(ctx, bookingRepo.FinalizeParams{
		BookingID:    p.BookingID,
		TechnicianID: tech.ID,
		Date:         p.Date,
		Start:        p.Start,
		End:          end,
		ServiceIDs:   serviceIDs,
		TotalPrice:   price,
		BufferMin:    se.Cfg.TravelBufferMinutes,
		Entry: models.HistoryEntry{
			At:    time.Now(),
			Actor: p.Actor,
			Note:  "finalized: technician " + tech.ID + ", " + models.MinutesToLabel(p.Start) + "–" + models.MinutesToLabel(end),
		},
	})
	if err != nil {
		return nil, se.mapRepoError(err, p.BookingID)
	}

	utils.BumpAvailabilityVersion(ctx, p.Date)

	logger.Info("booking finalized",
		zap.String("bookingID", p.BookingID),
		zap.String("technicianID", tech.ID),
		zap.String("date", p.Date),
		zap.Int("start", p.Start))

	confirmed, err := se.getBooking(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}

	se.notifyConfirm(ctx, confirmed)
	se.scheduleReminder(ctx, confirmed)

	return confirmed, nil
}

// pickTechnician selects who takes a finalized slot: among active technicians
// free for [start, start+duration) plus trailing buffer and under the daily
// load cap, the nearest home base wins, then the lightest same-day load, then
// the lowest id.
func pickTechnician(snap DaySnapshot, location models.GeoPoint, start, durationMin int, cfg SchedulingConfig) *models.Technician {
	type candidate struct {
		tech models.Technician
		dist float64
		load int
	}
	var candidates []candidate
	end := start + durationMin

	for _, t := range snap.Technicians {
		if !t.Active {
			continue
		}
		if !covers(snap.freeIntervalsOf(t, "", cfg.TravelBufferMinutes), interval{start: start, end: end + cfg.TravelBufferMinutes}) {
			continue
		}
		load := snap.loadOf(t.ID)
		if cfg.MaxBookingsPerDay > 0 && load >= cfg.MaxBookingsPerDay {
			continue
		}
		dist := distanceKm(t.HomeBase, location)
		if cfg.MaxServiceRadiusKm > 0 && dist > cfg.MaxServiceRadiusKm {
			continue
		}
		candidates = append(candidates, candidate{tech: t, dist: dist, load: load})
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		if candidates[i].load != candidates[j].load {
			return candidates[i].load < candidates[j].load
		}
		return candidates[i].tech.ID < candidates[j].tech.ID
	})
	return &candidates[0].tech
}
