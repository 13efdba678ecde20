package scheduling

import (
	"testing"

	"fotura/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDate is a Monday.
const testDate = "2026-03-02"

func allWeek(windows ...models.Window) [7][]models.Window {
	var weekly [7][]models.Window
	for i := range weekly {
		weekly[i] = windows
	}
	return weekly
}

func tech(id string, lon, lat float64, windows ...models.Window) models.Technician {
	return models.Technician{
		ID:       id,
		Name:     id,
		HomeBase: models.NewGeoPoint(lon, lat),
		Weekly:   allWeek(windows...),
		Active:   true,
	}
}

func confirmedBooking(id, techID string, start, end int, lon, lat float64) models.Booking {
	return models.Booking{
		ID:           id,
		Date:         testDate,
		Start:        start,
		End:          end,
		Status:       models.StatusConfirmado,
		TechnicianID: techID,
		LocationGeo:  models.NewGeoPoint(lon, lat),
	}
}

func snapshot(t *testing.T, techs []models.Technician, bookings []models.Booking, timeOffs []models.TimeOffBlock) DaySnapshot {
	t.Helper()
	snap, err := NewDaySnapshot(testDate, techs, bookings, timeOffs)
	require.NoError(t, err)
	return snap
}

func TestAvailableStartsOpenDay(t *testing.T) {
	// 09:00–12:00 window, no bookings, 60-minute request: slots up to 10:30.
	snap := snapshot(t, []models.Technician{
		tech("t1", 0, 0, models.Window{Start: 540, End: 720}),
	}, nil, nil)

	got := AvailableStarts(snap, 60, 30, 30, 0)
	assert.Equal(t, []int{540, 570, 600, 630}, got)
}

func TestAvailableStartsAroundBufferedBooking(t *testing.T) {
	// Booking 10:00–11:00 with a 30-minute buffer occupies 09:30–11:30; in a
	// 09:00–12:00 window no 60-minute session fits anywhere around it.
	snap := snapshot(t, []models.Technician{
		tech("t1", 0, 0, models.Window{Start: 540, End: 720}),
	}, []models.Booking{
		confirmedBooking("b1", "t1", 600, 660, 0, 0),
	}, nil)

	got := AvailableStarts(snap, 60, 30, 30, 0)
	assert.Empty(t, got)
}

func TestAvailableStartsBufferedBookingWideWindow(t *testing.T) {
	// Same buffered booking inside a 08:00–18:00 window: every surviving
	// start keeps [s, s+90) clear of 09:30–11:30.
	snap := snapshot(t, []models.Technician{
		tech("t1", 0, 0, models.Window{Start: 480, End: 1080}),
	}, []models.Booking{
		confirmedBooking("b1", "t1", 600, 660, 0, 0),
	}, nil)

	got := AvailableStarts(snap, 60, 30, 30, 0)
	for _, s := range got {
		overlapsBusy := s < 690 && 570 < s+90
		assert.Falsef(t, overlapsBusy, "start %d intrudes on the buffered booking", s)
	}
	assert.Contains(t, got, 480)
	assert.Contains(t, got, 690)
	assert.NotContains(t, got, 510)
	assert.NotContains(t, got, 660)
}

func TestAvailableStartsNoTechnicians(t *testing.T) {
	snap := snapshot(t, nil, nil, nil)
	assert.Empty(t, AvailableStarts(snap, 60, 30, 30, 0))
}

func TestAvailableStartsInactiveTechnicianIgnored(t *testing.T) {
	inactive := tech("t1", 0, 0, models.Window{Start: 540, End: 720})
	inactive.Active = false
	snap := snapshot(t, []models.Technician{inactive}, nil, nil)
	assert.Empty(t, AvailableStarts(snap, 60, 30, 30, 0))
}

func TestAvailableStartsTimeOffExcluded(t *testing.T) {
	snap := snapshot(t, []models.Technician{
		tech("t1", 0, 0, models.Window{Start: 540, End: 720}),
	}, nil, []models.TimeOffBlock{
		{TechnicianID: "t1", Date: testDate, Start: 540, End: 660, Type: models.BlockPersonalLeave},
	})

	// Buffered block covers 09:00–11:30; nothing fits before 12:00.
	assert.Empty(t, AvailableStarts(snap, 60, 30, 30, 0))
}

func TestAvailableStartsUnionAcrossTechnicians(t *testing.T) {
	// t1 free in the morning only, t2 in the afternoon only; the union
	// covers both, without saying which technician serves which slot.
	snap := snapshot(t, []models.Technician{
		tech("t1", 0, 0, models.Window{Start: 540, End: 660}),
		tech("t2", 0, 0, models.Window{Start: 840, End: 960}),
	}, nil, nil)

	got := AvailableStarts(snap, 30, 30, 0, 0)
	assert.Equal(t, []int{540, 570, 600, 630, 840, 870, 900, 930}, got)
}

func TestAvailableStartsSkipsTechniciansAtDailyCap(t *testing.T) {
	// The only technician already carries their one allowed booking; with the
	// cap at 1 the rest of the day must not be offered, even though free
	// intervals remain.
	loaded := tech("t1", 0, 0, models.Window{Start: 480, End: 1080})
	snap := snapshot(t, []models.Technician{loaded}, []models.Booking{
		confirmedBooking("b1", "t1", 600, 660, 0, 0),
	}, nil)

	assert.NotEmpty(t, AvailableStarts(snap, 60, 30, 30, 0))
	assert.Empty(t, AvailableStarts(snap, 60, 30, 30, 1))
}

func TestAvailableStartsCappedTechnicianLeavesOthersOffered(t *testing.T) {
	capped := tech("t1", 0, 0, models.Window{Start: 480, End: 1080})
	free := tech("t2", 0, 0, models.Window{Start: 540, End: 720})
	snap := snapshot(t, []models.Technician{capped, free}, []models.Booking{
		confirmedBooking("b1", "t1", 900, 960, 0, 0),
	}, nil)

	// Only t2's 09:00–12:00 window survives the cap.
	got := AvailableStarts(snap, 60, 30, 30, 1)
	assert.Equal(t, []int{540, 570, 600, 630}, got)
}

func TestAvailableStartsEveryStartHasAFreeTechnician(t *testing.T) {
	techs := []models.Technician{
		tech("t1", 0, 0, models.Window{Start: 540, End: 780}),
		tech("t2", 0, 0, models.Window{Start: 600, End: 1020}),
	}
	bookings := []models.Booking{
		confirmedBooking("b1", "t1", 600, 660, 0, 0),
		confirmedBooking("b2", "t2", 720, 840, 0, 0),
	}
	snap := snapshot(t, techs, bookings, nil)

	const duration, grid, buffer = 60, 30, 30
	for _, s := range AvailableStarts(snap, duration, grid, buffer, 0) {
		candidate := interval{start: s, end: s + duration + buffer}
		found := false
		for _, tc := range techs {
			if covers(snap.freeIntervalsOf(tc, "", buffer), candidate) {
				found = true
				break
			}
		}
		assert.Truef(t, found, "start %d has no technician with a free interval", s)
	}
}
