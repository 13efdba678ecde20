package scheduling

import (
	"testing"

	"fotura/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// latOffsetKm converts a north-south distance to a latitude delta.
func latOffsetKm(km float64) float64 {
	return km / 111.195
}

func TestEligibleForSwapDistanceDominatesLoad(t *testing.T) {
	// Booking 14:00–15:00. Technician B lives ~2 km away and already has one
	// booking that day; technician C lives ~5 km away with a clear day.
	// Distance is the primary key, so B ranks first.
	bookingLoc := models.NewGeoPoint(-46.60, -23.55)
	window := models.Window{Start: 480, End: 1080}

	current := tech("a", -46.60, -23.55, window)
	b := tech("b", -46.60, -23.55+latOffsetKm(2), window)
	c := tech("c", -46.60, -23.55+latOffsetKm(5), window)

	booking := confirmedBooking("bk1", "a", 840, 900, bookingLoc.Lon(), bookingLoc.Lat())
	otherOfB := confirmedBooking("bk2", "b", 480, 540, -46.61, -23.56)

	snap := snapshot(t, []models.Technician{current, b, c},
		[]models.Booking{booking, otherOfB}, nil)

	got := EligibleForSwap(snap, booking, 40, 30)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Technician.ID)
	assert.Equal(t, 1, got[0].DailyBookingCount)
	assert.Equal(t, "c", got[1].Technician.ID)
	assert.Equal(t, 0, got[1].DailyBookingCount)
	assert.Less(t, got[0].DistanceKm, got[1].DistanceKm)
}

func TestEligibleForSwapLoadBreaksDistanceTies(t *testing.T) {
	bookingLoc := models.NewGeoPoint(0, 0)
	window := models.Window{Start: 480, End: 1080}

	busyTech := tech("busy", 0, latOffsetKm(3), window)
	idleTech := tech("idle", 0, latOffsetKm(3), window)

	booking := confirmedBooking("bk1", "owner", 840, 900, bookingLoc.Lon(), bookingLoc.Lat())
	other := confirmedBooking("bk2", "busy", 480, 540, 0, 0)

	snap := snapshot(t,
		[]models.Technician{tech("owner", 0, 0, window), busyTech, idleTech},
		[]models.Booking{booking, other}, nil)

	got := EligibleForSwap(snap, booking, 40, 30)
	require.Len(t, got, 2)
	assert.Equal(t, "idle", got[0].Technician.ID)
	assert.Equal(t, "busy", got[1].Technician.ID)
}

func TestEligibleForSwapDeterministic(t *testing.T) {
	window := models.Window{Start: 480, End: 1080}
	techs := []models.Technician{
		tech("owner", 0, 0, window),
		tech("t1", 0, latOffsetKm(2), window),
		tech("t2", 0, latOffsetKm(2), window),
		tech("t3", 0, latOffsetKm(4), window),
	}
	booking := confirmedBooking("bk1", "owner", 600, 660, 0, 0)
	snap := snapshot(t, techs, []models.Booking{booking}, nil)

	first := EligibleForSwap(snap, booking, 40, 30)
	for i := 0; i < 10; i++ {
		again := EligibleForSwap(snap, booking, 40, 30)
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].Technician.ID, again[j].Technician.ID)
		}
	}
	// Equal-distance pair ordered by id.
	require.Len(t, first, 3)
	assert.Equal(t, "t1", first[0].Technician.ID)
	assert.Equal(t, "t2", first[1].Technician.ID)
}

func TestEligibleForSwapExcludesConflictedAndFiltered(t *testing.T) {
	window := models.Window{Start: 480, End: 1080}

	conflicted := tech("conflicted", 0, latOffsetKm(1), window)
	inactive := tech("inactive", 0, latOffsetKm(1), window)
	inactive.Active = false
	farAway := tech("far", 0, latOffsetKm(90), window)
	offHours := tech("offhours", 0, latOffsetKm(1), models.Window{Start: 480, End: 600})

	booking := confirmedBooking("bk1", "owner", 840, 900, 0, 0)
	clash := confirmedBooking("bk2", "conflicted", 870, 930, 0, 0)

	snap := snapshot(t,
		[]models.Technician{tech("owner", 0, 0, window), conflicted, inactive, farAway, offHours},
		[]models.Booking{booking, clash}, nil)

	got := EligibleForSwap(snap, booking, 40, 30)
	assert.Empty(t, got)
}

func TestEligibleForSwapIgnoresTheBookingItself(t *testing.T) {
	// The booking under reassignment must not count as a conflict for a
	// technician who is otherwise free at that exact interval.
	window := models.Window{Start: 480, End: 1080}
	owner := tech("owner", 0, 0, window)
	candidate := tech("cand", 0, latOffsetKm(1), window)

	booking := confirmedBooking("bk1", "owner", 600, 660, 0, 0)
	snap := snapshot(t, []models.Technician{owner, candidate}, []models.Booking{booking}, nil)

	got := EligibleForSwap(snap, booking, 40, 30)
	require.Len(t, got, 1)
	assert.Equal(t, "cand", got[0].Technician.ID)
}
