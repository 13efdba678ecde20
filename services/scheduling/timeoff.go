package scheduling

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	timeoffRepo "fotura/database/repository/timeoff"
	"fotura/models"
	"fotura/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// parseSlotLabel converts "HH:MM" to minutes from midnight.
func parseSlotLabel(label string) (int, error) {
	parts := strings.SplitN(label, ":", 2)
	if len(parts) != 2 {
		return 0, NewValidationError("invalid slot label %q: must be HH:MM", label)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, NewValidationError("invalid slot label %q: must be HH:MM", label)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, NewValidationError("invalid slot label %q: must be HH:MM", label)
	}
	return h*60 + m, nil
}

// MergeSlotRuns turns selected grid slot labels into the minimal set of
// blocked intervals: contiguous slots coalesce into one interval, gaps split
// runs. Duplicate labels are tolerated.
func MergeSlotRuns(labels []string, gridMin int) ([]interval, error) {
	if len(labels) == 0 {
		return nil, NewValidationError("at least one slot is required")
	}
	seen := make(map[int]bool, len(labels))
	starts := make([]int, 0, len(labels))
	for _, label := range labels {
		start, err := parseSlotLabel(label)
		if err != nil {
			return nil, err
		}
		if start%gridMin != 0 {
			return nil, NewValidationError("slot %q is not on the %d-minute grid", label, gridMin)
		}
		if !seen[start] {
			seen[start] = true
			starts = append(starts, start)
		}
	}
	sort.Ints(starts)

	var runs []interval
	current := interval{start: starts[0], end: starts[0] + gridMin}
	for _, s := range starts[1:] {
		if s == current.end {
			current.end = s + gridMin
			continue
		}
		runs = append(runs, current)
		current = interval{start: s, end: s + gridMin}
	}
	runs = append(runs, current)
	return runs, nil
}

// BlockTimeOffSlots converts a slot selection into TimeOffBlock records. The
// whole selection is written atomically: if any slot overlaps a
// Confirmado/Realizado/Concluído booking of the technician, the call fails
// with ConflictError and zero blocks are created — the caller must reassign
// or cancel that booking first. A successful write bumps the date's
// availability version so stale slot lists are never served.
func (se *DefaultSchedulingEngine) BlockTimeOffSlots(ctx context.Context, technicianID, date string, slots []string, reason string, blockType models.BlockType) ([]models.TimeOffBlock, error) {
	logger := utils.GetLogger()

	if blockType != models.BlockPersonalLeave && blockType != models.BlockAdmin {
		return nil, NewValidationError("unknown block type %q", blockType)
	}
	if _, err := time.Parse(utils.DateLayout, date); err != nil {
		return nil, NewValidationError("invalid date %q: must be YYYY-MM-DD", date)
	}
	if _, err := se.TechnicianRepo.GetByID(ctx, technicianID); err != nil {
		return nil, NewNotFoundError("technician %s not found", technicianID)
	}

	runs, err := MergeSlotRuns(slots, se.Cfg.SlotGridMinutes)
	if err != nil {
		return nil, err
	}

	blocks := timeOffBlocksFromRuns(technicianID, date, reason, blockType, runs)

	if err := se.TimeOffRepo.CreateBlocks(ctx, blocks); err != nil {
		if err == timeoffRepo.ErrBookingOverlap {
			return nil, NewConflictError("selection overlaps an assigned booking for technician %s on %s", technicianID, date)
		}
		return nil, err
	}

	utils.BumpAvailabilityVersion(ctx, date)

	logger.Info("time-off blocks created",
		zap.String("technicianID", technicianID),
		zap.String("date", date),
		zap.Int("blocks", len(blocks)))

	return blocks, nil
}

// timeOffBlocksFromRuns materializes the block records for merged slot runs.
// Ids are assigned here, not in the store, so the records handed back to the
// caller are the complete persisted ones.
func timeOffBlocksFromRuns(technicianID, date, reason string, blockType models.BlockType, runs []interval) []models.TimeOffBlock {
	now := time.Now()
	blocks := make([]models.TimeOffBlock, 0, len(runs))
	for _, run := range runs {
		blocks = append(blocks, models.TimeOffBlock{
			ID:           uuid.New().String(),
			TechnicianID: technicianID,
			Date:         date,
			Start:        run.start,
			End:          run.end,
			Reason:       reason,
			Type:         blockType,
			CreatedAt:    now,
		})
	}
	return blocks
}

// GetDaySchedule returns one technician's bookings and time-off blocks for a
// date, for the admin tooling that drives blocking and swaps.
func (se *DefaultSchedulingEngine) GetDaySchedule(ctx context.Context, technicianID, date string) (*models.DaySchedule, error) {
	if _, err := se.TechnicianRepo.GetByID(ctx, technicianID); err != nil {
		return nil, NewNotFoundError("technician %s not found", technicianID)
	}
	bookings, err := se.BookingRepo.GetByTechnicianAndDate(ctx, technicianID, date)
	if err != nil {
		return nil, err
	}
	blocks, err := se.TimeOffRepo.GetByTechnicianAndDate(ctx, technicianID, date)
	if err != nil {
		return nil, err
	}
	return &models.DaySchedule{
		TechnicianID: technicianID,
		Date:         date,
		Bookings:     bookings,
		TimeOffs:     blocks,
	}, nil
}
