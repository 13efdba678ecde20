package scheduling

import (
	"context"
	"time"

	"fotura/models"
	"fotura/utils"

	"go.uber.org/zap"
)

// allowedTransitions is the booking lifecycle. Concluído and Cancelado are
// terminal. Reassignment is not a transition; it never touches status.
var allowedTransitions = map[models.BookingStatus]map[models.BookingStatus]bool{
	models.StatusDraft: {
		models.StatusConfirmado: true,
		models.StatusCancelado:  true,
	},
	models.StatusPendente: {
		models.StatusConfirmado: true,
		models.StatusCancelado:  true,
	},
	models.StatusConfirmado: {
		models.StatusRealizado: true,
		models.StatusCancelado: true,
	},
	models.StatusRealizado: {
		models.StatusConcluido: true,
	},
	models.StatusConcluido: {},
	models.StatusCancelado: {},
}

// CanTransition reports whether from→to is a defined lifecycle edge.
func CanTransition(from, to models.BookingStatus) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// transitionEntry builds the history line recorded with a status change.
func transitionEntry(actor string, from, to models.BookingStatus) models.HistoryEntry {
	return models.HistoryEntry{
		At:    time.Now(),
		Actor: actor,
		Note:  "status " + string(from) + " → " + string(to),
	}
}

// AdvanceStatus applies a lifecycle transition with an immutable history
// entry. Undefined transitions are rejected with IllegalTransitionError; a
// racing transition that changed the status first surfaces as ConflictError.
// Confirmado and beyond require a technician and a [start,end) window, so a
// bare status flip can never confirm a booking that was not finalized.
func (se *DefaultSchedulingEngine) AdvanceStatus(ctx context.Context, bookingID string, to models.BookingStatus, actor string) error {
	logger := utils.GetLogger()

	b, err := se.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status, to) {
		return NewIllegalTransitionError("cannot transition booking %s from %s to %s", bookingID, b.Status, to)
	}
	if to == models.StatusConfirmado && (b.TechnicianID == "" || b.End <= b.Start) {
		return NewIllegalTransitionError("booking %s has no technician or time window; confirm it through finalization", bookingID)
	}

	if err := se.BookingRepo.UpdateStatus(ctx, bookingID, b.Status, to, transitionEntry(actor, b.Status, to)); err != nil {
		return se.mapRepoError(err, bookingID)
	}

	logger.Info("booking status advanced",
		zap.String("bookingID", bookingID),
		zap.String("from", string(b.Status)),
		zap.String("to", string(to)))

	if to == models.StatusCancelado && b.Status.Assigned() {
		utils.BumpAvailabilityVersion(ctx, b.Date)
	}
	return nil
}
