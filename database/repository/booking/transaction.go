package bookingRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"fotura/models"
)

// assignedStatuses are the states whose bookings occupy a technician's time.
var assignedStatuses = bson.A{
	string(models.StatusConfirmado),
	string(models.StatusRealizado),
	string(models.StatusConcluido),
}

// technicianBusy reports whether [start,end), widened by the travel buffer,
// collides with any assigned booking or time-off block of the technician on
// the date. Reads go through the session context so the check and the write
// commit or abort together. excludeBookingID skips the booking being moved
// when the caller is a reassignment.
func (r *mongoBookingRepo) technicianBusy(
	sc mongo.SessionContext,
	technicianID, date string,
	start, end, bufferMin int,
	excludeBookingID string,
) (bool, error) {
	cursor, err := r.bookingColl.Find(sc, bson.M{
		"technician_id": technicianID,
		"date":          date,
		"status":        bson.M{"$in": assignedStatuses},
	})
	if err != nil {
		return false, fmt.Errorf("revalidation booking query failed: %w", err)
	}
	var bookings []models.Booking
	if err := cursor.All(sc, &bookings); err != nil {
		return false, fmt.Errorf("revalidation booking decode failed: %w", err)
	}
	for _, b := range bookings {
		if b.ID == excludeBookingID {
			continue
		}
		if overlaps(start, end, b.Start-bufferMin, b.End+bufferMin) {
			return true, nil
		}
	}

	cursor, err = r.timeoffColl.Find(sc, bson.M{
		"technician_id": technicianID,
		"date":          date,
	})
	if err != nil {
		return false, fmt.Errorf("revalidation time-off query failed: %w", err)
	}
	var blocks []models.TimeOffBlock
	if err := cursor.All(sc, &blocks); err != nil {
		return false, fmt.Errorf("revalidation time-off decode failed: %w", err)
	}
	for _, blk := range blocks {
		if overlaps(start, end, blk.Start-bufferMin, blk.End+bufferMin) {
			return true, nil
		}
	}
	return false, nil
}

func (r *mongoBookingRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// FinalizeDraft writes technician + time window onto a Draft booking and
// advances it to Confirmado, all inside one transaction. The technician's
// interval is re-checked under the session right before the update, so a
// concurrent finalize or block that won the race surfaces as ErrIntervalTaken
// rather than a double-booking.
func (r *mongoBookingRepo) FinalizeDraft(ctx context.Context, p FinalizeParams) error {
	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		busy, err := r.technicianBusy(sc, p.TechnicianID, p.Date, p.Start, p.End, p.BufferMin, p.BookingID)
		if err != nil {
			return err
		}
		if busy {
			return ErrIntervalTaken
		}

		filter := bson.M{"id": p.BookingID, "status": string(models.StatusDraft)}
		update := bson.M{
			"$set": bson.M{
				"technician_id": p.TechnicianID,
				"date":          p.Date,
				"start":         p.Start,
				"end":           p.End,
				"service_ids":   p.ServiceIDs,
				"total_price":   p.TotalPrice,
				"status":        string(models.StatusConfirmado),
			},
			"$push": bson.M{"history": p.Entry},
		}
		res, err := r.bookingColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("finalize update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStaleBooking
		}
		return nil
	})
}

// Reassign moves a booking to another technician. Status and time window are
// untouched; only the technician reference changes. The new technician's
// interval is re-validated under the transaction, and the filter pins the
// previous technician so a concurrent reassignment loses cleanly.
func (r *mongoBookingRepo) Reassign(ctx context.Context, bookingID, fromTechnicianID, toTechnicianID string, bufferMin int, entry models.HistoryEntry) error {
	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var b models.Booking
		if err := r.bookingColl.FindOne(sc, bson.M{"id": bookingID}).Decode(&b); err != nil {
			return fmt.Errorf("reassign read failed: %w", err)
		}
		if b.TechnicianID != fromTechnicianID || !b.Status.Assigned() {
			return ErrStaleBooking
		}

		busy, err := r.technicianBusy(sc, toTechnicianID, b.Date, b.Start, b.End, bufferMin, bookingID)
		if err != nil {
			return err
		}
		if busy {
			return ErrIntervalTaken
		}

		filter := bson.M{
			"id":            bookingID,
			"technician_id": fromTechnicianID,
			"status":        bson.M{"$in": assignedStatuses},
		}
		update := bson.M{
			"$set":  bson.M{"technician_id": toTechnicianID},
			"$push": bson.M{"history": entry},
		}
		res, err := r.bookingColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("reassign update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStaleBooking
		}
		return nil
	})
}
