package bookingRepo

import (
	"context"
	"errors"

	"fotura/database"
	"fotura/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors surfaced by the transactional write paths. The scheduling
// service maps them onto its typed conflict errors.
var (
	// ErrIntervalTaken means the target technician's interval was no longer
	// free at commit time.
	ErrIntervalTaken = errors.New("technician interval no longer free")
	// ErrStaleBooking means the booking's status or assignment changed
	// between the caller's read and the commit.
	ErrStaleBooking = errors.New("booking changed since read")
)

// BookingRepository is the data access surface for bookings. Finalize and
// Reassign run under a mongo session transaction and re-validate the target
// interval immediately before commit; on a lost race they return
// ErrIntervalTaken or ErrStaleBooking instead of writing an overlap.
type BookingRepository interface {
	Insert(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByDate(ctx context.Context, date string) ([]models.Booking, error)
	GetByTechnicianAndDate(ctx context.Context, technicianID, date string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, entry models.HistoryEntry) error
	FinalizeDraft(ctx context.Context, p FinalizeParams) error
	Reassign(ctx context.Context, bookingID, fromTechnicianID, toTechnicianID string, bufferMin int, entry models.HistoryEntry) error
}

// FinalizeParams carries the full write for Draft→Confirmado finalization.
type FinalizeParams struct {
	BookingID    string
	TechnicianID string
	Date         string
	Start        int
	End          int
	ServiceIDs   []string
	TotalPrice   float64
	BufferMin    int
	Entry        models.HistoryEntry
}

type mongoBookingRepo struct {
	bookingColl *mongo.Collection
	timeoffColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository. It also
// holds the time-off collection so commit-time revalidation can see blocks
// inside the same transaction.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		timeoffColl: db.Collection("timeoffs"),
	}
}

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
