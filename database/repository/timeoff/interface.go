package timeoffRepo

import (
	"context"
	"errors"

	"fotura/database"
	"fotura/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrBookingOverlap means a requested block collides with an assigned booking
// of the technician; no blocks are written in that case.
var ErrBookingOverlap = errors.New("time-off overlaps an assigned booking")

// TimeOffRepository is the data access surface for unavailability blocks.
type TimeOffRepository interface {
	GetByTechnicianAndDate(ctx context.Context, technicianID, date string) ([]models.TimeOffBlock, error)
	GetByDate(ctx context.Context, date string) ([]models.TimeOffBlock, error)
	// CreateBlocks inserts the blocks atomically. It re-checks every block
	// against the technician's Confirmado/Realizado/Concluído bookings inside
	// the transaction and returns ErrBookingOverlap (writing nothing) when
	// any collide.
	CreateBlocks(ctx context.Context, blocks []models.TimeOffBlock) error
	Delete(ctx context.Context, id string) error
}

type mongoTimeOffRepo struct {
	timeoffColl *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoTimeOffRepo constructs a new MongoDB TimeOffRepository.
func NewMongoTimeOffRepo() TimeOffRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoTimeOffRepo{
		timeoffColl: db.Collection("timeoffs"),
		bookingColl: db.Collection("bookings"),
	}
}
