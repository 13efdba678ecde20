package timeoffRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fotura/models"
)

var assignedStatuses = bson.A{
	string(models.StatusConfirmado),
	string(models.StatusRealizado),
	string(models.StatusConcluido),
}

func (r *mongoTimeOffRepo) GetByTechnicianAndDate(ctx context.Context, technicianID, date string) ([]models.TimeOffBlock, error) {
	return r.find(ctx, bson.M{"technician_id": technicianID, "date": date})
}

func (r *mongoTimeOffRepo) GetByDate(ctx context.Context, date string) ([]models.TimeOffBlock, error) {
	return r.find(ctx, bson.M{"date": date})
}

func (r *mongoTimeOffRepo) find(ctx context.Context, filter bson.M) ([]models.TimeOffBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.timeoffColl.Find(ctx, filter, options.Find().SetSort(bson.M{"start": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blocks []models.TimeOffBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *mongoTimeOffRepo) CreateBlocks(ctx context.Context, blocks []models.TimeOffBlock) error {
	if len(blocks) == 0 {
		return nil
	}

	client := r.timeoffColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		for _, blk := range blocks {
			clash, err := r.overlapsAssignedBooking(sc, blk)
			if err != nil {
				return err
			}
			if clash {
				return ErrBookingOverlap
			}
		}

		docs := make([]interface{}, len(blocks))
		for i := range blocks {
			if blocks[i].ID == "" {
				blocks[i].ID = uuid.New().String()
			}
			if blocks[i].CreatedAt.IsZero() {
				blocks[i].CreatedAt = time.Now()
			}
			docs[i] = blocks[i]
		}
		if _, err := r.timeoffColl.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert time-off blocks failed: %w", err)
		}
		return nil
	}

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

func (r *mongoTimeOffRepo) overlapsAssignedBooking(sc mongo.SessionContext, blk models.TimeOffBlock) (bool, error) {
	count, err := r.bookingColl.CountDocuments(sc, bson.M{
		"technician_id": blk.TechnicianID,
		"date":          blk.Date,
		"status":        bson.M{"$in": assignedStatuses},
		"start":         bson.M{"$lt": blk.End},
		"end":           bson.M{"$gt": blk.Start},
	})
	if err != nil {
		return false, fmt.Errorf("block conflict query failed: %w", err)
	}
	return count > 0, nil
}

func (r *mongoTimeOffRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.timeoffColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
