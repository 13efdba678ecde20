package technicianRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fotura/models"
)

func (r *mongoTechnicianRepo) Create(ctx context.Context, tech *models.Technician) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if tech.ID == "" {
		tech.ID = uuid.New().String()
	}
	if tech.CreatedAt.IsZero() {
		tech.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, tech)
	return err
}

func (r *mongoTechnicianRepo) GetByID(ctx context.Context, id string) (*models.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tech models.Technician
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tech); err != nil {
		return nil, err
	}
	return &tech, nil
}

func (r *mongoTechnicianRepo) List(ctx context.Context) ([]models.Technician, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoTechnicianRepo) ListActive(ctx context.Context) ([]models.Technician, error) {
	return r.find(ctx, bson.M{"active": true})
}

func (r *mongoTechnicianRepo) find(ctx context.Context, filter bson.M) ([]models.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var techs []models.Technician
	if err := cursor.All(ctx, &techs); err != nil {
		return nil, err
	}
	return techs, nil
}

func (r *mongoTechnicianRepo) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"active": active}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
