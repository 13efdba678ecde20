package serviceRepo

import (
	"context"

	"fotura/database"
	"fotura/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceRepository is the data access surface for the bookable catalogue.
type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	GetByIDs(ctx context.Context, ids []string) ([]models.Service, error)
	List(ctx context.Context, visibleOnly bool) ([]models.Service, error)
}

type mongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo constructs a new MongoDB ServiceRepository.
func NewMongoServiceRepo() ServiceRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoServiceRepo{
		coll: db.Collection("services"),
	}
}
