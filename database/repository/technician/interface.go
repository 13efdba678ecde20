package technicianRepo

import (
	"context"

	"fotura/database"
	"fotura/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TechnicianRepository is the data access surface for field technicians.
type TechnicianRepository interface {
	Create(ctx context.Context, tech *models.Technician) error
	GetByID(ctx context.Context, id string) (*models.Technician, error)
	List(ctx context.Context) ([]models.Technician, error)
	ListActive(ctx context.Context) ([]models.Technician, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type mongoTechnicianRepo struct {
	coll *mongo.Collection
}

// NewMongoTechnicianRepo constructs a new MongoDB TechnicianRepository.
func NewMongoTechnicianRepo() TechnicianRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoTechnicianRepo{
		coll: db.Collection("technicians"),
	}
}
