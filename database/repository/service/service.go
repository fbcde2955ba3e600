package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vendora/config"
	"vendora/database"
	"vendora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a service listing cannot be resolved.
var ErrNotFound = errors.New("service not found")

// ServiceRepository is the catalog-store projection the booking core reads.
type ServiceRepository interface {
	GetByID(id string) (*models.Service, error)
}

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a new instance of ServiceRepository using MongoDB.
func NewMongoServiceRepo() ServiceRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("services")
	return &MongoServiceRepo{coll: coll}
}

// GetByID retrieves a service listing by its unique ID.
func (r *MongoServiceRepo) GetByID(id string) (*models.Service, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var service models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&service); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &service, nil
}
