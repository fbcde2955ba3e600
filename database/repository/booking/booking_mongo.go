package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"vendora/config"
	"vendora/database"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRequestRepo implements BookingRequestRepository using MongoDB.
type MongoBookingRequestRepo struct {
	coll        *mongo.Collection
	userColl    *mongo.Collection
	serviceColl *mongo.Collection
}

// NewMongoBookingRequestRepo creates a new BookingRequestRepository backed by MongoDB.
func NewMongoBookingRequestRepo() BookingRequestRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoBookingRequestRepo{
		coll:        db.Collection("booking_requests"),
		userColl:    db.Collection("users"),
		serviceColl: db.Collection("services"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking request indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries,
// including the compound index backing the conflict check.
func (r *MongoBookingRequestRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "serviceId", Value: 1}}},
		{Keys: bson.D{{Key: "vendorId", Value: 1}}},
		{Keys: bson.D{{Key: "clientId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "bookingStart", Value: 1}, {Key: "bookingEnd", Value: 1}}},
		{Keys: bson.D{{Key: "stripeSetupIntentId", Value: 1}}},
		{Keys: bson.D{{Key: "stripePaymentIntentId", Value: 1}}},
		{Keys: bson.D{
			{Key: "serviceId", Value: 1},
			{Key: "bookingStart", Value: 1},
			{Key: "bookingEnd", Value: 1},
			{Key: "status", Value: 1},
		}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// isValidID reports whether id can possibly resolve to a booking. Invalid
// ids are treated as not found rather than surfacing a parse error.
func isValidID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
