package userRepo

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

// ErrNotFound is returned when a user cannot be resolved.
var ErrNotFound = errors.New("user not found")

// UserRepository is the identity-store projection the booking core reads.
// Account management itself lives in an adjacent workflow.
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// SetStripeCustomerID persists the processor customer mapping for reuse.
	SetStripeCustomerID(id, stripeCustomerID string) error
}

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("users")
	return &MongoUserRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoUserRepo) findOne(filter bson.M) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(id string) (*models.User, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	return r.findOne(bson.M{"id": id})
}

// GetByEmail retrieves a user by email.
func (r *MongoUserRepo) GetByEmail(email string) (*models.User, error) {
	if email == "" {
		return nil, ErrNotFound
	}
	return r.findOne(bson.M{"email": email})
}

// SetStripeCustomerID stores the processor customer reference on the user.
func (r *MongoUserRepo) SetStripeCustomerID(id, stripeCustomerID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"stripeCustomerId": stripeCustomerID}},
	)
	if err != nil {
		return fmt.Errorf("failed to update stripe customer id for user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
