package bookingRepo

import (
	"fmt"
	"time"

	"vendora/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new booking request document.
func (r *MongoBookingRequestRepo) Create(booking *models.BookingRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking request: %w", err)
	}
	return nil
}

// patchToUpdate builds the $set document for a typed patch. Only fields the
// patch carries are written; the whole document is applied in one update.
func patchToUpdate(patch models.BookingRequestPatch) bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.StripePaymentMethodID != nil {
		set["stripePaymentMethodId"] = *patch.StripePaymentMethodID
	}
	if patch.StripePaymentIntentID != nil {
		set["stripePaymentIntentId"] = *patch.StripePaymentIntentID
	}
	if patch.RejectionReason != nil {
		set["rejectionReason"] = *patch.RejectionReason
	}
	return bson.M{"$set": set}
}

// UpdateByID applies the patch atomically and returns the updated record
// with its related documents populated.
func (r *MongoBookingRequestRepo) UpdateByID(id string, patch models.BookingRequestPatch) (*models.BookingRequest, error) {
	if !isValidID(id) {
		return nil, ErrNotFound
	}

	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, patchToUpdate(patch))
	if err != nil {
		return nil, fmt.Errorf("failed to update booking request %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}
