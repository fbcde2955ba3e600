package bookingRepo

import (
	"errors"
	"fmt"
	"time"

	"vendora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findOne runs a single-document lookup and maps mongo.ErrNoDocuments to
// ErrNotFound.
func (r *MongoBookingRequestRepo) findOne(filter bson.M) (*models.BookingRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.BookingRequest
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking request: %w", err)
	}
	return &booking, nil
}

// populate attaches the service, vendor and client projections.
func (r *MongoBookingRequestRepo) populate(booking *models.BookingRequest) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var service models.Service
	if err := r.serviceColl.FindOne(ctx, bson.M{"id": booking.ServiceID}).Decode(&service); err == nil {
		booking.Service = &service
	}
	var vendor models.User
	if err := r.userColl.FindOne(ctx, bson.M{"id": booking.VendorID}).Decode(&vendor); err == nil {
		booking.Vendor = &vendor
	}
	var client models.User
	if err := r.userColl.FindOne(ctx, bson.M{"id": booking.ClientID}).Decode(&client); err == nil {
		booking.Client = &client
	}
}

// GetByID retrieves a booking request with related documents populated.
func (r *MongoBookingRequestRepo) GetByID(id string) (*models.BookingRequest, error) {
	if !isValidID(id) {
		return nil, ErrNotFound
	}
	booking, err := r.findOne(bson.M{"id": id})
	if err != nil {
		return nil, err
	}
	r.populate(booking)
	return booking, nil
}

// GetByIDLean retrieves a booking request without related documents.
func (r *MongoBookingRequestRepo) GetByIDLean(id string) (*models.BookingRequest, error) {
	if !isValidID(id) {
		return nil, ErrNotFound
	}
	return r.findOne(bson.M{"id": id})
}

// GetBySetupIntentID retrieves the booking holding the given setup intent.
func (r *MongoBookingRequestRepo) GetBySetupIntentID(setupIntentID string) (*models.BookingRequest, error) {
	if setupIntentID == "" {
		return nil, ErrNotFound
	}
	return r.findOne(bson.M{"stripeSetupIntentId": setupIntentID})
}

// GetByPaymentIntentID retrieves the booking holding the given payment intent.
func (r *MongoBookingRequestRepo) GetByPaymentIntentID(paymentIntentID string) (*models.BookingRequest, error) {
	if paymentIntentID == "" {
		return nil, ErrNotFound
	}
	return r.findOne(bson.M{"stripePaymentIntentId": paymentIntentID})
}

// list runs a multi-document query sorted by newest first.
func (r *MongoBookingRequestRepo) list(filter bson.M, limit, skip int64) ([]models.BookingRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if skip > 0 {
		opts.SetSkip(skip)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking requests: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.BookingRequest
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode booking requests: %w", err)
	}
	return bookings, nil
}

// ListByClientID returns a client's booking requests, optionally filtered by status.
func (r *MongoBookingRequestRepo) ListByClientID(clientID, status string) ([]models.BookingRequest, error) {
	filter := bson.M{"clientId": clientID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(filter, 0, 0)
}

// ListByVendorID returns a vendor's booking requests, optionally filtered by status.
func (r *MongoBookingRequestRepo) ListByVendorID(vendorID, status string) ([]models.BookingRequest, error) {
	filter := bson.M{"vendorId": vendorID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(filter, 0, 0)
}

func listFilterToBSON(filter models.BookingRequestListFilter) bson.M {
	q := bson.M{}
	if filter.ServiceID != "" {
		q["serviceId"] = filter.ServiceID
	}
	if filter.VendorID != "" {
		q["vendorId"] = filter.VendorID
	}
	if filter.ClientID != "" {
		q["clientId"] = filter.ClientID
	}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	return q
}

// ListAll returns a page of booking requests matching the filter.
func (r *MongoBookingRequestRepo) ListAll(filter models.BookingRequestListFilter, limit, skip int64) ([]models.BookingRequest, error) {
	return r.list(listFilterToBSON(filter), limit, skip)
}

// Count returns the number of booking requests matching the filter.
func (r *MongoBookingRequestRepo) Count(filter models.BookingRequestListFilter) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, listFilterToBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count booking requests: %w", err)
	}
	return n, nil
}

// HasConflict reports whether any booking in a reserving status for the same
// service overlaps [start, end) under half-open interval semantics:
// existing.start < end AND existing.end > start.
func (r *MongoBookingRequestRepo) HasConflict(serviceID string, start, end time.Time, excludeID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"serviceId":    serviceID,
		"status":       bson.M{"$in": models.ReservingStatuses},
		"bookingStart": bson.M{"$lt": end},
		"bookingEnd":   bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check booking conflict: %w", err)
	}
	return n > 0, nil
}

// GetPaymentPendingOverlap returns an existing payment_pending booking by the
// same client for the same service overlapping [start, end), if any.
func (r *MongoBookingRequestRepo) GetPaymentPendingOverlap(clientID, serviceID string, start, end time.Time) (*models.BookingRequest, error) {
	return r.findOne(bson.M{
		"clientId":     clientID,
		"serviceId":    serviceID,
		"status":       models.BookingStatusPaymentPending,
		"bookingStart": bson.M{"$lt": end},
		"bookingEnd":   bson.M{"$gt": start},
	})
}
