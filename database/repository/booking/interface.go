package bookingRepo

import (
	"errors"
	"time"

	"vendora/models"
)

// ErrNotFound is returned when a booking request cannot be resolved.
// Malformed identifiers are reported the same way instead of surfacing a
// storage-layer error.
var ErrNotFound = errors.New("booking request not found")

// BookingRequestRepository defines data access for booking requests.
type BookingRequestRepository interface {
	Create(booking *models.BookingRequest) error

	// GetByID returns the booking with its service, vendor and client
	// projections populated. GetByIDLean skips the projections.
	GetByID(id string) (*models.BookingRequest, error)
	GetByIDLean(id string) (*models.BookingRequest, error)

	GetBySetupIntentID(setupIntentID string) (*models.BookingRequest, error)
	GetByPaymentIntentID(paymentIntentID string) (*models.BookingRequest, error)

	ListByClientID(clientID, status string) ([]models.BookingRequest, error)
	ListByVendorID(vendorID, status string) ([]models.BookingRequest, error)
	ListAll(filter models.BookingRequestListFilter, limit, skip int64) ([]models.BookingRequest, error)
	Count(filter models.BookingRequestListFilter) (int64, error)

	// UpdateByID applies the patch atomically and returns the updated record.
	UpdateByID(id string, patch models.BookingRequestPatch) (*models.BookingRequest, error)

	// HasConflict reports whether any booking in a reserving status for the
	// same service overlaps [start, end). excludeID may be empty.
	HasConflict(serviceID string, start, end time.Time, excludeID string) (bool, error)

	// GetPaymentPendingOverlap returns an existing payment_pending booking by
	// the same client for the same service overlapping [start, end), if any.
	// Used to make double-submitted creates idempotent.
	GetPaymentPendingOverlap(clientID, serviceID string, start, end time.Time) (*models.BookingRequest, error)
}
