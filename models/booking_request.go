package models

import "time"

// Booking request lifecycle statuses.
const (
	BookingStatusPaymentPending = "payment_pending"
	BookingStatusPendingVendor  = "pending_vendor"
	BookingStatusAccepted       = "accepted"
	BookingStatusRejected       = "rejected"
	BookingStatusPaid           = "paid"
	BookingStatusPaymentFailed  = "payment_failed"
	BookingStatusActionRequired = "action_required"
)

// ReservingStatuses are the statuses under which a booking holds its time
// window against overlapping bookings for the same service.
var ReservingStatuses = []string{
	BookingStatusPaymentPending,
	BookingStatusPendingVendor,
	BookingStatusAccepted,
	BookingStatusPaid,
}

// PricingSnapshot captures the price breakdown at creation time so the
// booking is shielded from later price changes on the listing. All amounts
// are integer minor currency units (cents).
type PricingSnapshot struct {
	Subtotal    int64  `bson:"subtotal" json:"subtotal"`
	PlatformFee int64  `bson:"platformFee" json:"platformFee"`
	Tax         int64  `bson:"tax" json:"tax"`
	Total       int64  `bson:"total" json:"total"`
	Currency    string `bson:"currency" json:"currency"`
}

// BookingRequest is the central record of the booking lifecycle. It is never
// deleted; it only transitions between statuses.
type BookingRequest struct {
	ID              string          `bson:"id" json:"id"`
	ServiceID       string          `bson:"serviceId" json:"serviceId"`
	VendorID        string          `bson:"vendorId" json:"vendorId"`
	ClientID        string          `bson:"clientId" json:"clientId"`
	PricingOptionID string          `bson:"pricingOptionId,omitempty" json:"pricingOptionId,omitempty"`
	BookingStart    time.Time       `bson:"bookingStart" json:"bookingStart"`
	BookingEnd      time.Time       `bson:"bookingEnd" json:"bookingEnd"`
	Notes           string          `bson:"notes,omitempty" json:"notes,omitempty"`
	PricingSnapshot PricingSnapshot `bson:"pricingSnapshot" json:"pricingSnapshot"`
	Status          string          `bson:"status" json:"status"`

	StripeCustomerID      string `bson:"stripeCustomerId,omitempty" json:"stripeCustomerId,omitempty"`
	StripeSetupIntentID   string `bson:"stripeSetupIntentId,omitempty" json:"stripeSetupIntentId,omitempty"`
	StripePaymentMethodID string `bson:"stripePaymentMethodId,omitempty" json:"stripePaymentMethodId,omitempty"`
	StripePaymentIntentID string `bson:"stripePaymentIntentId,omitempty" json:"stripePaymentIntentId,omitempty"`

	RejectionReason string `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// Related documents, populated on detail lookups only.
	Service *Service `bson:"-" json:"service,omitempty"`
	Vendor  *User    `bson:"-" json:"vendor,omitempty"`
	Client  *User    `bson:"-" json:"client,omitempty"`
}

// IsReserving reports whether the booking currently holds its time window.
func (b *BookingRequest) IsReserving() bool {
	for _, s := range ReservingStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// BookingRequestPatch enumerates exactly the mutable fields of a booking
// request. The repository applies the whole patch in a single update.
type BookingRequestPatch struct {
	Status                *string
	StripePaymentMethodID *string
	StripePaymentIntentID *string
	RejectionReason       *string
}

// BookingRequestListFilter narrows list queries.
type BookingRequestListFilter struct {
	ServiceID string
	VendorID  string
	ClientID  string
	Status    string
}
