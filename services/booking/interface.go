package booking

import (
	"context"

	bookingRepo "vendora/database/repository/booking"
	serviceRepo "vendora/database/repository/service"
	userRepo "vendora/database/repository/user"
	"vendora/models"
	"vendora/services/payment"

	"go.uber.org/zap"
)

// CreateBookingInput is the payload for a new booking request.
type CreateBookingInput struct {
	ServiceID       string   `json:"serviceId"`
	PricingOptionID string   `json:"pricingOptionId,omitempty"`
	BookingStart    string   `json:"bookingStart"`
	BookingEnd      string   `json:"bookingEnd"`
	Notes           string   `json:"notes,omitempty"`
	BillingDetails  *Billing `json:"billingDetails,omitempty"`
}

// Billing carries optional billing details collected at creation time.
type Billing struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// CreateBookingResult is returned on successful creation. The client secret
// lets the client's browser complete card entry against the setup intent.
type CreateBookingResult struct {
	BookingRequestID string                 `json:"bookingRequestId"`
	ClientSecret     string                 `json:"clientSecret"`
	Pricing          models.PricingSnapshot `json:"pricing"`
	Existing         bool                   `json:"existing,omitempty"`
}

// AcceptResult is returned when a vendor accepts a booking request.
type AcceptResult struct {
	BookingRequest *models.BookingRequest `json:"bookingRequest"`
	PaymentStatus  string                 `json:"paymentStatus"`
	RequiresAction bool                   `json:"requiresAction"`
	ClientSecret   string                 `json:"clientSecret,omitempty"`
}

// BookingRequestService drives the booking-request lifecycle.
type BookingRequestService interface {
	CreateBookingRequest(ctx context.Context, clientID string, in CreateBookingInput) (*CreateBookingResult, error)
	CompletePaymentMethod(ctx context.Context, bookingID, clientID, setupIntentID string) (*models.BookingRequest, error)
	AcceptBookingRequest(ctx context.Context, bookingID, vendorID string) (*AcceptResult, error)
	RejectBookingRequest(ctx context.Context, bookingID, vendorID, reason string) (*models.BookingRequest, error)
	GetBookingRequestByID(ctx context.Context, bookingID, requesterID, requesterRole string) (*models.BookingRequest, error)
	GetClientBookingRequests(ctx context.Context, clientID, status string) ([]models.BookingRequest, error)
	GetVendorBookingRequests(ctx context.Context, vendorID, status string) ([]models.BookingRequest, error)
}

// DefaultBookingRequestService is the production implementation.
type DefaultBookingRequestService struct {
	Repo        bookingRepo.BookingRequestRepository
	UserRepo    userRepo.UserRepository
	ServiceRepo serviceRepo.ServiceRepository
	Gateway     payment.Gateway
	Logger      *zap.Logger
	Currency    string
}
