package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingRepo "vendora/database/repository/booking"
	serviceRepo "vendora/database/repository/service"
	userRepo "vendora/database/repository/user"
	"vendora/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBookingRequest validates the requested window, prices the booking,
// prepares the processor customer and setup intent, and persists a new
// booking request in payment_pending.
func (svc *DefaultBookingRequestService) CreateBookingRequest(ctx context.Context, clientID string, in CreateBookingInput) (*CreateBookingResult, error) {
	service, err := svc.ServiceRepo.GetByID(in.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, notFoundError("SERVICE_NOT_FOUND", "service not found")
		}
		return nil, internalError(err)
	}
	if !service.IsBookable() {
		return nil, validationError("SERVICE_NOT_AVAILABLE", "service is not available for booking", nil)
	}

	start, end, windowErrs := parseBookingWindow(in.BookingStart, in.BookingEnd, time.Now().UTC())
	if len(windowErrs) > 0 {
		return nil, validationError("INVALID_BOOKING_TIME", "invalid booking time window", map[string]any{"errors": windowErrs})
	}

	notes := strings.TrimSpace(in.Notes)
	if len(notes) > maxNotesLength {
		return nil, validationError("INVALID_NOTES", "notes cannot exceed 1000 characters", nil)
	}

	// A double-submitted identical request returns the existing
	// payment_pending booking instead of minting a second setup intent. The
	// window and pricing option must match exactly: an overlapping but
	// different request is a conflict, not a resubmit.
	if existing, err := svc.Repo.GetPaymentPendingOverlap(clientID, in.ServiceID, start, end); err == nil {
		if existing.BookingStart.Equal(start) && existing.BookingEnd.Equal(end) && existing.PricingOptionID == in.PricingOptionID {
			si, siErr := svc.Gateway.RetrieveSetupIntent(ctx, existing.StripeSetupIntentID)
			if siErr != nil {
				return nil, internalError(siErr)
			}
			return &CreateBookingResult{
				BookingRequestID: existing.ID,
				ClientSecret:     si.ClientSecret,
				Pricing:          existing.PricingSnapshot,
				Existing:         true,
			}, nil
		}
	} else if !errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, internalError(err)
	}

	hasConflict, err := svc.Repo.HasConflict(in.ServiceID, start, end, "")
	if err != nil {
		return nil, internalError(err)
	}
	if hasConflict {
		return nil, conflictError()
	}

	pricing, perr := svc.computePricing(service, in.PricingOptionID, start, end)
	if perr != nil {
		return nil, perr
	}

	client, err := svc.UserRepo.GetByID(clientID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, notFoundError("CLIENT_NOT_FOUND", "client not found")
		}
		return nil, internalError(err)
	}

	customerID, err := svc.ensureStripeCustomer(ctx, client, in.BillingDetails)
	if err != nil {
		return nil, internalError(err)
	}

	setupIntent, err := svc.Gateway.CreateSetupIntent(ctx, customerID, map[string]string{
		"serviceId": service.ID,
		"clientId":  clientID,
		"vendorId":  service.VendorID,
	})
	if err != nil {
		return nil, internalError(err)
	}

	booking := &models.BookingRequest{
		ID:                  uuid.New().String(),
		ServiceID:           service.ID,
		VendorID:            service.VendorID,
		ClientID:            clientID,
		PricingOptionID:     in.PricingOptionID,
		BookingStart:        start,
		BookingEnd:          end,
		Notes:               notes,
		PricingSnapshot:     pricing,
		Status:              models.BookingStatusPaymentPending,
		StripeCustomerID:    customerID,
		StripeSetupIntentID: setupIntent.ID,
	}
	if err := svc.Repo.Create(booking); err != nil {
		return nil, internalError(err)
	}

	svc.Logger.Info("created booking request",
		zap.String("bookingId", booking.ID),
		zap.String("serviceId", service.ID),
		zap.String("clientId", clientID),
		zap.Int64("total", pricing.Total),
	)

	return &CreateBookingResult{
		BookingRequestID: booking.ID,
		ClientSecret:     setupIntent.ClientSecret,
		Pricing:          pricing,
	}, nil
}

// computePricing builds the snapshot from the listing's price model. The
// snapshot is captured exactly once; nothing recomputes it later.
func (svc *DefaultBookingRequestService) computePricing(service *models.Service, pricingOptionID string, start, end time.Time) (models.PricingSnapshot, *ServiceError) {
	switch service.ListingType {
	case models.ListingTypeHourly:
		if service.PricePerHour <= 0 {
			return models.PricingSnapshot{}, validationError("INVALID_SERVICE_PRICING", "service has no hourly rate configured", nil)
		}
		return ComputeHourlyPrice(service.PricePerHour, start, end, svc.Currency), nil

	case models.ListingTypeFixed:
		if len(service.PricingOptions) == 0 {
			return models.PricingSnapshot{}, validationError("INVALID_SERVICE_PRICING", "service has no pricing options configured", nil)
		}
		option := service.PricingOptions[0]
		if pricingOptionID != "" {
			found := false
			for _, opt := range service.PricingOptions {
				if opt.ID == pricingOptionID {
					option = opt
					found = true
					break
				}
			}
			if !found {
				return models.PricingSnapshot{}, validationError("INVALID_PRICING_OPTION", "pricing option not found on service", nil)
			}
		}
		return ComputeFixedPrice(option.PricePerSession, svc.Currency), nil

	default:
		return models.PricingSnapshot{}, validationError("INVALID_SERVICE_TYPE", "unsupported listing type", nil)
	}
}

// ensureStripeCustomer resolves the client's processor customer, creating
// one and persisting the mapping when missing. A dangling stored id (the
// customer was deleted processor-side) falls back to create-or-retrieve.
func (svc *DefaultBookingRequestService) ensureStripeCustomer(ctx context.Context, client *models.User, billing *Billing) (string, error) {
	if client.StripeCustomerID != "" {
		if _, err := svc.Gateway.RetrieveCustomer(ctx, client.StripeCustomerID); err == nil {
			return client.StripeCustomerID, nil
		}
		svc.Logger.Warn("stored stripe customer no longer resolves, recreating",
			zap.String("userId", client.ID),
			zap.String("stripeCustomerId", client.StripeCustomerID),
		)
	}

	email := client.Email
	name := client.FullName()
	if billing != nil {
		if email == "" && billing.Email != "" {
			email = billing.Email
		}
		if name == "" && billing.Name != "" {
			name = billing.Name
		}
	}

	customer, err := svc.Gateway.CreateOrRetrieveCustomer(ctx, email, name, map[string]string{
		"userId":   client.ID,
		"userRole": models.RoleClient,
	})
	if err != nil {
		return "", err
	}
	if err := svc.UserRepo.SetStripeCustomerID(client.ID, customer.ID); err != nil {
		return "", err
	}
	return customer.ID, nil
}
