package booking

import (
	"context"
	"errors"

	bookingRepo "vendora/database/repository/booking"
	"vendora/models"
)

// GetBookingRequestByID returns a booking request to its client, its vendor,
// or an admin. Anyone else is refused.
func (svc *DefaultBookingRequestService) GetBookingRequestByID(ctx context.Context, bookingID, requesterID, requesterRole string) (*models.BookingRequest, error) {
	booking, err := svc.Repo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, notFoundError("BOOKING_REQUEST_NOT_FOUND", "booking request not found")
		}
		return nil, internalError(err)
	}

	isClient := booking.ClientID == requesterID
	isVendor := booking.VendorID == requesterID
	isAdmin := requesterRole == models.RoleAdmin
	if !isClient && !isVendor && !isAdmin {
		return nil, forbiddenError()
	}

	return booking, nil
}

// GetClientBookingRequests lists a client's booking requests, newest first.
func (svc *DefaultBookingRequestService) GetClientBookingRequests(ctx context.Context, clientID, status string) ([]models.BookingRequest, error) {
	bookings, err := svc.Repo.ListByClientID(clientID, status)
	if err != nil {
		return nil, internalError(err)
	}
	return bookings, nil
}

// GetVendorBookingRequests lists a vendor's booking requests, newest first.
func (svc *DefaultBookingRequestService) GetVendorBookingRequests(ctx context.Context, vendorID, status string) ([]models.BookingRequest, error) {
	bookings, err := svc.Repo.ListByVendorID(vendorID, status)
	if err != nil {
		return nil, internalError(err)
	}
	return bookings, nil
}
