package booking

import (
	"context"
	"errors"
	"strings"

	bookingRepo "vendora/database/repository/booking"
	"vendora/models"
	"vendora/services/payment"

	"go.uber.org/zap"
)

// AcceptBookingRequest re-validates the time window, charges the stored
// payment method, and maps the processor's intent status onto the booking.
// A charge attempt that fails at the gateway still forces the booking into
// payment_failed; it is never left in pending_vendor after an attempt.
func (svc *DefaultBookingRequestService) AcceptBookingRequest(ctx context.Context, bookingID, vendorID string) (*AcceptResult, error) {
	booking, err := svc.Repo.GetByIDLean(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, notFoundError("BOOKING_REQUEST_NOT_FOUND", "booking request not found")
		}
		return nil, internalError(err)
	}

	if booking.VendorID != vendorID {
		return nil, forbiddenError()
	}
	if booking.Status != models.BookingStatusPendingVendor {
		return nil, invalidStateError(booking.Status)
	}

	// Second conflict check, excluding this booking: closes the race window
	// between creation-time validation and the vendor's decision.
	hasConflict, err := svc.Repo.HasConflict(booking.ServiceID, booking.BookingStart, booking.BookingEnd, booking.ID)
	if err != nil {
		return nil, internalError(err)
	}
	if hasConflict {
		return nil, conflictError()
	}

	intent, err := svc.Gateway.CreatePaymentIntent(ctx, payment.CreatePaymentIntentParams{
		Amount:          booking.PricingSnapshot.Total,
		Currency:        booking.PricingSnapshot.Currency,
		CustomerID:      booking.StripeCustomerID,
		PaymentMethodID: booking.StripePaymentMethodID,
		Metadata: map[string]string{
			"bookingRequestId": booking.ID,
			"serviceId":        booking.ServiceID,
			"clientId":         booking.ClientID,
			"vendorId":         vendorID,
		},
		Confirm: true,
	})
	if err != nil {
		return nil, svc.failChargeAttempt(bookingID, err)
	}

	newStatus := statusForIntent(intent.Status)
	updated, err := svc.Repo.UpdateByID(bookingID, models.BookingRequestPatch{
		Status:                &newStatus,
		StripePaymentIntentID: &intent.ID,
	})
	if err != nil {
		return nil, internalError(err)
	}

	svc.Logger.Info("booking request accepted",
		zap.String("bookingId", bookingID),
		zap.String("paymentIntentId", intent.ID),
		zap.String("paymentStatus", intent.Status),
		zap.String("bookingStatus", newStatus),
	)

	result := &AcceptResult{
		BookingRequest: updated,
		PaymentStatus:  intent.Status,
		RequiresAction: intent.Status == payment.IntentStatusRequiresAction,
	}
	if result.RequiresAction {
		result.ClientSecret = intent.ClientSecret
	}
	return result, nil
}

// statusForIntent maps a processor payment-intent status to a booking status.
func statusForIntent(intentStatus string) string {
	switch intentStatus {
	case payment.IntentStatusSucceeded:
		return models.BookingStatusPaid
	case payment.IntentStatusRequiresAction:
		return models.BookingStatusActionRequired
	case payment.IntentStatusRequiresPaymentMethod, payment.IntentStatusCanceled:
		return models.BookingStatusPaymentFailed
	default:
		return models.BookingStatusPaymentFailed
	}
}

// failChargeAttempt forces the booking into payment_failed and surfaces the
// gateway failure with a specific key. The booking record stays auditable
// even when the status write itself fails.
func (svc *DefaultBookingRequestService) failChargeAttempt(bookingID string, chargeErr error) *ServiceError {
	failed := models.BookingStatusPaymentFailed
	if _, err := svc.Repo.UpdateByID(bookingID, models.BookingRequestPatch{Status: &failed}); err != nil {
		svc.Logger.Error("failed to mark booking payment_failed after charge error",
			zap.String("bookingId", bookingID),
			zap.Error(err),
		)
	}

	key := "PAYMENT_FAILED"
	switch {
	case errors.Is(chargeErr, payment.ErrCardDeclined), errors.Is(chargeErr, payment.ErrAuthenticationRequired):
		key = "CARD_DECLINED"
	case errors.Is(chargeErr, payment.ErrProcessorAuth):
		key = "STRIPE_AUTH_ERROR"
	case errors.Is(chargeErr, payment.ErrProcessorAPI):
		key = "STRIPE_API_ERROR"
	}

	svc.Logger.Warn("charge attempt failed",
		zap.String("bookingId", bookingID),
		zap.String("errorKey", key),
		zap.Error(chargeErr),
	)
	return paymentFailureError(key, chargeErr)
}

// RejectBookingRequest marks a pending_vendor booking rejected, storing the
// optional reason. No processor interaction takes place.
func (svc *DefaultBookingRequestService) RejectBookingRequest(ctx context.Context, bookingID, vendorID, reason string) (*models.BookingRequest, error) {
	booking, err := svc.Repo.GetByIDLean(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, notFoundError("BOOKING_REQUEST_NOT_FOUND", "booking request not found")
		}
		return nil, internalError(err)
	}

	if booking.VendorID != vendorID {
		return nil, forbiddenError()
	}
	if booking.Status != models.BookingStatusPendingVendor {
		return nil, invalidStateError(booking.Status)
	}

	reason = strings.TrimSpace(reason)
	if len(reason) > maxRejectionReasonLength {
		return nil, validationError("INVALID_REJECTION_REASON", "rejection reason cannot exceed 500 characters", nil)
	}

	status := models.BookingStatusRejected
	updated, err := svc.Repo.UpdateByID(bookingID, models.BookingRequestPatch{
		Status:          &status,
		RejectionReason: &reason,
	})
	if err != nil {
		return nil, internalError(err)
	}

	svc.Logger.Info("booking request rejected",
		zap.String("bookingId", bookingID),
		zap.String("vendorId", vendorID),
	)
	return updated, nil
}
