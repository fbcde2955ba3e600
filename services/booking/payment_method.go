package booking

import (
	"context"
	"errors"

	bookingRepo "vendora/database/repository/booking"
	"vendora/models"
	"vendora/services/payment"

	"go.uber.org/zap"
)

// CompletePaymentMethod verifies the setup intent succeeded processor-side
// and advances the booking from payment_pending to pending_vendor, storing
// the saved payment method. On any precondition failure the booking is left
// untouched.
func (svc *DefaultBookingRequestService) CompletePaymentMethod(ctx context.Context, bookingID, clientID, setupIntentID string) (*models.BookingRequest, error) {
	booking, err := svc.Repo.GetByIDLean(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, notFoundError("BOOKING_REQUEST_NOT_FOUND", "booking request not found")
		}
		return nil, internalError(err)
	}

	if booking.ClientID != clientID {
		return nil, forbiddenError()
	}

	// The webhook may have advanced the booking already; treat a repeat
	// confirmation as a no-op.
	if booking.Status == models.BookingStatusPendingVendor && booking.StripePaymentMethodID != "" {
		return booking, nil
	}
	if booking.Status != models.BookingStatusPaymentPending {
		return nil, invalidStateError(booking.Status)
	}

	setupIntent, err := svc.Gateway.RetrieveSetupIntent(ctx, setupIntentID)
	if err != nil {
		return nil, internalError(err)
	}

	if setupIntent.ID != booking.StripeSetupIntentID {
		return nil, paymentMethodError("INVALID_SETUP_INTENT", "setup intent does not match this booking request", nil)
	}
	if setupIntent.Status != payment.IntentStatusSucceeded {
		return nil, paymentMethodError("SETUP_INTENT_NOT_COMPLETED", "setup intent has not succeeded", map[string]any{"status": setupIntent.Status})
	}
	if setupIntent.PaymentMethodID == "" {
		return nil, paymentMethodError("PAYMENT_METHOD_NOT_FOUND", "setup intent carries no payment method", nil)
	}

	status := models.BookingStatusPendingVendor
	updated, err := svc.Repo.UpdateByID(bookingID, models.BookingRequestPatch{
		Status:                &status,
		StripePaymentMethodID: &setupIntent.PaymentMethodID,
	})
	if err != nil {
		return nil, internalError(err)
	}

	svc.Logger.Info("payment method attached",
		zap.String("bookingId", bookingID),
		zap.String("paymentMethodId", setupIntent.PaymentMethodID),
	)
	return updated, nil
}
