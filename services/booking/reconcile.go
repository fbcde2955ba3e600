package booking

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	bookingRepo "vendora/database/repository/booking"
	"vendora/models"

	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// eventDedupTTL bounds how long a processed event id is remembered.
const eventDedupTTL = 24 * time.Hour

// WebhookReconciler advances booking state from asynchronous processor
// events, independent of the synchronous request path. Every transition is
// idempotent: replayed or out-of-order deliveries are no-ops.
type WebhookReconciler struct {
	Repo   bookingRepo.BookingRequestRepository
	Logger *zap.Logger
	// Cache, when set, short-circuits replayed event ids. Transitions are
	// idempotent on their own; this only saves the store round trips.
	Cache *redis.Client
}

// HandleEvent processes a verified processor event. It returns an error only
// for unexpected storage faults, so the event source retries delivery;
// unmatched bookings and unknown event types are acknowledged. An event id is
// recorded as seen only after its handler succeeds, so a redelivery after a
// storage fault is processed again rather than discarded.
func (r *WebhookReconciler) HandleEvent(ctx context.Context, event stripe.Event) error {
	if r.alreadySeen(ctx, event.ID) {
		r.Logger.Debug("skipping replayed webhook event", zap.String("eventId", event.ID))
		return nil
	}

	if err := r.processEvent(event); err != nil {
		return err
	}
	r.markSeen(ctx, event.ID)
	return nil
}

func (r *WebhookReconciler) processEvent(event stripe.Event) error {
	switch event.Type {
	case "setup_intent.succeeded":
		var si stripe.SetupIntent
		if err := json.Unmarshal(event.Data.Raw, &si); err != nil {
			r.Logger.Error("failed to parse setup intent from event", zap.String("eventId", event.ID), zap.Error(err))
			return nil
		}
		return r.handleSetupIntentSucceeded(&si)

	case "payment_intent.succeeded":
		return r.handlePaymentIntentEvent(event, models.BookingStatusPaid)

	case "payment_intent.payment_failed":
		return r.handlePaymentIntentEvent(event, models.BookingStatusPaymentFailed)

	case "payment_intent.requires_action":
		return r.handlePaymentIntentEvent(event, models.BookingStatusActionRequired)

	default:
		r.Logger.Info("ignoring unhandled webhook event type", zap.String("type", string(event.Type)))
		return nil
	}
}

// handleSetupIntentSucceeded mirrors CompletePaymentMethod for clients whose
// synchronous completion call never arrived. It only advances bookings still
// in payment_pending without a stored payment method.
func (r *WebhookReconciler) handleSetupIntentSucceeded(si *stripe.SetupIntent) error {
	booking, err := r.Repo.GetBySetupIntentID(si.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			r.Logger.Info("no booking for setup intent", zap.String("setupIntentId", si.ID))
			return nil
		}
		return err
	}

	if si.PaymentMethod == nil || si.PaymentMethod.ID == "" {
		r.Logger.Info("setup intent succeeded without payment method", zap.String("setupIntentId", si.ID))
		return nil
	}

	if booking.Status != models.BookingStatusPaymentPending || booking.StripePaymentMethodID != "" {
		return nil
	}

	status := models.BookingStatusPendingVendor
	if _, err := r.Repo.UpdateByID(booking.ID, models.BookingRequestPatch{
		Status:                &status,
		StripePaymentMethodID: &si.PaymentMethod.ID,
	}); err != nil {
		return err
	}

	r.Logger.Info("booking advanced to pending_vendor via webhook",
		zap.String("bookingId", booking.ID),
		zap.String("setupIntentId", si.ID),
	)
	return nil
}

// handlePaymentIntentEvent moves the matched booking to targetStatus unless
// it is already there.
func (r *WebhookReconciler) handlePaymentIntentEvent(event stripe.Event, targetStatus string) error {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		r.Logger.Error("failed to parse payment intent from event", zap.String("eventId", event.ID), zap.Error(err))
		return nil
	}

	booking, err := r.Repo.GetByPaymentIntentID(pi.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			r.Logger.Info("no booking for payment intent", zap.String("paymentIntentId", pi.ID))
			return nil
		}
		return err
	}

	if booking.Status == targetStatus {
		return nil
	}
	// paid is terminal; a late requires_action or payment_failed delivery
	// must not regress it.
	if booking.Status == models.BookingStatusPaid {
		return nil
	}

	if _, err := r.Repo.UpdateByID(booking.ID, models.BookingRequestPatch{Status: &targetStatus}); err != nil {
		return err
	}

	r.Logger.Info("booking status reconciled from webhook",
		zap.String("bookingId", booking.ID),
		zap.String("paymentIntentId", pi.ID),
		zap.String("status", targetStatus),
	)
	return nil
}

func eventKey(eventID string) string {
	return "stripe:event:" + eventID
}

// alreadySeen reports whether the event id was already handled successfully.
// Cache faults never block reconciliation.
func (r *WebhookReconciler) alreadySeen(ctx context.Context, eventID string) bool {
	if r.Cache == nil || eventID == "" {
		return false
	}
	n, err := r.Cache.Exists(ctx, eventKey(eventID)).Result()
	if err != nil {
		r.Logger.Warn("webhook dedup cache unavailable", zap.Error(err))
		return false
	}
	return n > 0
}

// markSeen records the event id after successful handling.
func (r *WebhookReconciler) markSeen(ctx context.Context, eventID string) {
	if r.Cache == nil || eventID == "" {
		return
	}
	if err := r.Cache.Set(ctx, eventKey(eventID), 1, eventDedupTTL).Err(); err != nil {
		r.Logger.Warn("webhook dedup cache unavailable", zap.Error(err))
	}
}
