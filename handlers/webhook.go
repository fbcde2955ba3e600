package handlers

import (
	"io"
	"net/http"

	"vendora/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// WebhookHandler receives Stripe event deliveries. Signature verification
// happens here, before anything reaches the reconciler.
type WebhookHandler struct {
	Reconciler    *booking.WebhookReconciler
	WebhookSecret string
	Logger        *zap.Logger
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(reconciler *booking.WebhookReconciler, webhookSecret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{Reconciler: reconciler, WebhookSecret: webhookSecret, Logger: logger}
}

// HandleStripeWebhook handles POST /api/webhooks/stripe. The raw body is
// required for signature verification, so this route must not go through
// any body-rewriting middleware.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.WebhookSecret)
	if err != nil {
		h.Logger.Warn("webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook signature verification failed"})
		return
	}

	if err := h.Reconciler.HandleEvent(c.Request.Context(), event); err != nil {
		// Storage faults only: a non-2xx tells the event source to retry.
		h.Logger.Error("webhook reconciliation failed",
			zap.String("eventId", event.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook handler error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
