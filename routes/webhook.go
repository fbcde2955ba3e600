package routes

import (
	"vendora/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterWebhookRoutes registers processor event delivery endpoints. These
// are authenticated by signature, not by bearer token.
func RegisterWebhookRoutes(r *gin.Engine, h *handlers.WebhookHandler) {
	webhooks := r.Group("/api/webhooks")
	{
		webhooks.POST("/stripe", h.HandleStripeWebhook)
	}
}
