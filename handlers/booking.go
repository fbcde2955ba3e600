package handlers

import (
	"errors"
	"net/http"

	"vendora/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking-request lifecycle over HTTP.
type BookingHandler struct {
	Svc    booking.BookingRequestService
	Logger *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingRequestService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// respondServiceError translates a booking service error into an HTTP
// response. Anything else becomes an opaque 500.
func (h *BookingHandler) respondServiceError(c *gin.Context, err error) {
	var svcErr *booking.ServiceError
	if errors.As(err, &svcErr) {
		body := gin.H{"success": false, "errorKey": svcErr.Key, "message": svcErr.Message}
		if len(svcErr.Data) > 0 {
			body["data"] = svcErr.Data
		}
		c.JSON(svcErr.StatusCode, body)
		return
	}
	h.Logger.Error("unexpected booking handler error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "errorKey": "INTERNAL_SERVER_ERROR"})
}

// CreateBookingRequest handles POST /api/booking-requests.
func (h *BookingHandler) CreateBookingRequest(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errorKey": "INVALID_INPUT", "details": err.Error()})
		return
	}

	clientID := c.GetString("userID")
	result, err := h.Svc.CreateBookingRequest(c.Request.Context(), clientID, input)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Existing {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"success": true,
		"data": gin.H{
			"bookingRequestId": result.BookingRequestID,
			"stripe":           gin.H{"clientSecret": result.ClientSecret},
			"pricing":          result.Pricing,
		},
	})
}

// CompletePaymentMethod handles POST /api/booking-requests/:bookingID/payment-method.
func (h *BookingHandler) CompletePaymentMethod(c *gin.Context) {
	var input struct {
		SetupIntentID string `json:"setupIntentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errorKey": "INVALID_INPUT", "details": err.Error()})
		return
	}

	bookingID := c.Param("bookingID")
	clientID := c.GetString("userID")
	updated, err := h.Svc.CompletePaymentMethod(c.Request.Context(), bookingID, clientID, input.SetupIntentID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"bookingRequest": updated}})
}

// AcceptBookingRequest handles POST /api/booking-requests/:bookingID/accept.
func (h *BookingHandler) AcceptBookingRequest(c *gin.Context) {
	bookingID := c.Param("bookingID")
	vendorID := c.GetString("userID")

	result, err := h.Svc.AcceptBookingRequest(c.Request.Context(), bookingID, vendorID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	body := gin.H{
		"success":        true,
		"bookingRequest": result.BookingRequest,
		"paymentStatus":  result.PaymentStatus,
		"requiresAction": result.RequiresAction,
	}
	if result.RequiresAction {
		body["clientSecret"] = result.ClientSecret
	}
	c.JSON(http.StatusOK, body)
}

// RejectBookingRequest handles POST /api/booking-requests/:bookingID/reject.
func (h *BookingHandler) RejectBookingRequest(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	// Body is optional for rejections.
	_ = c.ShouldBindJSON(&input)

	bookingID := c.Param("bookingID")
	vendorID := c.GetString("userID")
	updated, err := h.Svc.RejectBookingRequest(c.Request.Context(), bookingID, vendorID, input.Reason)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"bookingRequest": updated}})
}

// GetBookingRequest handles GET /api/booking-requests/:bookingID.
func (h *BookingHandler) GetBookingRequest(c *gin.Context) {
	bookingID := c.Param("bookingID")
	requesterID := c.GetString("userID")
	requesterRole := c.GetString("userRole")

	bookingRequest, err := h.Svc.GetBookingRequestByID(c.Request.Context(), bookingID, requesterID, requesterRole)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"bookingRequest": bookingRequest}})
}

// ListClientBookingRequests handles GET /api/booking-requests/client.
func (h *BookingHandler) ListClientBookingRequests(c *gin.Context) {
	clientID := c.GetString("userID")
	status := c.Query("status")

	bookings, err := h.Svc.GetClientBookingRequests(c.Request.Context(), clientID, status)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"bookingRequests": bookings}})
}

// ListVendorBookingRequests handles GET /api/booking-requests/vendor.
func (h *BookingHandler) ListVendorBookingRequests(c *gin.Context) {
	vendorID := c.GetString("userID")
	status := c.Query("status")

	bookings, err := h.Svc.GetVendorBookingRequests(c.Request.Context(), vendorID, status)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"bookingRequests": bookings}})
}
