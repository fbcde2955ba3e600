package routes

import (
	"vendora/handlers"
	"vendora/middleware"
	"vendora/models"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking-request lifecycle.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	bookings := r.Group("/api/booking-requests")
	bookings.Use(middleware.JWTAuthMiddleware())
	{
		bookings.POST("", middleware.RequireRole(models.RoleClient), h.CreateBookingRequest)
		bookings.POST("/:bookingID/payment-method", middleware.RequireRole(models.RoleClient), h.CompletePaymentMethod)
		bookings.POST("/:bookingID/accept", middleware.RequireRole(models.RoleVendor), h.AcceptBookingRequest)
		bookings.POST("/:bookingID/reject", middleware.RequireRole(models.RoleVendor), h.RejectBookingRequest)
		bookings.GET("/client", middleware.RequireRole(models.RoleClient), h.ListClientBookingRequests)
		bookings.GET("/vendor", middleware.RequireRole(models.RoleVendor), h.ListVendorBookingRequests)
		bookings.GET("/:bookingID", h.GetBookingRequest)
	}
}
