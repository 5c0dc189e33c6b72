package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// User endpoints
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc

	// Provider endpoints
	GetProvidersHandler     gin.HandlerFunc
	NewBookingsHandler      gin.HandlerFunc
	MarkBookingsSeenHandler gin.HandlerFunc

	// Booking endpoints
	GetBookings   gin.HandlerFunc
	CreateBooking gin.HandlerFunc
	UpdateStatus  gin.HandlerFunc
	DeleteBooking gin.HandlerFunc

	// Admin endpoints
	ClearBookingsHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler from its service.
func NewHandlerBundle(uh *UserHandler, ph *ProviderHandler, bh *BookingHandler, ah *AdminHandler) *HandlerBundle {
	return &HandlerBundle{
		RegisterUserHandler:     uh.RegisterUserHandler,
		AuthenticateUserHandler: uh.AuthenticateUserHandler,

		GetProvidersHandler:     ph.GetProvidersHandler,
		NewBookingsHandler:      ph.NewBookingsHandler,
		MarkBookingsSeenHandler: ph.MarkBookingsSeenHandler,

		GetBookings:   bh.GetBookings,
		CreateBooking: bh.CreateBooking,
		UpdateStatus:  bh.UpdateStatus,
		DeleteBooking: bh.DeleteBooking,

		ClearBookingsHandler: ah.ClearBookingsHandler,
	}
}
