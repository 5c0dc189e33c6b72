package routes

import (
	"net/http"
	"time"

	"servicehub/handlers"
	"servicehub/middleware"
	"servicehub/models"
	"servicehub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers the public account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)
	}
}

// RegisterProviderRoutes registers provider browsing and the new-bookings badge.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("", hb.GetProvidersHandler)

		me := api.Group("/me")
		me.Use(middleware.RequireRole(models.UserTypeProvider))
		me.GET("/new-bookings", hb.NewBookingsHandler)
		me.POST("/new-bookings/seen", hb.MarkBookingsSeenHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	bookingGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.UserTypeClient, models.UserTypeProvider))
	{
		bookingGroup.GET("", hb.GetBookings)
		bookingGroup.POST("", middleware.RequireRole(models.UserTypeClient), hb.CreateBooking)
		bookingGroup.PATCH("/:id/status", hb.UpdateStatus)
		bookingGroup.DELETE("/:id", hb.DeleteBooking)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.UserTypeAdmin))
	{
		adminGroup.DELETE("/bookings", hb.ClearBookingsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": http.StatusText(code), "checks": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
