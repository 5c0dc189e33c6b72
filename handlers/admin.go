package handlers

import (
	"net/http"

	"servicehub/middleware"
	"servicehub/services/booking"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Engine *booking.Engine
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(engine *booking.Engine) *AdminHandler {
	return &AdminHandler{Engine: engine}
}

// ClearBookingsHandler deletes every booking. The caller must pass
// confirm=true.
func (ah *AdminHandler) ClearBookingsHandler(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if c.Query("confirm") != "true" {
		utils.JSONError(c, http.StatusBadRequest, "Confirmation required", "repeat the request with confirm=true")
		return
	}

	if err := ah.Engine.ClearAllBookings(c.Request.Context(), booking.NewSession(actor)); err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLogger(c).Warn("bookings cleared by admin", zap.String("adminId", actor.ID))
	c.JSON(http.StatusOK, gin.H{"message": "All bookings cleared"})
}
