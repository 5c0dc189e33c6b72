package handlers

import (
	"context"
	"net/http"
	"strings"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/booking"
	"servicehub/services/user"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP. Every request works
// on its own session, loaded from the store before it is mutated.
type BookingHandler struct {
	Engine *booking.Engine
	Users  user.UserService
}

func NewBookingHandler(engine *booking.Engine, users user.UserService) *BookingHandler {
	return &BookingHandler{Engine: engine, Users: users}
}

type createBookingInput struct {
	ProviderID  string `json:"providerId" binding:"required"`
	ServiceID   string `json:"serviceId"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Status      string `json:"status"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

type statusInput struct {
	Status        string `json:"status" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
}

// lookupCtx bounds a user-service call by the engine's gateway timeout.
func (h *BookingHandler) lookupCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.Engine.Timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.Engine.Timeout)
}

// loadSession starts a session for the actor and loads its partition.
func (h *BookingHandler) loadSession(c *gin.Context, actor models.Actor) (*booking.Session, bool) {
	sess := booking.NewSession(actor)
	if _, err := h.Engine.LoadBookings(c.Request.Context(), sess); err != nil {
		respondError(c, err)
		return nil, false
	}
	return sess, true
}

// GetBookings returns the actor's bookings split into pending, completed and
// cancelled.
func (h *BookingHandler) GetBookings(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	sess, ok := h.loadSession(c, actor)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Partition())
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	logger := middleware.GetLogger(c)
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	req := booking.CreateRequest{Date: input.Date, Time: input.Time}
	if input.Status != "" {
		status, err := booking.ParseStatus(input.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		req.InitialStatus = status
	}

	lctx, cancel := h.lookupCtx(c)
	provider, err := h.Users.GetUserByID(lctx, input.ProviderID)
	cancel()
	if err != nil {
		respondError(c, err)
		return
	}
	if provider.UserType != models.UserTypeProvider || provider.Suspended {
		respondError(c, user.ErrUserNotFound)
		return
	}
	req.Provider = provider.ProviderSnapshot()

	if input.ServiceID != "" {
		lctx, cancel := h.lookupCtx(c)
		svc, err := h.Users.GetService(lctx, input.ServiceID)
		cancel()
		if err != nil {
			respondError(c, err)
			return
		}
		req.Service = svc.Snapshot()
	}

	req.Client = models.ClientContact{
		ID:          actor.ID,
		Username:    actor.Username,
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Email:       strings.TrimSpace(input.Email),
	}
	if req.Client.PhoneNumber == "" && req.Client.Email == "" {
		lctx, cancel := h.lookupCtx(c)
		self, err := h.Users.GetUserByID(lctx, actor.ID)
		cancel()
		if err == nil {
			req.Client.PhoneNumber = self.PhoneNumber
			req.Client.Email = self.Email
		} else {
			logger.Debug("client contact lookup failed", zap.Error(err))
		}
	}

	p, err := h.Engine.CreateBooking(c.Request.Context(), booking.NewSession(actor), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateStatus applies a status transition to one of the actor's bookings.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input statusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	target, err := booking.ParseStatus(input.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	sess, ok := h.loadSession(c, actor)
	if !ok {
		return
	}
	p, err := h.Engine.ApplyTransition(c.Request.Context(), sess, c.Param("id"), target, strings.TrimSpace(input.PaymentMethod))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	sess := booking.NewSession(actor)
	if !actor.IsAdmin() {
		if sess, ok = h.loadSession(c, actor); !ok {
			return
		}
	}
	p, err := h.Engine.DeleteBooking(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
