package handlers

import (
	"context"
	"net/http"

	"servicehub/services/user"

	"github.com/gin-gonic/gin"
)

// NewBookingsCounter reports bookings a provider has not seen yet.
type NewBookingsCounter interface {
	Count(ctx context.Context, providerID string) (int, error)
	MarkSeen(ctx context.Context, providerID string) error
}

type ProviderHandler struct {
	Users   user.UserService
	Counter NewBookingsCounter
}

func NewProviderHandler(users user.UserService, counter NewBookingsCounter) *ProviderHandler {
	return &ProviderHandler{Users: users, Counter: counter}
}

// GetProvidersHandler lists providers, optionally filtered by serviceType.
func (h *ProviderHandler) GetProvidersHandler(c *gin.Context) {
	providers, err := h.Users.ListProviders(c.Request.Context(), c.Query("serviceType"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// NewBookingsHandler returns how many bookings arrived since the provider
// last marked them seen.
func (h *ProviderHandler) NewBookingsHandler(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	n, err := h.Counter.Count(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h *ProviderHandler) MarkBookingsSeenHandler(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.Counter.MarkSeen(c.Request.Context(), actor.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": 0})
}
