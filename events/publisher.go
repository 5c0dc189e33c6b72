// Package events publishes booking lifecycle events to other services.
package events

import (
	"context"
	"time"
)

// Routing keys.
const (
	KeyBookingCreated       = "booking.created"
	KeyBookingStatusChanged = "booking.status_changed"
	KeyBookingDeleted       = "booking.deleted"
	KeyBookingsPurged       = "bookings.purged"
)

// Publisher delivers an event payload under a routing key.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

// BookingEvent is the payload of every booking event.
type BookingEvent struct {
	BookingID     string    `json:"bookingId,omitempty"`
	Status        string    `json:"status,omitempty"`
	Color         string    `json:"color,omitempty"`
	Bucket        string    `json:"bucket,omitempty"`
	ProviderID    string    `json:"providerId,omitempty"`
	UserID        string    `json:"userId,omitempty"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	ActorID       string    `json:"actorId"`
	ActorType     string    `json:"actorType"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
