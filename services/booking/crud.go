package booking

import (
	"context"
	"strings"
	"time"

	"servicehub/database/gateway"
	"servicehub/events"
	"servicehub/models"

	"go.uber.org/zap"
)

// Accepted request formats.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// CreateRequest is everything a client picks when booking a provider.
type CreateRequest struct {
	Provider models.ProviderSnapshot
	Service  models.ServiceSnapshot
	Date     string
	Time     string
	// Client contact details; the session identity fills in what is missing.
	Client models.ClientContact
	// InitialStatus is Pending unless the caller books straight into Confirmed.
	InitialStatus Status
}

func (r CreateRequest) validate() error {
	const op = "createBooking"
	if strings.TrimSpace(r.Provider.ID) == "" {
		return newError(KindValidation, op, "provider is required", nil)
	}
	if strings.TrimSpace(r.Date) == "" || strings.TrimSpace(r.Time) == "" {
		return newError(KindValidation, op, "date and time are required", nil)
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return newError(KindValidation, op, "date must be formatted as YYYY-MM-DD", err)
	}
	if _, err := time.Parse(TimeLayout, r.Time); err != nil {
		return newError(KindValidation, op, "time must be formatted as HH:MM", err)
	}
	switch r.InitialStatus {
	case "", StatusPending, StatusConfirmed:
	default:
		return newError(KindValidation, op, "a booking can only start as Pending or Confirmed", nil)
	}
	return nil
}

// CreateBooking persists a new booking for the session's actor and reloads
// the partition from the store. If the reload fails the new booking is put
// at the head of the held partition instead.
func (e *Engine) CreateBooking(ctx context.Context, sess *Session, req CreateRequest) (Partition, error) {
	const op = "createBooking"
	if err := requireSession(op, sess); err != nil {
		return EmptyPartition(), err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	current := sess.partition.clone()
	actor := sess.actor

	if _, ok := viewField(actor); !ok {
		return current, newError(KindPrecondition, op, "user type "+actor.UserType+" cannot create bookings", nil)
	}
	if err := req.validate(); err != nil {
		return current, err
	}
	if req.Provider.IsAvailable != nil && !*req.Provider.IsAvailable {
		return current, newError(KindPrecondition, op, "provider unavailable", nil)
	}

	status := req.InitialStatus
	if status == "" {
		status = StatusPending
	}
	service := req.Service
	if service.Name == "" {
		service.Name = req.Provider.ServiceType
	}
	if service.Name == "" {
		return current, newError(KindValidation, op, "service is required", nil)
	}
	client := req.Client
	if client.ID == "" {
		client.ID = actor.ID
	}
	if client.Username == "" {
		client.Username = actor.Username
	}

	b := models.Booking{
		Status:     string(status),
		Color:      ColorFor(status),
		Service:    service.Name,
		ProviderID: req.Provider.ID,
		UserID:     actor.ID,
		UserType:   actor.UserType,
		CreatedAt:  e.now().UTC(),
		Details: models.BookingDetails{
			Date:     req.Date,
			Time:     req.Time,
			Provider: req.Provider,
			Service:  service,
			Client:   client,
		},
	}
	rec, err := gateway.Encode(b)
	if err != nil {
		return current, newError(KindValidation, op, "booking could not be encoded", err)
	}
	delete(rec, gateway.IDField)

	gctx, cancel := e.withTimeout(ctx)
	id, err := e.Gateway.Insert(gctx, gateway.CollectionBookings, rec)
	cancel()
	if err != nil {
		e.logger().Error("failed to create booking", zap.String("providerId", b.ProviderID), zap.Error(err))
		return current, gatewayError(op, err)
	}
	b.ID = id
	e.logger().Info("booking created", zap.String("bookingId", id), zap.String("actorId", actor.ID))
	e.publish(ctx, events.KeyBookingCreated, e.event(actor, b))

	next, err := e.load(ctx, sess)
	if err != nil {
		e.logger().Warn("reload after booking creation failed", zap.String("bookingId", id), zap.Error(err))
		next = current.without(id).withHead(b)
		sess.partition = next
		return next.clone(), nil
	}
	return next, nil
}

// DeleteBooking removes the booking from the store and from the session's
// partition. No status rules apply. Clients and providers may only delete
// bookings in their own partition; admins may delete any booking.
func (e *Engine) DeleteBooking(ctx context.Context, sess *Session, id string) (Partition, error) {
	const op = "deleteBooking"
	if err := requireSession(op, sess); err != nil {
		return EmptyPartition(), err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	current := sess.partition.clone()

	if id == "" {
		return current, newError(KindValidation, op, "booking id is required", nil)
	}
	b, _, held := current.Find(id)
	if !held && !sess.actor.IsAdmin() {
		return current, newError(KindNotFound, op, "booking "+id+" not found", nil)
	}

	gctx, cancel := e.withTimeout(ctx)
	defer cancel()
	deleted, err := e.Gateway.Delete(gctx, gateway.CollectionBookings, id)
	if err != nil {
		e.logger().Error("failed to delete booking", zap.String("bookingId", id), zap.Error(err))
		return current, gatewayError(op, err)
	}
	if !deleted {
		return current, newError(KindNotFound, op, "booking "+id+" no longer exists", nil)
	}

	next := current.without(id)
	sess.partition = next
	if !held {
		b.ID = id
	}
	e.logger().Info("booking deleted", zap.String("bookingId", id), zap.String("actorId", sess.actor.ID))
	e.publish(ctx, events.KeyBookingDeleted, e.event(sess.actor, b))
	return next.clone(), nil
}

// ClearAllBookings deletes every booking in the system. Only admin sessions
// may purge; confirming the purge is up to the caller.
func (e *Engine) ClearAllBookings(ctx context.Context, sess *Session) error {
	const op = "clearAllBookings"
	if err := requireSession(op, sess); err != nil {
		return err
	}
	if !sess.actor.IsAdmin() {
		return newError(KindPrecondition, op, "only admins can clear bookings", nil)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	gctx, cancel := e.withTimeout(ctx)
	defer cancel()
	ok, err := e.Gateway.DeleteAll(gctx, gateway.CollectionBookings)
	if err != nil {
		e.logger().Error("failed to clear bookings", zap.Error(err))
		return gatewayError(op, err)
	}
	if !ok {
		return newError(KindGateway, op, "booking store refused the purge", nil)
	}

	sess.partition = EmptyPartition()
	e.logger().Warn("all bookings cleared", zap.String("actorId", sess.actor.ID))
	e.publish(ctx, events.KeyBookingsPurged, events.BookingEvent{
		ActorID:    sess.actor.ID,
		ActorType:  sess.actor.UserType,
		OccurredAt: e.now(),
	})
	return nil
}
