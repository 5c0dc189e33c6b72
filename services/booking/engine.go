package booking

import (
	"context"
	"errors"
	"time"

	"servicehub/database/gateway"
	"servicehub/events"
	"servicehub/models"

	"go.uber.org/zap"
)

// Engine owns the booking lifecycle: it loads a session's partition, applies
// status transitions and keeps the store and the partition in step.
//
// There is no version check against the store. Two sessions transitioning
// the same booking race and the last write wins; the losing session sees the
// persisted value on its next LoadBookings.
type Engine struct {
	Gateway   gateway.Gateway
	Publisher events.Publisher
	Logger    *zap.Logger
	// Timeout bounds every gateway call. Zero means the caller's context alone.
	Timeout time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.Timeout)
}

func gatewayError(op string, err error) *Error {
	msg := "booking store request failed"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "booking store did not respond in time"
	}
	return newError(KindGateway, op, msg, err)
}

func requireSession(op string, sess *Session) error {
	if sess == nil {
		return newError(KindPrecondition, op, "no active session", nil)
	}
	return nil
}

func (e *Engine) publish(ctx context.Context, key string, ev events.BookingEvent) {
	if e.Publisher == nil {
		return
	}
	if err := e.Publisher.Publish(ctx, key, ev); err != nil {
		e.logger().Warn("failed to publish booking event",
			zap.String("key", key), zap.String("bookingId", ev.BookingID), zap.Error(err))
	}
}

func (e *Engine) event(actor models.Actor, b models.Booking) events.BookingEvent {
	return events.BookingEvent{
		BookingID:     b.ID,
		Status:        b.Status,
		Color:         b.Color,
		Bucket:        string(Classify(Status(b.Status))),
		ProviderID:    b.ProviderID,
		UserID:        b.UserID,
		PaymentMethod: b.Details.PaymentMethod,
		ActorID:       actor.ID,
		ActorType:     actor.UserType,
		OccurredAt:    e.now(),
	}
}

// LoadBookings fetches the actor's bookings, classifies every record and
// stores the resulting partition on the session. Clients see bookings by
// userId, providers by providerId.
func (e *Engine) LoadBookings(ctx context.Context, sess *Session) (Partition, error) {
	const op = "loadBookings"
	if err := requireSession(op, sess); err != nil {
		return EmptyPartition(), err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return e.load(ctx, sess)
}

// load requires sess.mu to be held.
func (e *Engine) load(ctx context.Context, sess *Session) (Partition, error) {
	const op = "loadBookings"
	field, ok := viewField(sess.actor)
	if !ok {
		return sess.partition.clone(), newError(KindPrecondition, op,
			"user type "+sess.actor.UserType+" has no booking view", nil)
	}

	gctx, cancel := e.withTimeout(ctx)
	defer cancel()
	records, err := e.Gateway.QueryByField(gctx, gateway.CollectionBookings, field, sess.actor.ID)
	if err != nil {
		return sess.partition.clone(), gatewayError(op, err)
	}

	bookings := make([]models.Booking, 0, len(records))
	for _, rec := range records {
		var b models.Booking
		if err := gateway.Decode(rec, &b); err != nil {
			e.logger().Error("malformed booking record", zap.Any("id", rec[gateway.IDField]), zap.Error(err))
			return sess.partition.clone(), newError(KindGateway, op, "malformed booking record", err)
		}
		bookings = append(bookings, b)
	}
	sortRecent(bookings)

	p := PartitionBookings(bookings)
	sess.partition = p
	return p.clone(), nil
}

// ApplyTransition moves the booking id of the session's partition to target.
// Clients may only cancel or move a booking into payment; the remaining
// targets belong to the provider. Cancelled and declined bookings are final.
// The colour follows the target status and paymentMethod, which is only
// accepted together with Paid, is recorded in the booking details. The
// updated booking is placed first in its new bucket.
//
// The store is written once. If that write fails the session keeps its
// previous partition and the error is returned.
func (e *Engine) ApplyTransition(ctx context.Context, sess *Session, id string, target Status, paymentMethod string) (Partition, error) {
	const op = "applyTransition"
	if err := requireSession(op, sess); err != nil {
		return EmptyPartition(), err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	current := sess.partition.clone()

	if id == "" {
		return current, newError(KindValidation, op, "booking id is required", nil)
	}
	if !target.Known() {
		return current, newError(KindValidation, op, "unknown booking status "+string(target), nil)
	}
	if paymentMethod != "" && target != StatusPaid {
		return current, newError(KindValidation, op, "a payment method can only be recorded when the booking is paid", nil)
	}
	if !CanRequest(sess.actor.UserType, target) {
		return current, newError(KindPrecondition, op,
			"a "+sess.actor.UserType+" cannot move a booking to "+string(target), nil)
	}

	b, _, ok := current.Find(id)
	if !ok {
		return current, newError(KindNotFound, op, "booking "+id+" not found", nil)
	}
	if Terminal(Status(b.Status)) {
		return current, newError(KindPrecondition, op, "booking "+id+" is already "+b.Status, nil)
	}

	b.Status = string(target)
	b.Color = ColorFor(target)
	patch := gateway.Record{"status": b.Status, "color": b.Color}
	if paymentMethod != "" {
		b.Details.PaymentMethod = paymentMethod
		patch["details.paymentMethod"] = paymentMethod
	}

	gctx, cancel := e.withTimeout(ctx)
	defer cancel()
	matched, err := e.Gateway.Update(gctx, gateway.CollectionBookings, id, patch)
	if err != nil {
		e.logger().Error("failed to persist booking status",
			zap.String("bookingId", id), zap.String("status", b.Status), zap.Error(err))
		return current, gatewayError(op, err)
	}
	if !matched {
		return current, newError(KindNotFound, op, "booking "+id+" no longer exists", nil)
	}

	next := current.without(id).withHead(b)
	sess.partition = next
	e.logger().Info("booking status changed",
		zap.String("bookingId", id), zap.String("status", b.Status), zap.String("actorId", sess.actor.ID))
	e.publish(ctx, events.KeyBookingStatusChanged, e.event(sess.actor, b))
	return next.clone(), nil
}
