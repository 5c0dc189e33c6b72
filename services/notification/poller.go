// Package notification derives "new bookings" counts for providers by
// comparing the bookings they hold now with the ids they last saw.
package notification

import (
	"context"
	"errors"
	"fmt"

	"servicehub/models"
	"servicehub/services/booking"
	"servicehub/services/user"

	"go.uber.org/zap"
)

// Poller runs outside the lifecycle engine: it only reads bookings through it.
type Poller struct {
	Engine *booking.Engine
	Users  user.UserService
	Store  SeenStore
	Logger *zap.Logger
}

func NewPoller(engine *booking.Engine, users user.UserService, store SeenStore, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{Engine: engine, Users: users, Store: store, Logger: logger}
}

func (p *Poller) currentIDs(ctx context.Context, providerID string) ([]string, error) {
	sess := booking.NewSession(models.Actor{ID: providerID, UserType: models.UserTypeProvider})
	part, err := p.Engine.LoadBookings(ctx, sess)
	if err != nil {
		return nil, err
	}
	return part.IDs(), nil
}

// Poll reloads the provider's bookings and stores how many of them are not
// in the last-seen list. The first poll for a provider records the baseline
// and reports zero.
func (p *Poller) Poll(ctx context.Context, providerID string) (int, error) {
	current, err := p.currentIDs(ctx, providerID)
	if err != nil {
		return 0, err
	}

	previous, ok, err := p.Store.LastSeen(ctx, providerID)
	if err != nil {
		return 0, err
	}
	if !ok {
		if err := p.Store.SaveSeen(ctx, providerID, current); err != nil {
			return 0, err
		}
		return 0, p.Store.SetNewCount(ctx, providerID, 0)
	}

	fresh := booking.DiffNewIDs(previous, current)
	if err := p.Store.SetNewCount(ctx, providerID, len(fresh)); err != nil {
		return 0, err
	}
	if len(fresh) > 0 {
		p.Logger.Debug("new bookings for provider", zap.String("providerId", providerID), zap.Int("count", len(fresh)))
	}
	return len(fresh), nil
}

// MarkSeen makes the provider's current bookings the new baseline.
func (p *Poller) MarkSeen(ctx context.Context, providerID string) error {
	current, err := p.currentIDs(ctx, providerID)
	if err != nil {
		return err
	}
	if err := p.Store.SaveSeen(ctx, providerID, current); err != nil {
		return err
	}
	return p.Store.SetNewCount(ctx, providerID, 0)
}

// Count returns the count stored by the latest poll.
func (p *Poller) Count(ctx context.Context, providerID string) (int, error) {
	return p.Store.NewCount(ctx, providerID)
}

// PollAll polls every active provider. A failing provider does not stop the
// others; the failures are joined into the returned error.
func (p *Poller) PollAll(ctx context.Context) error {
	providers, err := p.Users.ListProviders(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to list providers: %w", err)
	}

	var errs []error
	for _, prov := range providers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := p.Poll(ctx, prov.ID); err != nil {
			p.Logger.Warn("poll failed", zap.String("providerId", prov.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("provider %s: %w", prov.ID, err))
		}
	}
	return errors.Join(errs...)
}
