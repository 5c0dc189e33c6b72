package booking

import (
	"sync"

	"servicehub/models"
)

// Session is the state one acting user holds while working with bookings:
// who they are and the partition they last loaded. A session belongs to a
// single caller; the engine serialises operations issued on the same session.
type Session struct {
	mu        sync.Mutex
	actor     models.Actor
	partition Partition
}

func NewSession(actor models.Actor) *Session {
	return &Session{actor: actor, partition: EmptyPartition()}
}

func (s *Session) Actor() models.Actor {
	return s.actor
}

// Partition returns the partition the session currently holds.
func (s *Session) Partition() Partition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partition.clone()
}

// viewField is the booking field that scopes the actor's bookings.
func viewField(actor models.Actor) (string, bool) {
	switch actor.UserType {
	case models.UserTypeClient:
		return "userId", true
	case models.UserTypeProvider:
		return "providerId", true
	default:
		return "", false
	}
}
