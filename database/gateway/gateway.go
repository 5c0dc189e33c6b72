// Package gateway is the CRUD surface over the remote document store.
// It carries no business rules: records are flat documents addressed by
// their "id" field and filtered by simple equality.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Collections known to the store.
const (
	CollectionUsers    = "users"
	CollectionBookings = "bookings"
	CollectionServices = "services"
)

// IDField is the field holding the gateway-assigned record identifier.
const IDField = "id"

// Record is a single stored document.
type Record = bson.M

var ErrUnknownCollection = errors.New("unknown collection")

// Gateway defines the persistence primitives used by the services.
type Gateway interface {
	// QueryByField returns every record of collection whose field equals value.
	QueryByField(ctx context.Context, collection, field string, value any) ([]Record, error)
	// Insert stores record under a freshly generated id and returns it.
	Insert(ctx context.Context, collection string, record Record) (string, error)
	// Update merges partial into the record with the given id. Dotted keys
	// address embedded fields. It reports whether a record matched.
	Update(ctx context.Context, collection, id string, partial Record) (bool, error)
	// Delete removes the record with the given id and reports whether it existed.
	Delete(ctx context.Context, collection, id string) (bool, error)
	// DeleteAll removes every record of collection.
	DeleteAll(ctx context.Context, collection string) (bool, error)
}

func validCollection(collection string) error {
	switch collection {
	case CollectionUsers, CollectionBookings, CollectionServices:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
}

// Encode converts a bson-tagged value into a Record.
func Encode(v any) (Record, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var rec Record
	if err := bson.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return rec, nil
}

// Decode converts a Record into the bson-tagged value pointed to by out.
func Decode(rec Record, out any) error {
	raw, err := bson.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return nil
}
