package gateway

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// MemoryGateway is a process-local Gateway used for development
// (GATEWAY_DRIVER=memory) and tests. Records are stored as bson round-trips
// of the inserted documents so they decode exactly like Mongo results.
type MemoryGateway struct {
	mu          sync.RWMutex
	collections map[string][]Record
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{collections: make(map[string][]Record)}
}

func (g *MemoryGateway) QueryByField(ctx context.Context, collection, field string, value any) ([]Record, error) {
	if err := validCollection(collection); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	records := []Record{}
	for _, rec := range g.collections[collection] {
		got, ok := lookupPath(rec, field)
		if !ok || !equalValues(got, value) {
			continue
		}
		cp, err := Encode(rec)
		if err != nil {
			return nil, err
		}
		records = append(records, cp)
	}
	return records, nil
}

func (g *MemoryGateway) Insert(ctx context.Context, collection string, record Record) (string, error) {
	if err := validCollection(collection); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := Encode(record)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()
	doc[IDField] = id

	g.mu.Lock()
	g.collections[collection] = append(g.collections[collection], doc)
	g.mu.Unlock()
	return id, nil
}

func (g *MemoryGateway) Update(ctx context.Context, collection, id string, partial Record) (bool, error) {
	if err := validCollection(collection); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	patch, err := Encode(partial)
	if err != nil {
		return false, err
	}
	delete(patch, IDField)
	if len(patch) == 0 {
		return false, fmt.Errorf("no updatable fields provided for %s %s", collection, id)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, rec := range g.collections[collection] {
		if rec[IDField] != id {
			continue
		}
		for k, v := range patch {
			setPath(rec, k, v)
		}
		return true, nil
	}
	return false, nil
}

func (g *MemoryGateway) Delete(ctx context.Context, collection, id string) (bool, error) {
	if err := validCollection(collection); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	records := g.collections[collection]
	for i, rec := range records {
		if rec[IDField] == id {
			g.collections[collection] = append(records[:i:i], records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (g *MemoryGateway) DeleteAll(ctx context.Context, collection string) (bool, error) {
	if err := validCollection(collection); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	g.mu.Lock()
	delete(g.collections, collection)
	g.mu.Unlock()
	return true, nil
}

// Len reports how many records collection holds.
func (g *MemoryGateway) Len(collection string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.collections[collection])
}

func lookupPath(rec Record, path string) (any, bool) {
	var cur any = rec
	for _, part := range strings.Split(path, ".") {
		doc, ok := asDocument(cur)
		if !ok {
			return nil, false
		}
		cur, ok = doc[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func setPath(rec Record, path string, value any) {
	parts := strings.Split(path, ".")
	doc := rec
	for _, part := range parts[:len(parts)-1] {
		child, ok := asDocument(doc[part])
		if !ok {
			child = bson.M{}
		}
		doc[part] = child
		doc = child
	}
	doc[parts[len(parts)-1]] = value
}

func asDocument(v any) (bson.M, bool) {
	switch d := v.(type) {
	case bson.M:
		return d, true
	case map[string]any:
		return bson.M(d), true
	case bson.D:
		m := make(bson.M, len(d))
		for _, e := range d {
			m[e.Key] = e.Value
		}
		return m, true
	default:
		return nil, false
	}
}

func equalValues(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
