package booking

import (
	"sort"

	"servicehub/models"
)

// Partition is the three-bucket view of a session's bookings. Each bucket is
// ordered most recent first. Partition values are never modified in place:
// every operation returns a new one.
type Partition struct {
	Pending   []models.Booking `json:"pending"`
	Completed []models.Booking `json:"completed"`
	Cancelled []models.Booking `json:"cancelled"`
}

// EmptyPartition returns a partition with three empty, non-nil buckets.
func EmptyPartition() Partition {
	return Partition{
		Pending:   []models.Booking{},
		Completed: []models.Booking{},
		Cancelled: []models.Booking{},
	}
}

// PartitionBookings classifies every booking by its status, keeping the
// input order within each bucket. Every view of bookings goes through here.
func PartitionBookings(bookings []models.Booking) Partition {
	p := EmptyPartition()
	for _, b := range bookings {
		switch Classify(Status(b.Status)) {
		case BucketCompleted:
			p.Completed = append(p.Completed, b)
		case BucketCancelled:
			p.Cancelled = append(p.Cancelled, b)
		default:
			p.Pending = append(p.Pending, b)
		}
	}
	return p
}

// Bucket returns a copy of the bookings held in bucket b.
func (p Partition) Bucket(b Bucket) []models.Booking {
	var src []models.Booking
	switch b {
	case BucketPending:
		src = p.Pending
	case BucketCompleted:
		src = p.Completed
	case BucketCancelled:
		src = p.Cancelled
	}
	return append([]models.Booking{}, src...)
}

// Find scans the buckets for the booking with the given id.
func (p Partition) Find(id string) (models.Booking, Bucket, bool) {
	for _, bucket := range Buckets {
		for _, b := range p.bucket(bucket) {
			if b.ID == id {
				return b, bucket, true
			}
		}
	}
	return models.Booking{}, "", false
}

// Len is the total number of bookings across buckets.
func (p Partition) Len() int {
	return len(p.Pending) + len(p.Completed) + len(p.Cancelled)
}

// IDs lists booking ids bucket by bucket.
func (p Partition) IDs() []string {
	ids := make([]string, 0, p.Len())
	for _, bucket := range Buckets {
		for _, b := range p.bucket(bucket) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

func (p Partition) bucket(b Bucket) []models.Booking {
	switch b {
	case BucketCompleted:
		return p.Completed
	case BucketCancelled:
		return p.Cancelled
	default:
		return p.Pending
	}
}

func (p Partition) clone() Partition {
	return Partition{
		Pending:   append([]models.Booking{}, p.Pending...),
		Completed: append([]models.Booking{}, p.Completed...),
		Cancelled: append([]models.Booking{}, p.Cancelled...),
	}
}

// without returns a copy of p with the booking id removed from every bucket.
func (p Partition) without(id string) Partition {
	drop := func(src []models.Booking) []models.Booking {
		out := make([]models.Booking, 0, len(src))
		for _, b := range src {
			if b.ID != id {
				out = append(out, b)
			}
		}
		return out
	}
	return Partition{
		Pending:   drop(p.Pending),
		Completed: drop(p.Completed),
		Cancelled: drop(p.Cancelled),
	}
}

// withHead returns a copy of p with b inserted first in the bucket of its status.
func (p Partition) withHead(b models.Booking) Partition {
	next := p.clone()
	head := []models.Booking{b}
	switch Classify(Status(b.Status)) {
	case BucketCompleted:
		next.Completed = append(head, next.Completed...)
	case BucketCancelled:
		next.Cancelled = append(head, next.Cancelled...)
	default:
		next.Pending = append(head, next.Pending...)
	}
	return next
}

// sortRecent orders bookings newest first; ties fall back to id so reloads
// are stable.
func sortRecent(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}
		return bookings[i].ID < bookings[j].ID
	})
}
