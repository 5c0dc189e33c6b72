package booking

import (
	"fmt"
	"strings"

	"servicehub/models"
)

// Status is a booking status. The set is closed: every switch over it below
// lists each constant explicitly.
type Status string

const (
	StatusPending             Status = "Pending"
	StatusAccepted            Status = "Accepted"
	StatusConfirmed           Status = "Confirmed"
	StatusCompleted           Status = "Completed"
	StatusPendingPayment      Status = "Pending Payment"
	StatusPendingConfirmation Status = "Pending Confirmation"
	StatusPaid                Status = "Paid"
	StatusCancelled           Status = "Cancelled"
	StatusDeclined            Status = "Declined"
)

// Statuses lists the taxonomy in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusAccepted,
	StatusConfirmed,
	StatusCompleted,
	StatusPendingPayment,
	StatusPendingConfirmation,
	StatusPaid,
	StatusCancelled,
	StatusDeclined,
}

// Bucket is one of the three display partitions of bookings.
type Bucket string

const (
	BucketPending   Bucket = "pending"
	BucketCompleted Bucket = "completed"
	BucketCancelled Bucket = "cancelled"
)

// Buckets lists the partitions in display order.
var Buckets = []Bucket{BucketPending, BucketCompleted, BucketCancelled}

// Display colours.
const (
	ColorCompleted = "#2196F3"
	ColorAwaiting  = "#FF9800"
	ColorPaid      = "#4CAF50"
	ColorCancelled = "#F44336"
	ColorAccepted  = "#4CAF50"
	ColorConfirmed = "#F5A623"
	ColorDefault   = "#FFC107"
)

func (s Status) String() string { return string(s) }

// Known reports whether s is part of the taxonomy.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusConfirmed,
		StatusCompleted, StatusPendingPayment, StatusPendingConfirmation, StatusPaid,
		StatusCancelled, StatusDeclined:
		return true
	}
	return false
}

// ParseStatus validates a caller-supplied status. Surrounding whitespace is
// ignored; matching is otherwise exact.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.Known() {
		return "", newError(KindValidation, "parseStatus", fmt.Sprintf("unknown booking status %q", raw), nil)
	}
	return s, nil
}

// Classify returns the bucket a status belongs to. Anything outside the
// completed and cancelled groups, including strings persisted by older
// clients that are not part of the taxonomy, is pending.
func Classify(s Status) Bucket {
	switch s {
	case StatusCompleted, StatusPendingPayment, StatusPendingConfirmation, StatusPaid:
		return BucketCompleted
	case StatusCancelled, StatusDeclined:
		return BucketCancelled
	case StatusPending, StatusAccepted, StatusConfirmed:
		return BucketPending
	default:
		return BucketPending
	}
}

// ColorFor returns the display colour assigned when a booking enters s.
func ColorFor(s Status) string {
	switch s {
	case StatusCompleted:
		return ColorCompleted
	case StatusPendingPayment, StatusPendingConfirmation:
		return ColorAwaiting
	case StatusPaid:
		return ColorPaid
	case StatusCancelled, StatusDeclined:
		return ColorCancelled
	case StatusAccepted:
		return ColorAccepted
	case StatusConfirmed:
		return ColorConfirmed
	case StatusPending:
		return ColorDefault
	default:
		return ColorDefault
	}
}

// requestable lists the targets each user type may move a booking to.
// Pending is only ever assigned at creation and admins issue no transitions.
var requestable = map[string][]Status{
	models.UserTypeClient: {
		StatusCancelled,
		StatusPendingPayment,
		StatusPendingConfirmation,
	},
	models.UserTypeProvider: {
		StatusAccepted,
		StatusDeclined,
		StatusConfirmed,
		StatusCompleted,
		StatusPaid,
	},
}

// CanRequest reports whether a user of userType may move a booking to target.
func CanRequest(userType string, target Status) bool {
	for _, s := range requestable[userType] {
		if s == target {
			return true
		}
	}
	return false
}

// Terminal reports whether a booking in s may no longer change status.
func Terminal(s Status) bool {
	return Classify(s) == BucketCancelled
}
