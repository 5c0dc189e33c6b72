package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"servicehub/database/gateway"
	"servicehub/database/gateway/mocks"
	"servicehub/events"
	"servicehub/models"
	"servicehub/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	clientActor   = models.Actor{ID: "client-1", Username: "ann", UserType: models.UserTypeClient}
	otherClient   = models.Actor{ID: "client-2", Username: "cara", UserType: models.UserTypeClient}
	providerActor = models.Actor{ID: "provider-1", Username: "bob", UserType: models.UserTypeProvider}
	adminActor    = models.Actor{ID: "admin-1", Username: "root", UserType: models.UserTypeAdmin}
)

// stepClock returns a clock that advances one minute per call so every
// booking gets a distinct creation time.
func stepClock() func() time.Time {
	t := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newEngine(gw gateway.Gateway) (*booking.Engine, *events.Recorder) {
	rec := &events.Recorder{}
	return &booking.Engine{
		Gateway:   gw,
		Publisher: rec,
		Timeout:   time.Second,
		Now:       stepClock(),
	}, rec
}

func bobRequest() booking.CreateRequest {
	return booking.CreateRequest{
		Provider: models.ProviderSnapshot{ID: providerActor.ID, Username: providerActor.Username, ServiceType: "Plumbing"},
		Service:  models.ServiceSnapshot{Name: "Plumbing"},
		Date:     "2026-10-20",
		Time:     "14:30",
	}
}

func createOne(t *testing.T, e *booking.Engine, sess *booking.Session) models.Booking {
	t.Helper()
	p, err := e.CreateBooking(context.Background(), sess, bobRequest())
	require.NoError(t, err)
	require.NotEmpty(t, p.Pending)
	return p.Pending[0]
}

// providerSession returns bob's session with his bookings loaded.
func providerSession(t *testing.T, e *booking.Engine) *booking.Session {
	t.Helper()
	sess := booking.NewSession(providerActor)
	_, err := e.LoadBookings(context.Background(), sess)
	require.NoError(t, err)
	return sess
}

// sessionFor returns a loaded session of the party allowed to request target.
func sessionFor(t *testing.T, e *booking.Engine, target booking.Status) *booking.Session {
	t.Helper()
	if !booking.CanRequest(models.UserTypeClient, target) {
		return providerSession(t, e)
	}
	sess := booking.NewSession(clientActor)
	_, err := e.LoadBookings(context.Background(), sess)
	require.NoError(t, err)
	return sess
}

func bucketOf(t *testing.T, p booking.Partition, id string) booking.Bucket {
	t.Helper()
	count := 0
	var found booking.Bucket
	for _, b := range booking.Buckets {
		for _, bk := range p.Bucket(b) {
			if bk.ID == id {
				count++
				found = b
			}
		}
	}
	require.Equal(t, 1, count, "booking %s must be in exactly one bucket", id)
	return found
}

func TestScenarioA_CreateThenAccept(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	e, rec := newEngine(gw)
	ctx := context.Background()

	created := createOne(t, e, booking.NewSession(clientActor))
	assert.Equal(t, string(booking.StatusPending), created.Status)
	assert.Equal(t, "#FFC107", created.Color)
	assert.Equal(t, clientActor.ID, created.UserID)
	assert.Equal(t, models.UserTypeClient, created.UserType)
	assert.Equal(t, "ann", created.Details.Client.Username)
	assert.Empty(t, created.Details.PaymentMethod)

	prov := booking.NewSession(providerActor)
	_, err := e.LoadBookings(ctx, prov)
	require.NoError(t, err)

	p, err := e.ApplyTransition(ctx, prov, created.ID, booking.StatusAccepted, "")
	require.NoError(t, err)
	assert.Equal(t, booking.BucketPending, bucketOf(t, p, created.ID))
	assert.Equal(t, "#4CAF50", p.Pending[0].Color)
	assert.Equal(t, []string{events.KeyBookingCreated, events.KeyBookingStatusChanged}, rec.Keys())

	// The store reflects the transition for the client as well.
	reloaded, err := e.LoadBookings(ctx, booking.NewSession(clientActor))
	require.NoError(t, err)
	require.Len(t, reloaded.Pending, 1)
	assert.Equal(t, string(booking.StatusAccepted), reloaded.Pending[0].Status)
	assert.Equal(t, "#4CAF50", reloaded.Pending[0].Color)
}

func TestScenarioB_Complete(t *testing.T) {
	e, _ := newEngine(gateway.NewMemoryGateway())
	b := createOne(t, e, booking.NewSession(clientActor))

	p, err := e.ApplyTransition(context.Background(), providerSession(t, e), b.ID, booking.StatusCompleted, "")
	require.NoError(t, err)
	assert.Equal(t, booking.BucketCompleted, bucketOf(t, p, b.ID))
	assert.Empty(t, p.Pending)
	assert.Equal(t, "#2196F3", p.Completed[0].Color)
}

func TestScenarioC_PaidWithPaymentMethod(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	e, _ := newEngine(gw)
	ctx := context.Background()
	b := createOne(t, e, booking.NewSession(clientActor))

	p, err := e.ApplyTransition(ctx, providerSession(t, e), b.ID, booking.StatusPaid, "Cash")
	require.NoError(t, err)
	assert.Equal(t, booking.BucketCompleted, bucketOf(t, p, b.ID))
	assert.Equal(t, "#4CAF50", p.Completed[0].Color)
	assert.Equal(t, "Cash", p.Completed[0].Details.PaymentMethod)

	records, err := gw.QueryByField(ctx, gateway.CollectionBookings, "details.paymentMethod", "Cash")
	require.NoError(t, err)
	require.Len(t, records, 1)

	var stored models.Booking
	require.NoError(t, gateway.Decode(records[0], &stored))
	assert.Equal(t, "Paid", stored.Status)
	assert.Equal(t, "2026-10-20", stored.Details.Date, "existing details survive the update")
}

func TestScenarioD_Declined(t *testing.T) {
	e, _ := newEngine(gateway.NewMemoryGateway())
	ctx := context.Background()
	b := createOne(t, e, booking.NewSession(clientActor))

	prov := booking.NewSession(providerActor)
	_, err := e.LoadBookings(ctx, prov)
	require.NoError(t, err)

	p, err := e.ApplyTransition(ctx, prov, b.ID, booking.StatusDeclined, "")
	require.NoError(t, err)
	assert.Equal(t, booking.BucketCancelled, bucketOf(t, p, b.ID))
	assert.Equal(t, "#F44336", p.Cancelled[0].Color)
}

func TestApplyTransition_ColorIndependentOfPriorStatus(t *testing.T) {
	ctx := context.Background()
	for _, prior := range booking.Statuses {
		if booking.Terminal(prior) {
			continue
		}
		for _, target := range booking.Statuses {
			if target == booking.StatusPending {
				continue
			}
			e, _ := newEngine(gateway.NewMemoryGateway())
			b := createOne(t, e, booking.NewSession(clientActor))

			if prior != booking.StatusPending {
				_, err := e.ApplyTransition(ctx, sessionFor(t, e, prior), b.ID, prior, "")
				require.NoError(t, err)
			}

			p, err := e.ApplyTransition(ctx, sessionFor(t, e, target), b.ID, target, "")
			require.NoError(t, err, "%s -> %s", prior, target)

			bucket := bucketOf(t, p, b.ID)
			assert.Equal(t, booking.Classify(target), bucket, "%s -> %s", prior, target)
			got, _, ok := p.Find(b.ID)
			require.True(t, ok)
			assert.Equal(t, booking.ColorFor(target), got.Color, "%s -> %s", prior, target)
			assert.Equal(t, 1, p.Len())
		}
	}
}

func TestApplyTransition_InsertsAtHeadOfBucket(t *testing.T) {
	e, _ := newEngine(gateway.NewMemoryGateway())
	ctx := context.Background()
	sess := booking.NewSession(clientActor)

	first := createOne(t, e, sess)
	second := createOne(t, e, sess)
	third := createOne(t, e, sess)

	p := sess.Partition()
	require.Equal(t, []string{third.ID, second.ID, first.ID}, p.IDs(), "newest first")

	p, err := e.ApplyTransition(ctx, providerSession(t, e), first.ID, booking.StatusAccepted, "")
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, third.ID, second.ID}, p.IDs())
}

func TestApplyTransition_NotFoundIsNoOp(t *testing.T) {
	e, rec := newEngine(gateway.NewMemoryGateway())
	sess := booking.NewSession(clientActor)
	createOne(t, e, sess)
	createOne(t, e, sess)
	before := sess.Partition()
	eventsBefore := len(rec.Keys())

	p, err := e.ApplyTransition(context.Background(), sess, "missing", booking.StatusCancelled, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, booking.ErrNotFound)
	assert.True(t, booking.IsRetryable(err))
	assert.Equal(t, before, p)
	assert.Equal(t, before, sess.Partition())
	assert.Len(t, rec.Keys(), eventsBefore)
}

func TestApplyTransition_BookingOfAnotherActorIsNotFound(t *testing.T) {
	e, _ := newEngine(gateway.NewMemoryGateway())
	ctx := context.Background()
	b := createOne(t, e, booking.NewSession(clientActor))

	other := booking.NewSession(otherClient)
	_, err := e.LoadBookings(ctx, other)
	require.NoError(t, err)

	_, err = e.ApplyTransition(ctx, other, b.ID, booking.StatusCancelled, "")
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestApplyTransition_Validation(t *testing.T) {
	e, _ := newEngine(gateway.NewMemoryGateway())
	ctx := context.Background()
	sess := booking.NewSession(clientActor)
	b := createOne(t, e, sess)

	_, err := e.ApplyTransition(ctx, sess, b.ID, booking.Status("Shipped"), "")
	assert.ErrorIs(t, err, booking.ErrValidation)

	_, err = e.ApplyTransition(ctx, sess, "", booking.StatusPaid, "")
	assert.ErrorIs(t, err, booking.ErrValidation)

	_, err = e.ApplyTransition(ctx, sess, b.ID, booking.StatusCompleted, "Cash")
	assert.ErrorIs(t, err, booking.ErrValidation)
	assert.False(t, booking.IsRetryable(err))

	_, err = e.ApplyTransition(ctx, nil, b.ID, booking.StatusPaid, "")
	assert.ErrorIs(t, err, booking.ErrPrecondition)

	got, _, _ := sess.Partition().Find(b.ID)
	assert.Equal(t, string(booking.StatusPending), got.Status)
}

func TestApplyTransition_TargetsAreLimitedByUserType(t *testing.T) {
	gw := mocks.NewGateway(t)
	e, rec := newEngine(gw)
	ctx := context.Background()

	stored, err := gateway.Encode(models.Booking{
		ID: "b1", Status: "Accepted", Color: "#4CAF50", ProviderID: providerActor.ID, UserID: clientActor.ID,
	})
	require.NoError(t, err)
	gw.On("QueryByField", mock.Anything, gateway.CollectionBookings, "userId", clientActor.ID).
		Return([]gateway.Record{stored}, nil)
	gw.On("QueryByField", mock.Anything, gateway.CollectionBookings, "providerId", providerActor.ID).
		Return([]gateway.Record{stored}, nil)

	tests := []struct {
		actor   models.Actor
		targets []booking.Status
	}{
		{clientActor, []booking.Status{
			booking.StatusPending, booking.StatusAccepted, booking.StatusDeclined,
			booking.StatusConfirmed, booking.StatusCompleted, booking.StatusPaid,
		}},
		{providerActor, []booking.Status{
			booking.StatusPending, booking.StatusCancelled,
			booking.StatusPendingPayment, booking.StatusPendingConfirmation,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.actor.UserType, func(t *testing.T) {
			sess := booking.NewSession(tt.actor)
			before, err := e.LoadBookings(ctx, sess)
			require.NoError(t, err)

			for _, target := range tt.targets {
				p, err := e.ApplyTransition(ctx, sess, "b1", target, "")
				assert.ErrorIs(t, err, booking.ErrPrecondition, target)
				assert.False(t, booking.IsRetryable(err), target)
				assert.Equal(t, before, p, target)
			}
			assert.Equal(t, before, sess.Partition())
		})
	}

	_, err = e.ApplyTransition(ctx, booking.NewSession(adminActor), "b1", booking.StatusCancelled, "")
	assert.ErrorIs(t, err, booking.ErrPrecondition)

	gw.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, rec.Keys())
}

func TestApplyTransition_CancelledIsFinal(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	e, rec := newEngine(gw)
	ctx := context.Background()
	client := booking.NewSession(clientActor)
	b := createOne(t, e, client)

	prov := providerSession(t, e)
	_, err := e.ApplyTransition(ctx, prov, b.ID, booking.StatusAccepted, "")
	require.NoError(t, err)
	_, err = e.ApplyTransition(ctx, prov, b.ID, booking.StatusCompleted, "")
	require.NoError(t, err)

	_, err = e.LoadBookings(ctx, client)
	require.NoError(t, err)
	_, err = e.ApplyTransition(ctx, client, b.ID, booking.StatusCancelled, "")
	require.NoError(t, err)
	eventsBefore := len(rec.Keys())

	_, err = e.LoadBookings(ctx, prov)
	require.NoError(t, err)
	for _, target := range []booking.Status{booking.StatusAccepted, booking.StatusDeclined, booking.StatusPaid} {
		p, err := e.ApplyTransition(ctx, prov, b.ID, target, "")
		assert.ErrorIs(t, err, booking.ErrPrecondition, target)
		assert.Equal(t, booking.BucketCancelled, bucketOf(t, p, b.ID), target)
	}
	for _, target := range []booking.Status{booking.StatusCancelled, booking.StatusPendingPayment} {
		_, err := e.ApplyTransition(ctx, client, b.ID, target, "")
		assert.ErrorIs(t, err, booking.ErrPrecondition, target)
	}
	assert.Len(t, rec.Keys(), eventsBefore)

	reloaded, err := e.LoadBookings(ctx, booking.NewSession(clientActor))
	require.NoError(t, err)
	require.Len(t, reloaded.Cancelled, 1)
	assert.Equal(t, string(booking.StatusCancelled), reloaded.Cancelled[0].Status)
}

func TestApplyTransition_GatewayFailureKeepsPartition(t *testing.T) {
	gw := mocks.NewGateway(t)
	e, rec := newEngine(gw)
	ctx := context.Background()

	stored, err := gateway.Encode(models.Booking{
		ID: "b1", Status: "Pending", Color: "#FFC107", ProviderID: providerActor.ID, UserID: clientActor.ID,
		CreatedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	gw.On("QueryByField", mock.Anything, gateway.CollectionBookings, "userId", clientActor.ID).
		Return([]gateway.Record{stored}, nil)
	gw.On("Update", mock.Anything, gateway.CollectionBookings, "b1", gateway.Record{"status": "Cancelled", "color": "#F44336"}).
		Return(false, errors.New("connection reset"))

	sess := booking.NewSession(clientActor)
	before, err := e.LoadBookings(ctx, sess)
	require.NoError(t, err)

	p, err := e.ApplyTransition(ctx, sess, "b1", booking.StatusCancelled, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, booking.ErrGateway)
	assert.True(t, booking.IsRetryable(err))
	assert.Equal(t, before, p)
	assert.Equal(t, before, sess.Partition())
	assert.Empty(t, rec.Keys())
}

func TestApplyTransition_GatewayTimeout(t *testing.T) {
	gw := mocks.NewGateway(t)
	e, _ := newEngine(gw)
	e.Timeout = 20 * time.Millisecond
	ctx := context.Background()

	stored, err := gateway.Encode(models.Booking{ID: "b1", Status: "Pending", UserID: clientActor.ID})
	require.NoError(t, err)
	gw.On("QueryByField", mock.Anything, gateway.CollectionBookings, "userId", clientActor.ID).
		Return([]gateway.Record{stored}, nil)
	gw.On("Update", mock.Anything, gateway.CollectionBookings, "b1", mock.Anything).
		Return(
			func(ctx context.Context, _, _ string, _ gateway.Record) bool {
				<-ctx.Done()
				return false
			},
			func(ctx context.Context, _, _ string, _ gateway.Record) error {
				return ctx.Err()
			},
		)

	sess := booking.NewSession(clientActor)
	_, err = e.LoadBookings(ctx, sess)
	require.NoError(t, err)

	_, err = e.ApplyTransition(ctx, sess, "b1", booking.StatusCancelled, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, booking.ErrGateway)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, booking.IsRetryable(err))
}

func TestApplyTransition_RecordVanishedRemotely(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	e, _ := newEngine(gw)
	ctx := context.Background()
	sess := booking.NewSession(clientActor)
	b := createOne(t, e, sess)

	_, err := gw.Delete(ctx, gateway.CollectionBookings, b.ID)
	require.NoError(t, err)

	p, err := e.ApplyTransition(ctx, sess, b.ID, booking.StatusCancelled, "")
	assert.ErrorIs(t, err, booking.ErrNotFound)
	got, _, ok := p.Find(b.ID)
	require.True(t, ok)
	assert.Equal(t, string(booking.StatusPending), got.Status)
}

func TestApplyTransition_PublishFailureDoesNotFail(t *testing.T) {
	e, rec := newEngine(gateway.NewMemoryGateway())
	sess := booking.NewSession(clientActor)
	b := createOne(t, e, sess)
	rec.Err = errors.New("broker down")

	p, err := e.ApplyTransition(context.Background(), sess, b.ID, booking.StatusCancelled, "")
	require.NoError(t, err)
	assert.Len(t, p.Cancelled, 1)
}

func TestLoadBookings_ClientAndProviderViewsAgree(t *testing.T) {
	e, _ := newEngine(gateway.NewMemoryGateway())
	ctx := context.Background()
	sess := booking.NewSession(clientActor)

	targets := []booking.Status{
		booking.StatusPending, booking.StatusAccepted, booking.StatusConfirmed,
		booking.StatusCompleted, booking.StatusPendingPayment, booking.StatusPendingConfirmation,
		booking.StatusPaid, booking.StatusCancelled, booking.StatusDeclined,
	}
	for _, target := range targets {
		b := createOne(t, e, sess)
		if target != booking.StatusPending {
			_, err := e.ApplyTransition(ctx, sessionFor(t, e, target), b.ID, target, "")
			require.NoError(t, err)
		}
	}

	clientView, err := e.LoadBookings(ctx, booking.NewSession(clientActor))
	require.NoError(t, err)
	providerView, err := e.LoadBookings(ctx, booking.NewSession(providerActor))
	require.NoError(t, err)

	assert.Equal(t, clientView, providerView)
	assert.Len(t, clientView.Pending, 3)
	assert.Len(t, clientView.Completed, 4)
	assert.Len(t, clientView.Cancelled, 2)

	for _, bucket := range booking.Buckets {
		for _, b := range clientView.Bucket(bucket) {
			assert.Equal(t, bucket, booking.Classify(booking.Status(b.Status)))
		}
	}
}

func TestLoadBookings_Idempotent(t *testing.T) {
	e, _ := newEngine(gateway.NewMemoryGateway())
	ctx := context.Background()
	sess := booking.NewSession(clientActor)
	for i := 0; i < 4; i++ {
		createOne(t, e, sess)
	}
	b := createOne(t, e, sess)
	_, err := e.ApplyTransition(ctx, providerSession(t, e), b.ID, booking.StatusPaid, "Card")
	require.NoError(t, err)

	first, err := e.LoadBookings(ctx, sess)
	require.NoError(t, err)
	second, err := e.LoadBookings(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadBookings_UnknownPersistedStatusIsPending(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	e, _ := newEngine(gw)
	ctx := context.Background()

	_, err := gw.Insert(ctx, gateway.CollectionBookings, gateway.Record{
		"status": "Rescheduled", "color": "#FFC107", "userId": clientActor.ID, "providerId": providerActor.ID,
	})
	require.NoError(t, err)

	p, err := e.LoadBookings(ctx, booking.NewSession(clientActor))
	require.NoError(t, err)
	assert.Len(t, p.Pending, 1)
}

func TestLoadBookings_MalformedRecord(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	e, _ := newEngine(gw)
	ctx := context.Background()

	_, err := gw.Insert(ctx, gateway.CollectionBookings, gateway.Record{"userId": clientActor.ID, "status": 42})
	require.NoError(t, err)

	_, err = e.LoadBookings(ctx, booking.NewSession(clientActor))
	require.Error(t, err)
	assert.ErrorIs(t, err, booking.ErrGateway)
}

func TestLoadBookings_Preconditions(t *testing.T) {
	e, _ := newEngine(gateway.NewMemoryGateway())
	ctx := context.Background()

	_, err := e.LoadBookings(ctx, nil)
	assert.ErrorIs(t, err, booking.ErrPrecondition)

	_, err = e.LoadBookings(ctx, booking.NewSession(adminActor))
	assert.ErrorIs(t, err, booking.ErrPrecondition)
	assert.False(t, booking.IsRetryable(err))
}

func TestCreateBooking_ProviderUnavailable(t *testing.T) {
	gw := mocks.NewGateway(t)
	e, _ := newEngine(gw)
	unavailable := false

	req := bobRequest()
	req.Provider.IsAvailable = &unavailable

	_, err := e.CreateBooking(context.Background(), booking.NewSession(clientActor), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, booking.ErrPrecondition)
	assert.Contains(t, err.Error(), "provider unavailable")
	gw.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_AvailableProvider(t *testing.T) {
	e, _ := newEngine(gateway.NewMemoryGateway())
	available := true
	req := bobRequest()
	req.Provider.IsAvailable = &available

	p, err := e.CreateBooking(context.Background(), booking.NewSession(clientActor), req)
	require.NoError(t, err)
	assert.Len(t, p.Pending, 1)
}

func TestCreateBooking_Validation(t *testing.T) {
	gw := mocks.NewGateway(t)
	e, _ := newEngine(gw)
	ctx := context.Background()
	sess := booking.NewSession(clientActor)

	tests := map[string]func(*booking.CreateRequest){
		"missing date":     func(r *booking.CreateRequest) { r.Date = "" },
		"missing time":     func(r *booking.CreateRequest) { r.Time = " " },
		"bad date":         func(r *booking.CreateRequest) { r.Date = "20/10/2026" },
		"bad time":         func(r *booking.CreateRequest) { r.Time = "2pm" },
		"missing provider": func(r *booking.CreateRequest) { r.Provider.ID = "" },
		"missing service": func(r *booking.CreateRequest) {
			r.Service = models.ServiceSnapshot{}
			r.Provider.ServiceType = ""
		},
		"completed start": func(r *booking.CreateRequest) { r.InitialStatus = booking.StatusCompleted },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			req := bobRequest()
			mutate(&req)
			_, err := e.CreateBooking(ctx, sess, req)
			assert.ErrorIs(t, err, booking.ErrValidation)
		})
	}
	gw.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_Preconditions(t *testing.T) {
	e, _ := newEngine(gateway.NewMemoryGateway())
	ctx := context.Background()

	_, err := e.CreateBooking(ctx, nil, bobRequest())
	assert.ErrorIs(t, err, booking.ErrPrecondition)

	_, err = e.CreateBooking(ctx, booking.NewSession(adminActor), bobRequest())
	assert.ErrorIs(t, err, booking.ErrPrecondition)
}

func TestCreateBooking_Confirmed(t *testing.T) {
	e, _ := newEngine(gateway.NewMemoryGateway())
	req := bobRequest()
	req.InitialStatus = booking.StatusConfirmed

	p, err := e.CreateBooking(context.Background(), booking.NewSession(clientActor), req)
	require.NoError(t, err)
	require.Len(t, p.Pending, 1)
	assert.Equal(t, "Confirmed", p.Pending[0].Status)
	assert.Equal(t, "#F5A623", p.Pending[0].Color)
}

func TestCreateBooking_ServiceFallsBackToProviderType(t *testing.T) {
	e, _ := newEngine(gateway.NewMemoryGateway())
	req := bobRequest()
	req.Service = models.ServiceSnapshot{}

	p, err := e.CreateBooking(context.Background(), booking.NewSession(clientActor), req)
	require.NoError(t, err)
	assert.Equal(t, "Plumbing", p.Pending[0].Service)
}

func TestCreateBooking_InsertFailure(t *testing.T) {
	gw := mocks.NewGateway(t)
	e, rec := newEngine(gw)
	gw.On("Insert", mock.Anything, gateway.CollectionBookings, mock.Anything).Return("", errors.New("write concern"))

	sess := booking.NewSession(clientActor)
	p, err := e.CreateBooking(context.Background(), sess, bobRequest())
	assert.ErrorIs(t, err, booking.ErrGateway)
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, rec.Keys())
}

func TestCreateBooking_ReloadFailureFallsBackToLocalInsert(t *testing.T) {
	gw := mocks.NewGateway(t)
	e, _ := newEngine(gw)
	gw.On("Insert", mock.Anything, gateway.CollectionBookings, mock.MatchedBy(func(r gateway.Record) bool {
		return r["status"] == "Pending" && r["color"] == "#FFC107" && r["userId"] == clientActor.ID
	})).Return("b-new", nil)
	gw.On("QueryByField", mock.Anything, gateway.CollectionBookings, "userId", clientActor.ID).
		Return(nil, errors.New("read timeout"))

	sess := booking.NewSession(clientActor)
	p, err := e.CreateBooking(context.Background(), sess, bobRequest())
	require.NoError(t, err)
	require.Len(t, p.Pending, 1)
	assert.Equal(t, "b-new", p.Pending[0].ID)
	assert.Equal(t, p, sess.Partition())
}

func TestDeleteBooking(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	e, rec := newEngine(gw)
	ctx := context.Background()
	sess := booking.NewSession(clientActor)
	keep := createOne(t, e, sess)
	drop := createOne(t, e, sess)
	_, err := e.ApplyTransition(ctx, sess, drop.ID, booking.StatusCancelled, "")
	require.NoError(t, err)

	p, err := e.DeleteBooking(ctx, sess, drop.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, p.IDs())
	assert.Equal(t, 1, gw.Len(gateway.CollectionBookings))
	assert.Contains(t, rec.Keys(), events.KeyBookingDeleted)

	_, err = e.DeleteBooking(ctx, sess, drop.ID)
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestDeleteBooking_OtherActorsBooking(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	e, _ := newEngine(gw)
	ctx := context.Background()
	b := createOne(t, e, booking.NewSession(clientActor))

	_, err := e.DeleteBooking(ctx, booking.NewSession(otherClient), b.ID)
	assert.ErrorIs(t, err, booking.ErrNotFound)
	assert.Equal(t, 1, gw.Len(gateway.CollectionBookings))

	_, err = e.DeleteBooking(ctx, booking.NewSession(adminActor), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gw.Len(gateway.CollectionBookings))
}

func TestClearAllBookings(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	e, rec := newEngine(gw)
	ctx := context.Background()

	client := booking.NewSession(clientActor)
	createOne(t, e, client)
	createOne(t, e, booking.NewSession(otherClient))
	b := createOne(t, e, client)
	_, err := e.ApplyTransition(ctx, providerSession(t, e), b.ID, booking.StatusPaid, "Cash")
	require.NoError(t, err)

	err = e.ClearAllBookings(ctx, client)
	assert.ErrorIs(t, err, booking.ErrPrecondition)
	assert.Equal(t, 3, gw.Len(gateway.CollectionBookings))

	require.NoError(t, e.ClearAllBookings(ctx, booking.NewSession(adminActor)))
	assert.Contains(t, rec.Keys(), events.KeyBookingsPurged)

	for _, actor := range []models.Actor{clientActor, otherClient, providerActor} {
		p, err := e.LoadBookings(ctx, booking.NewSession(actor))
		require.NoError(t, err)
		assert.Equal(t, booking.EmptyPartition(), p, actor.ID)
	}
}

func TestClearAllBookings_GatewayFailure(t *testing.T) {
	gw := mocks.NewGateway(t)
	e, _ := newEngine(gw)
	gw.On("DeleteAll", mock.Anything, gateway.CollectionBookings).Return(false, errors.New("not primary"))

	err := e.ClearAllBookings(context.Background(), booking.NewSession(adminActor))
	assert.ErrorIs(t, err, booking.ErrGateway)
}
