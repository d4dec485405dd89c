package tracking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"campusdelivery/internal/adapters/out/tracking"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) PublishOrderChanged(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.Details{
		PackageType:      "box",
		Weight:           "1kg",
		PickupBuilding:   "A",
		DeliveryBuilding: "B",
		DeliverySpeed:    "fast",
	}, time.Now())
	require.NoError(t, err)
	return o
}

func TestTracker_Orders(t *testing.T) {
	var tr tracking.Tracker
	a := newOrder(t)
	b := newOrder(t)
	aLater, err := order.RestoreOrder(a.ID(), a.StudentID(), nil, a.Details(), order.Pending, "proof", a.CreatedAt())
	require.NoError(t, err)

	tr.TrackAggregate(a.ID(), a)
	tr.TrackAggregate(kernel.NewUUID(), "not an order")
	tr.TrackAggregate(b.ID(), b)
	tr.TrackAggregate(a.ID(), aLater)

	got := tr.Orders()

	require.Len(t, got, 2)
	assert.Same(t, aLater, got[0])
	assert.Same(t, b, got[1])
}

func TestTracker_Flush(t *testing.T) {
	ctx := t.Context()

	t.Run("publishes each order once and resets", func(t *testing.T) {
		var tr tracking.Tracker
		a := newOrder(t)
		b := newOrder(t)
		tr.TrackAggregate(a.ID(), a)
		tr.TrackAggregate(b.ID(), b)
		tr.TrackAggregate(a.ID(), a)

		pub := &publisherMock{}
		mock.InOrder(
			pub.On("PublishOrderChanged", ctx, a).Return(errors.New("broker down")).Once(),
			pub.On("PublishOrderChanged", ctx, b).Return(nil).Once(),
		)

		tr.Flush(ctx, pub, nil)

		pub.AssertExpectations(t)
		assert.Empty(t, tr.Orders())
	})

	t.Run("nil publisher only resets", func(t *testing.T) {
		var tr tracking.Tracker
		o := newOrder(t)
		tr.TrackAggregate(o.ID(), o)

		tr.Flush(ctx, nil, nil)

		assert.Empty(t, tr.Orders())
	})
}
