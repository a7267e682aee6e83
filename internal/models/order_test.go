package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	// Allowed moves, including the direct-deploy shortcuts
	assert.True(t, CanTransition(StatusPending, StatusShipped))
	assert.True(t, CanTransition(StatusPending, StatusDeployed))
	assert.True(t, CanTransition(StatusShipped, StatusDelivered))
	assert.True(t, CanTransition(StatusShipped, StatusDeployed))
	assert.True(t, CanTransition(StatusDelivered, StatusDeployed))

	// Backward and repeated moves are rejected
	assert.False(t, CanTransition(StatusShipped, StatusPending))
	assert.False(t, CanTransition(StatusDelivered, StatusShipped))
	assert.False(t, CanTransition(StatusPending, StatusPending))
	assert.False(t, CanTransition(StatusShipped, StatusShipped))

	// PENDING cannot skip to DELIVERED
	assert.False(t, CanTransition(StatusPending, StatusDelivered))

	// DEPLOYED is terminal, whatever the target
	assert.False(t, CanTransition(StatusDeployed, StatusPending))
	assert.False(t, CanTransition(StatusDeployed, StatusShipped))
	assert.False(t, CanTransition(StatusDeployed, StatusDelivered))
	assert.False(t, CanTransition(StatusDeployed, StatusDeployed))
	assert.Empty(t, AllowedTransitions(StatusDeployed))
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusDeployed.Valid())
	assert.False(t, OrderStatus("CANCELLED").Valid())
	assert.False(t, OrderStatus("pending").Valid())
}

func TestApplyTransition_Ship(t *testing.T) {
	order := &Order{ID: "order-1", Status: StatusPending}
	now := time.Now()

	tracking := &TrackingInfo{
		Carrier:           "UPS",
		TrackingNumber:    "1Z999",
		EstimatedDelivery: "2026-09-05",
	}
	entry, err := order.ApplyTransition(StatusShipped, "left warehouse", tracking, now)
	assert.NoError(t, err)

	assert.Equal(t, StatusShipped, order.Status)
	assert.NotNil(t, order.ShippedAt)
	assert.Equal(t, now, *order.ShippedAt)
	assert.Nil(t, order.DeliveredAt)
	assert.Nil(t, order.DeployedAt)
	assert.Equal(t, "UPS", order.Carrier)
	assert.Equal(t, "1Z999", order.TrackingNumber)
	assert.Equal(t, "2026-09-05", order.EstimatedDelivery)

	assert.Equal(t, "order-1", entry.OrderID)
	assert.Equal(t, StatusPending, entry.FromStatus)
	assert.Equal(t, StatusShipped, entry.ToStatus)
	assert.Equal(t, "left warehouse", entry.Notes)
}

func TestApplyTransition_InvalidLeavesOrderUnchanged(t *testing.T) {
	shippedAt := time.Now().Add(-time.Hour)
	order := &Order{ID: "order-1", Status: StatusShipped, ShippedAt: &shippedAt}

	entry, err := order.ApplyTransition(StatusPending, "", nil, time.Now())
	assert.Nil(t, entry)
	assert.Error(t, err)

	var transitionErr *InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, StatusShipped, transitionErr.From)
	assert.Equal(t, StatusPending, transitionErr.To)
	assert.Contains(t, err.Error(), "SHIPPED")
	assert.Contains(t, err.Error(), "DELIVERED, DEPLOYED")

	// Untouched
	assert.Equal(t, StatusShipped, order.Status)
	assert.Equal(t, shippedAt, *order.ShippedAt)
}

func TestApplyTransition_TerminalState(t *testing.T) {
	deployedAt := time.Now().Add(-time.Hour)
	order := &Order{ID: "order-1", Status: StatusDeployed, DeployedAt: &deployedAt}

	for _, target := range []OrderStatus{StatusPending, StatusShipped, StatusDelivered, StatusDeployed} {
		_, err := order.ApplyTransition(target, "", nil, time.Now())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "terminal state")
	}
	assert.Equal(t, deployedAt, *order.DeployedAt)
}

func TestApplyTransition_TrackingIgnoredOutsideShipped(t *testing.T) {
	order := &Order{ID: "order-1", Status: StatusShipped}
	shippedAt := time.Now()
	order.ShippedAt = &shippedAt

	tracking := &TrackingInfo{Carrier: "FedEx", TrackingNumber: "XYZ"}
	_, err := order.ApplyTransition(StatusDelivered, "", tracking, time.Now())
	assert.NoError(t, err)

	// Tracking details only attach on the SHIPPED transition
	assert.Empty(t, order.Carrier)
	assert.Empty(t, order.TrackingNumber)
	assert.NotNil(t, order.DeliveredAt)
}

func TestApplyTransition_FullLifecycleStampsEachTimestampOnce(t *testing.T) {
	order := &Order{ID: "order-1", Status: StatusPending}

	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	t3 := t2.Add(24 * time.Hour)

	_, err := order.ApplyTransition(StatusShipped, "", nil, t1)
	assert.NoError(t, err)
	_, err = order.ApplyTransition(StatusDelivered, "", nil, t2)
	assert.NoError(t, err)
	_, err = order.ApplyTransition(StatusDeployed, "", nil, t3)
	assert.NoError(t, err)

	assert.Equal(t, t1, *order.ShippedAt)
	assert.Equal(t, t2, *order.DeliveredAt)
	assert.Equal(t, t3, *order.DeployedAt)
	assert.Equal(t, StatusDeployed, order.Status)
}

func TestOrderItemsValueScanRoundTrip(t *testing.T) {
	items := OrderItems{
		{ProductID: "prod-1", Title: "ThinkPad X1", SKU: "LT-1", UnitPrice: 1499.00, Quantity: 5},
		{ProductID: "prod-2", Title: "UltraSharp 27", UnitPrice: 429.00, Quantity: 10},
	}

	value, err := items.Value()
	assert.NoError(t, err)

	var decoded OrderItems
	assert.NoError(t, decoded.Scan(value))
	assert.Equal(t, items, decoded)

	var fromNil OrderItems
	assert.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)
}
