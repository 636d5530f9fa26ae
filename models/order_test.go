package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pendingOrder(createdAt time.Time) Order {
	return Order{
		ID:            "o1",
		CustomerName:  "Ana",
		Status:        OrderStatusPending,
		Type:          OrderTypeLocal,
		TotalAmount:   13.00,
		PaymentMethod: PaymentEfectivo,
		CreatedAt:     createdAt,
	}
}

func TestCompleteSetsTimestamp(t *testing.T) {
	now := time.Now()
	order := pendingOrder(now.Add(-5 * time.Minute))

	assert.NoError(t, order.Complete(now))
	assert.Equal(t, OrderStatusCompleted, order.Status)
	assert.NotNil(t, order.CompletedAt)
	assert.Nil(t, order.DeletedAt)
}

func TestSoftDeleteSetsTimestamp(t *testing.T) {
	now := time.Now()
	order := pendingOrder(now)

	assert.NoError(t, order.SoftDelete(now))
	assert.Equal(t, OrderStatusDeleted, order.Status)
	assert.NotNil(t, order.DeletedAt)
}

func TestNoDirectSwapBetweenTerminalStates(t *testing.T) {
	now := time.Now()

	completed := pendingOrder(now)
	assert.NoError(t, completed.Complete(now))
	assert.Error(t, completed.SoftDelete(now), "completed orders cannot be deleted directly")
	assert.Error(t, completed.Complete(now))

	deleted := pendingOrder(now)
	assert.NoError(t, deleted.SoftDelete(now))
	assert.Error(t, deleted.Complete(now), "deleted orders cannot be completed directly")
	assert.Error(t, deleted.SoftDelete(now))
}

func TestRestoreClearsBothTimestamps(t *testing.T) {
	now := time.Now()

	for _, setup := range []func(*Order) error{
		func(o *Order) error { return o.Complete(now) },
		func(o *Order) error { return o.SoftDelete(now) },
	} {
		order := pendingOrder(now)
		assert.NoError(t, setup(&order))

		assert.NoError(t, order.Restore())
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Nil(t, order.CompletedAt)
		assert.Nil(t, order.DeletedAt)
	}

	fresh := pendingOrder(now)
	assert.Error(t, fresh.Restore(), "pending orders have nothing to restore")
}

func TestElapsedMinutes(t *testing.T) {
	now := time.Now()
	order := pendingOrder(now.Add(-16*time.Minute - 30*time.Second))

	assert.Equal(t, 16, order.ElapsedMinutes(now))
}

func TestAtRiskFlag(t *testing.T) {
	now := time.Now()

	order := pendingOrder(now.Add(-16 * time.Minute))
	assert.True(t, order.AtRisk(now))

	young := pendingOrder(now.Add(-14 * time.Minute))
	assert.False(t, young.AtRisk(now))

	// A completed order is never at risk regardless of age.
	assert.NoError(t, order.Complete(now))
	assert.False(t, order.AtRisk(now))
}

func TestOrderItemCondimentsRoundTrip(t *testing.T) {
	item := OrderItem{}
	assert.NoError(t, item.SetCondiments([]string{"Mayonesa", "Ají"}))
	assert.Equal(t, []string{"Mayonesa", "Ají"}, item.GetCondiments())

	assert.NoError(t, item.SetCondiments(nil))
	assert.Nil(t, item.GetCondiments())
}
