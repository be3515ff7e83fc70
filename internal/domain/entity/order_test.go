package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderItem_PriceMinorUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		price string
		want  int64
	}{
		{name: "whole major units", price: "10", want: 1000},
		{name: "two decimal places", price: "15.50", want: 1550},
		{name: "half a major unit", price: "199.5", want: 19950},
		{name: "half a minor unit rounds up", price: "0.005", want: 1},
		{name: "below half a minor unit rounds down", price: "0.004", want: 0},
		{name: "sub-cent precision rounds half up", price: "15.555", want: 1556},
		{name: "zero", price: "0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			price, err := decimal.NewFromString(tt.price)
			require.NoError(t, err)

			item := OrderItem{Price: price}
			assert.Equal(t, tt.want, item.PriceMinorUnits())
		})
	}
}

func TestOrderStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, status := range []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	} {
		assert.True(t, status.IsValid(), status.String())
	}

	for _, status := range []OrderStatus{"", "pending", "Returned", "SHIPPED"} {
		assert.False(t, status.IsValid(), status.String())
	}
}

func TestOrderStatus_TransitionsAreUnconstrained(t *testing.T) {
	t.Parallel()

	// Any enumerated status may follow any other, including moving an already
	// shipped order back to pending.
	order := Order{Status: OrderStatusShipped}

	for _, next := range []OrderStatus{
		OrderStatusPending,
		OrderStatusCancelled,
		OrderStatusDelivered,
	} {
		require.True(t, next.IsValid())
		order.Status = next
		assert.Equal(t, next, order.Status)
	}
}
