package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// IsValid checks if the status is one of the enumerated states.
// The set of states is closed, but transitions between them are not
// constrained: an admin may move an order from any state to any other.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}

	return false
}

// String returns the string representation of OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// Order is the persisted record of a checkout transaction. It is created once
// at placement and afterwards mutated only through status transitions.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Items           []OrderItem
	DeliveryAddress string
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is one line of an order. Name, description and price are snapshots
// taken at placement time and never follow later catalog edits.
type OrderItem struct {
	ProductID   uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
}

// minorUnitsPerMajor converts major currency units to the smallest subdivision.
var minorUnitsPerMajor = decimal.NewFromInt(100)

// PriceMinorUnits returns the item's unit price in integer minor units
// (e.g. cents or paise), rounding half up. Money sent to the payment provider
// is always expressed in minor units to avoid floating-point drift.
func (i OrderItem) PriceMinorUnits() int64 {
	return i.Price.Mul(minorUnitsPerMajor).Round(0).IntPart()
}
