package service

import (
	"context"

	"github.com/google/uuid"
)

// PaymentLineItem is one billable line of a checkout session. Amounts are in
// integer minor units (cents/paise); conversion from decimal prices happens
// before the provider boundary so no floating point ever crosses it.
type PaymentLineItem struct {
	Name        string
	Description string
	UnitAmount  int64 // Unit price in minor units.
	Quantity    int64
}

// CheckoutSession is a provider-hosted payment transaction the customer is
// redirected to.
type CheckoutSession struct {
	ID  string
	URL string
}

// CreateCheckoutInput carries everything the provider needs for one session.
type CreateCheckoutInput struct {
	OrderID    uuid.UUID
	LineItems  []PaymentLineItem
	SuccessURL string
	CancelURL  string
}

// PaymentService defines the interface to the external payment provider.
// A single attempt per call; retries are the caller's responsibility.
type PaymentService interface {
	// CreateCheckoutSession requests a hosted checkout session. The ctx bounds
	// the call; implementations must honor its deadline.
	CreateCheckoutSession(ctx context.Context, input CreateCheckoutInput) (*CheckoutSession, error)
}
