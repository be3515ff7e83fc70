// Package payment provides the Stripe-backed implementation of the
// PaymentService domain interface.
package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"

	"storefront/config"
	"storefront/internal/domain/service"
)

const (
	defaultCurrency        = "usd"
	defaultCheckoutTimeout = 10 * time.Second
)

// stripeService creates hosted checkout sessions through the Stripe API.
type stripeService struct {
	currency string
	timeout  time.Duration
	logger   *slog.Logger
}

// NewStripeService is the constructor for stripeService. It sets the package
// level API key, which the Stripe SDK reads for every subsequent call.
func NewStripeService(cfg *config.Config, logger *slog.Logger) (service.PaymentService, error) {
	if cfg.Stripe == nil || cfg.Stripe.SecretKey == "" {
		return nil, errors.New("stripe secret key must be provided")
	}

	stripe.Key = cfg.Stripe.SecretKey

	currency := cfg.Stripe.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	timeout := cfg.Stripe.CheckoutTimeout
	if timeout <= 0 {
		timeout = defaultCheckoutTimeout
	}

	return &stripeService{
		currency: currency,
		timeout:  timeout,
		logger:   logger,
	}, nil
}

// CreateCheckoutSession requests a hosted checkout session from Stripe.
// One attempt per call; the ctx (tightened by the configured timeout) bounds
// the HTTP round trip.
func (s *stripeService) CreateCheckoutSession(ctx context.Context, input service.CreateCheckoutInput) (*service.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(input.LineItems))
	for _, item := range input.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(s.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(item.Name),
					Description: stripe.String(item.Description),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(input.SuccessURL),
		CancelURL:  stripe.String(input.CancelURL),
	}
	params.Context = ctx
	// The order id rides along as metadata so provider-side records can be
	// matched back to ours during reconciliation.
	params.AddMetadata("order_id", input.OrderID.String())

	sess, err := session.New(params)
	if err != nil {
		s.logger.Error("Stripe checkout session creation failed",
			slog.Any("orderID", input.OrderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "stripe: failed to create checkout session")
	}

	s.logger.Info("Created Stripe checkout session",
		slog.Any("orderID", input.OrderID), slog.String("sessionID", sess.ID))

	return &service.CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}
