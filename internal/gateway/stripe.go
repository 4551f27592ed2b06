// Package gateway wraps the external payment provider. The backend
// only ever asks it for a client secret; the charge itself is confirmed
// client side.
package gateway

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"parcelpro/internal/apperr"
)

// PaymentIntents creates payment intents against Stripe.
type PaymentIntents struct {
	client *client.API
}

func NewPaymentIntents(apiKey string) *PaymentIntents {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &PaymentIntents{client: sc}
}

// CreateIntent registers an intent for the given amount and returns the
// opaque client secret the frontend uses to confirm the charge.
func (g *PaymentIntents) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	if amountCents <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", apperr.Invalid)
	}
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
