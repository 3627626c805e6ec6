package services

import (
	"context"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// PaymentGateway abstracts the payment processor so the enrollment saga and
// its tests never touch the network.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, email string, metadata map[string]string) (*PaymentIntentRef, error)

	// CancelIntent is the compensation for CreateIntent.
	CancelIntent(ctx context.Context, intentID string) error
}

// PaymentIntentRef is the slice of the processor intent the rest of the
// service layer needs.
type PaymentIntentRef struct {
	ID           string
	ClientSecret string
	Status       string
}

type stripeGateway struct{}

// NewStripeGateway configures the stripe client with the secret key.
// All founding-program charges are BRL with card and pix enabled.
func NewStripeGateway(secretKey string) PaymentGateway {
	stripe.Key = secretKey
	return &stripeGateway{}
}

func (g *stripeGateway) CreateIntent(ctx context.Context, amount int64, email string, metadata map[string]string) (*PaymentIntentRef, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyBRL)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card", "pix"}),
	}
	params.Context = ctx
	if email != "" {
		params.ReceiptEmail = stripe.String(email)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return &PaymentIntentRef{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

func (g *stripeGateway) CancelIntent(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	_, err := paymentintent.Cancel(intentID, params)
	return err
}
