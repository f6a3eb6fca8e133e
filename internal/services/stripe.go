package services

import (
	"errors"
	"math"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
)

// ErrStripeNotConfigured is returned when no secret key was provided.
var ErrStripeNotConfigured = errors.New("stripe secret key is not configured")

// StripeService wraps payment-intent creation and webhook verification for
// the card processor.
type StripeService struct {
	webhookSecret string
	log           *zap.Logger
}

// NewStripeService configures the Stripe client with the given secret key.
func NewStripeService(secretKey, webhookSecret string, log *zap.Logger) *StripeService {
	stripe.Key = secretKey
	return &StripeService{webhookSecret: webhookSecret, log: log}
}

// CreatePaymentIntent registers a card payment for the given USD amount and
// returns the intent whose client secret the browser uses to confirm it.
func (s *StripeService) CreatePaymentIntent(amount float64) (*stripe.PaymentIntent, error) {
	if stripe.Key == "" {
		return nil, ErrStripeNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(math.Round(amount * 100))),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		s.log.Error("payment intent creation failed", zap.Error(err))
		return nil, err
	}
	return pi, nil
}

// VerifyWebhook checks the Stripe signature header and parses the event.
func (s *StripeService) VerifyWebhook(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}
