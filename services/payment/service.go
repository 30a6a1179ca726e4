// File: services/payment/service.go
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// Confirmation summarizes a checkout session for the payment-success screen.
type Confirmation struct {
	SessionID   string `json:"sessionId"`
	Paid        bool   `json:"paid"`
	AmountTotal int64  `json:"amountTotal"`
	Currency    string `json:"currency"`
}

// PaymentService confirms Stripe checkout sessions referenced by redirect
// URLs. Routing to the payment screens never depends on this; it only feeds
// the detail view.
type PaymentService interface {
	ConfirmCheckout(ctx context.Context, sessionID string) (*Confirmation, error)
}

// StripePaymentService is the production implementation backed by the Stripe
// API. The API key is set globally in main.
type StripePaymentService struct {
	Logger *zap.Logger
}

func (s *StripePaymentService) ConfirmCheckout(ctx context.Context, sessionID string) (*Confirmation, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := checkoutsession.Get(sessionID, params)
	if err != nil {
		s.Logger.Warn("checkout session lookup failed",
			zap.String("sessionID", sessionID), zap.Error(err))
		return nil, fmt.Errorf("failed to confirm checkout session: %w", err)
	}

	return &Confirmation{
		SessionID:   sess.ID,
		Paid:        sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal: sess.AmountTotal,
		Currency:    string(sess.Currency),
	}, nil
}
