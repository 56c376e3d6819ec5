package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/logger"
	"instrument-rental-backend/internal/metrics"
)

// StripeProcessor drives payments through the Stripe API.
type StripeProcessor struct {
	sc      *client.API
	timeout time.Duration
}

func NewStripeProcessor(secretKey string, timeout time.Duration) *StripeProcessor {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeProcessor{sc: sc, timeout: timeout}
}

func (p *StripeProcessor) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	logger.ExternalServiceCall("stripe", "create_payment_intent")
	pi, err := p.sc.PaymentIntents.New(params)
	if err != nil {
		logger.ExternalServiceResult("stripe", "create_payment_intent", err)
		metrics.IncProcessorCall("create_payment_intent", "error")
		return nil, wrapStripeErr(err, "create payment intent")
	}
	logger.ExternalServiceResult("stripe", "create_payment_intent", nil)
	metrics.IncProcessorCall("create_payment_intent", "ok")
	return toIntent(pi), nil
}

func (p *StripeProcessor) GetIntent(ctx context.Context, intentID string) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	params.AddExpand("latest_charge")

	pi, err := p.sc.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, wrapStripeErr(err, "retrieve payment intent")
	}
	return toIntent(pi), nil
}

func (p *StripeProcessor) RefundCharge(ctx context.Context, chargeID string, metadata map[string]string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.RefundParams{
		Charge: stripe.String(chargeID),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	logger.ExternalServiceCall("stripe", "create_refund")
	ref, err := p.sc.Refunds.New(params)
	if err != nil {
		logger.ExternalServiceResult("stripe", "create_refund", err)
		metrics.IncProcessorCall("create_refund", "error")
		return "", wrapStripeErr(err, "create refund")
	}
	logger.ExternalServiceResult("stripe", "create_refund", nil)
	metrics.IncProcessorCall("create_refund", "ok")
	return ref.ID, nil
}

func toIntent(pi *stripe.PaymentIntent) *Intent {
	out := &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}
	if pi.LatestCharge != nil {
		out.ChargeID = pi.LatestCharge.ID
	}
	return out
}

func wrapStripeErr(err error, op string) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		return domain.PaymentFailed(fmt.Sprintf("%s: %s", op, se.Msg), err)
	}
	return domain.PaymentFailed(fmt.Sprintf("%s failed", op), err)
}
