package processor

import "context"

// Intent mirrors the processor's representation of an in-progress charge.
// Only opaque references cross this boundary; card data never does.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	ChargeID     string
}

const (
	IntentStatusSucceeded             = "succeeded"
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
)

// PaymentProcessor abstracts the external payment service. Amounts are
// integer minor-currency units (cents).
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error)
	GetIntent(ctx context.Context, intentID string) (*Intent, error)
	RefundCharge(ctx context.Context, chargeID string, metadata map[string]string) (string, error)
}
