package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment tracks one charge workflow for a rental. Amounts are dollars;
// only processor-issued opaque references are stored, never card data.
type Payment struct {
	ID              int32         `json:"id"`
	RentalID        int32         `json:"rental_id"`
	RenterID        int32         `json:"renter_id"`
	OwnerID         int32         `json:"owner_id"`
	Amount          float64       `json:"amount"`
	PlatformFee     float64       `json:"platform_fee"`
	OwnerPayout     float64       `json:"owner_payout"`
	Status          PaymentStatus `json:"status"`
	PaymentMethod   string        `json:"payment_method,omitempty"`
	ProcessorIntent string        `json:"-"`
	ProcessorCharge string        `json:"-"`
	ErrorMessage    string        `json:"error_message,omitempty"`
	CreatedOn       time.Time     `json:"created_on"`
	UpdatedOn       time.Time     `json:"updated_on"`
	CompletedOn     *time.Time    `json:"completed_on,omitempty"`
}
