package domain

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// Rental links a renter to an Ownership for an inclusive date range.
// Status advances pending->active->completed, or pending->cancelled.
type Rental struct {
	ID               int32        `json:"id"`
	RenterID         int32        `json:"renter_id"`
	OwnershipID      int32        `json:"ownership_id"`
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
	ActualReturnDate *string      `json:"actual_return_date,omitempty"`
	TotalCost        float64      `json:"total_cost"`
	Status           RentalStatus `json:"status"`
	CreatedOn        string       `json:"created_on"`
}
