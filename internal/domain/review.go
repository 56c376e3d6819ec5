package domain

// Review is attached to the specific Ownership that was rented, not the
// Instrument type, so distinct physical copies accumulate independent
// reputations. At most one review exists per rental.
type Review struct {
	ID          int32  `json:"id"`
	RentalID    int32  `json:"rental_id"`
	OwnershipID int32  `json:"ownership_id"`
	RenterID    int32  `json:"renter_id"`
	Rating      int32  `json:"rating"`
	Comment     string `json:"comment,omitempty"`
	RenterName  string `json:"renter_name,omitempty"` // Populated on read
	CreatedOn   string `json:"created_on"`
	UpdatedOn   string `json:"updated_on"`
}

// ReviewStats is recomputed from stored reviews on every call; there is no
// denormalized average to go stale after edits or deletes.
type ReviewStats struct {
	TotalReviews  int32          `json:"total_reviews"`
	AverageRating *float64       `json:"average_rating"`
	Distribution  map[int32]int32 `json:"rating_distribution"`
}
