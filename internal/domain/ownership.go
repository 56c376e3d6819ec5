package domain

type OwnershipCondition string

const (
	OwnershipConditionExcellent OwnershipCondition = "excellent"
	OwnershipConditionGood      OwnershipCondition = "good"
	OwnershipConditionFair      OwnershipCondition = "fair"
)

// Ownership is a specific rentable copy of an Instrument owned by a user.
// IsAvailable is the single source of truth for whether a new rental may
// target this copy; rental and payment transitions flip it.
type Ownership struct {
	ID           int32              `json:"id"`
	UserID       int32              `json:"user_id"`
	InstrumentID int32              `json:"instrument_id"`
	Condition    OwnershipCondition `json:"condition"`
	DailyRate    float64            `json:"daily_rate"`
	ImageURL     string             `json:"image_url,omitempty"`
	Location     string             `json:"location,omitempty"`
	IsAvailable  bool               `json:"is_available"`
	CreatedOn    string             `json:"created_on"`

	Instrument *Instrument `json:"instrument,omitempty"` // Populated when fetching details
}

// Listing is an available Ownership joined with its Instrument and review
// aggregate, as consumed by the recommendation scorer and the chatbot.
type Listing struct {
	OwnershipID int32              `json:"id"`
	Instrument  Instrument         `json:"instrument"`
	OwnerID     int32              `json:"owner_id"`
	Condition   OwnershipCondition `json:"condition"`
	DailyRate   float64            `json:"daily_rate"`
	Location    string             `json:"location,omitempty"`
	AvgRating   float64            `json:"average_rating"`
	ReviewCount int32              `json:"review_count"`
}
