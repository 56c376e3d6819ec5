package domain

// Instrument is a catalog entry describing a type of instrument. Rentable
// physical copies are tracked separately as Ownership records.
type Instrument struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	CreatedOn   string `json:"created_on"`
}
