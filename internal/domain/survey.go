package domain

// SurveyResponse is the one-per-user preference record feeding the
// recommendation scorer and chatbot context.
type SurveyResponse struct {
	ID                   int32  `json:"id"`
	UserID               int32  `json:"user_id"`
	PreferredInstruments string `json:"preferred_instruments,omitempty"`
	ExperienceLevel      string `json:"experience_level,omitempty"`
	FavoriteGenres       string `json:"favorite_genres,omitempty"`
	BudgetRange          string `json:"budget_range,omitempty"`
	RentalFrequency      string `json:"rental_frequency,omitempty"`
	UseCase              string `json:"use_case,omitempty"`
	Location             string `json:"location,omitempty"`
	AdditionalNotes      string `json:"additional_notes,omitempty"`
	CreatedOn            string `json:"created_on"`
	UpdatedOn            string `json:"updated_on"`
}
