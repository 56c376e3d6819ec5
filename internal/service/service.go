package service

import (
	"context"

	"instrument-rental-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name, phone string, userType domain.UserType) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Profile(ctx context.Context, userID int32) (*domain.User, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, callerID, userID int32, name, phone string) (*domain.User, error)
	DeleteUser(ctx context.Context, callerID, userID int32) error
}

type InstrumentService interface {
	AddInstrument(ctx context.Context, instrument *domain.Instrument) error
	GetInstrument(ctx context.Context, id int32) (*domain.Instrument, error)
	ListInstruments(ctx context.Context, category string) ([]domain.Instrument, error)
	// ListAvailable returns catalog entries that have at least one available copy.
	ListAvailable(ctx context.Context) ([]domain.Ownership, error)
}

type OwnershipService interface {
	AddOwnership(ctx context.Context, ownerID int32, ownership *domain.Ownership) error
	GetOwnership(ctx context.Context, id int32) (*domain.Ownership, error)
	ListAvailable(ctx context.Context) ([]domain.Ownership, error)
	ListMyInstruments(ctx context.Context, ownerID int32) ([]domain.Ownership, error)
	UpdateOwnership(ctx context.Context, callerID int32, ownership *domain.Ownership) error
	DeleteOwnership(ctx context.Context, callerID, ownershipID int32) error
}

type RentalService interface {
	CreateRental(ctx context.Context, renterID, ownershipID int32, startDate, endDate string) (*domain.Rental, error)
	GetRental(ctx context.Context, callerID, rentalID int32) (*domain.Rental, error)
	ListMyRentals(ctx context.Context, renterID int32) ([]domain.Rental, error)
	ListMyLendings(ctx context.Context, ownerID int32) ([]domain.Rental, error)
	CancelRental(ctx context.Context, callerID, rentalID int32) error
	ReturnRental(ctx context.Context, callerID, rentalID int32) (*domain.Rental, error)
}

// PaymentInitiation is what the client needs to complete a charge: the
// processor's client secret plus the display amounts.
type PaymentInitiation struct {
	Payment      *domain.Payment `json:"payment"`
	ClientSecret string          `json:"client_secret"`
	TotalAmount  float64         `json:"total_amount"`
	Currency     string          `json:"currency"`
}

type PaymentService interface {
	InitiatePayment(ctx context.Context, callerID, rentalID int32) (*PaymentInitiation, error)
	ConfirmPayment(ctx context.Context, callerID, rentalID int32) (*domain.Payment, error)
	RefundPayment(ctx context.Context, callerID, paymentID int32) (*domain.Payment, error)
	GetPayment(ctx context.Context, callerID, paymentID int32) (*domain.Payment, error)
	ListMyPayments(ctx context.Context, userID int32) ([]domain.Payment, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, renterID, rentalID, rating int32, comment string) (*domain.Review, error)
	GetReview(ctx context.Context, id int32) (*domain.Review, error)
	ListReviews(ctx context.Context, ownershipID, rating int32) ([]domain.Review, error)
	ListOwnerReviews(ctx context.Context, ownerID int32) ([]domain.Review, error)
	UpdateReview(ctx context.Context, callerID, reviewID, rating int32, comment string) (*domain.Review, error)
	DeleteReview(ctx context.Context, callerID, reviewID int32) error
	OwnershipStats(ctx context.Context, ownershipID int32) (*domain.ReviewStats, error)
}

type SurveyService interface {
	SubmitSurvey(ctx context.Context, userID int32, survey *domain.SurveyResponse) error
	GetMySurvey(ctx context.Context, userID int32) (*domain.SurveyResponse, error)
	UpdateSurvey(ctx context.Context, userID int32, survey *domain.SurveyResponse) (*domain.SurveyResponse, error)
	DeleteSurvey(ctx context.Context, userID int32) error
}

// Recommendation is one scored listing in a recommendation response.
type Recommendation struct {
	OwnershipID   int32   `json:"id"`
	InstrumentID  int32   `json:"instrument_id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand,omitempty"`
	Model         string  `json:"model,omitempty"`
	Description   string  `json:"description,omitempty"`
	DailyRate     float64 `json:"daily_rate"`
	Location      string  `json:"location,omitempty"`
	Condition     string  `json:"condition"`
	AverageRating float64 `json:"average_rating"`
	MatchScore    int32   `json:"match_score"`
	Reasoning     string  `json:"reasoning"`
}

// RecommendationResult is the needs-based recommendation response.
type RecommendationResult struct {
	Recommendations   []Recommendation `json:"recommendations"`
	TotalAvailable    int32            `json:"total_available"`
	MatchedCount      int32            `json:"matched_count"`
	NeedsAnalyzed     string           `json:"user_needs_analyzed,omitempty"`
	MatchedCategories []string         `json:"matched_categories,omitempty"`
	Message           string           `json:"message,omitempty"`
}

type RecommendationService interface {
	RecommendByNeeds(ctx context.Context, needs string, budget *float64) (*RecommendationResult, error)
	// RecommendForUser blends the user's survey profile and rental history
	// into a needs query before scoring.
	RecommendForUser(ctx context.Context, userID int32) (*RecommendationResult, error)
}

// ChatReply carries one assistant turn plus any structured recommendations
// extracted from the model output.
type ChatReply struct {
	SessionID       string           `json:"session_id"`
	Response        string           `json:"response"`
	Recommendations []map[string]any `json:"recommendations,omitempty"`
}

type ChatbotService interface {
	Chat(ctx context.Context, userID int32, sessionID, message string) (*ChatReply, error)
	// AskInstrumentQuestion and RecommendForMe are prompt-framing wrappers
	// around Chat.
	AskInstrumentQuestion(ctx context.Context, userID int32, sessionID, question string) (*ChatReply, error)
	RecommendForMe(ctx context.Context, userID int32, sessionID, preference string) (*ChatReply, error)
	History(ctx context.Context, userID int32, sessionID string) ([]domain.ChatMessage, error)
	Sessions(ctx context.Context, userID int32) ([]domain.ChatSession, error)
	ClearSession(ctx context.Context, userID int32, sessionID string) (int32, error)
}

// DashboardStats is role-shaped: renters see spend, owners see earnings.
type DashboardStats struct {
	UserType   domain.UserType    `json:"user_type"`
	Statistics map[string]float64 `json:"statistics"`
}

type Dashboard struct {
	User          *domain.User       `json:"user_info"`
	Statistics    map[string]float64 `json:"statistics"`
	RecentRentals []domain.Rental    `json:"recent_rentals"`
	Instruments   []domain.Ownership `json:"instruments,omitempty"`
}

type DashboardService interface {
	Stats(ctx context.Context, userID int32) (*DashboardStats, error)
	OwnerDashboard(ctx context.Context, ownerID int32) (*Dashboard, error)
	RenterDashboard(ctx context.Context, renterID int32) (*Dashboard, error)
}

type EmailService interface {
	SendRentalBookedNotification(ctx context.Context, ownerEmail, renterName, instrumentName, startDate, endDate string) error
	SendRentalCancelledNotification(ctx context.Context, ownerEmail, renterName, instrumentName string) error
	SendReturnConfirmation(ctx context.Context, ownerEmail, renterName, instrumentName string) error
	SendReturnReminder(ctx context.Context, renterEmail, renterName, instrumentName, endDate string) error
	SendPaymentReceipt(ctx context.Context, renterEmail, instrumentName string, amount float64) error
}
