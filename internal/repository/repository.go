package repository

import (
	"context"

	"instrument-rental-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int32) error
	// HasDependents reports whether any rental, ownership, review, or payment
	// still references the user. Deletion is restricted while it does.
	HasDependents(ctx context.Context, id int32) (bool, error)
}

type InstrumentRepository interface {
	Create(ctx context.Context, instrument *domain.Instrument) error
	GetByID(ctx context.Context, id int32) (*domain.Instrument, error)
	List(ctx context.Context, category string) ([]domain.Instrument, error)
}

type OwnershipRepository interface {
	Create(ctx context.Context, ownership *domain.Ownership) error
	GetByID(ctx context.Context, id int32) (*domain.Ownership, error)
	// GetByIDForUpdate locks the ownership row for the duration of the
	// enclosing transaction so racing bookings serialize on it.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Ownership, error)
	ListAvailable(ctx context.Context) ([]domain.Ownership, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Ownership, error)
	// ListAvailableListings joins available ownerships with their instrument
	// and review aggregate for the recommendation and chatbot paths.
	ListAvailableListings(ctx context.Context) ([]domain.Listing, error)
	Update(ctx context.Context, ownership *domain.Ownership) error
	SetAvailability(ctx context.Context, id int32, available bool) error
	Delete(ctx context.Context, id int32) error
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	ListByRenter(ctx context.Context, renterID int32) ([]domain.Rental, error)
	// ListByOwner returns rentals targeting any ownership owned by the user.
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Rental, error)
	HasActiveByOwnership(ctx context.Context, ownershipID int32) (bool, error)
	// CategoriesByRenter lists the distinct instrument categories the renter
	// has previously rented, feeding the profile-based recommender.
	CategoriesByRenter(ctx context.Context, renterID int32) ([]string, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	GetByRental(ctx context.Context, rentalID int32) (*domain.Payment, error)
	GetByRentalAndStatus(ctx context.Context, rentalID int32, status domain.PaymentStatus) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id int32) (*domain.Review, error)
	GetByRental(ctx context.Context, rentalID int32) (*domain.Review, error)
	List(ctx context.Context, ownershipID, rating int32) ([]domain.Review, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id int32) error
	// StatsByOwnership recomputes count, mean, and the 1-5 histogram from the
	// currently stored reviews on every call.
	StatsByOwnership(ctx context.Context, ownershipID int32) (*domain.ReviewStats, error)
}

type SurveyRepository interface {
	Create(ctx context.Context, survey *domain.SurveyResponse) error
	GetByID(ctx context.Context, id int32) (*domain.SurveyResponse, error)
	GetByUser(ctx context.Context, userID int32) (*domain.SurveyResponse, error)
	Update(ctx context.Context, survey *domain.SurveyResponse) error
	Delete(ctx context.Context, id int32) error
}

type ChatRepository interface {
	Create(ctx context.Context, msg *domain.ChatMessage) error
	ListBySession(ctx context.Context, userID int32, sessionID string) ([]domain.ChatMessage, error)
	// ListRecentBySession returns at most limit messages, oldest first.
	ListRecentBySession(ctx context.Context, userID int32, sessionID string, limit int32) ([]domain.ChatMessage, error)
	ListSessions(ctx context.Context, userID int32) ([]domain.ChatSession, error)
	DeleteSession(ctx context.Context, userID int32, sessionID string) (int32, error)
}

// Repositories bundles every repository over one database handle, either the
// shared pool or a single transaction.
type Repositories struct {
	Users       UserRepository
	Instruments InstrumentRepository
	Ownerships  OwnershipRepository
	Rentals     RentalRepository
	Payments    PaymentRepository
	Reviews     ReviewRepository
	Surveys     SurveyRepository
	Chats       ChatRepository
}

// TxRunner executes fn inside a single database transaction. Every
// multi-entity mutation in the rental, payment, and review flows goes
// through it so partial failures cannot leave availability inconsistent.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(r *Repositories) error) error
}
