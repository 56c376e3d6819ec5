package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/processor"
	"instrument-rental-backend/internal/repository"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepo) HasDependents(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockInstrumentRepo struct{ mock.Mock }

func (m *MockInstrumentRepo) Create(ctx context.Context, i *domain.Instrument) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockInstrumentRepo) GetByID(ctx context.Context, id int32) (*domain.Instrument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Instrument), args.Error(1)
}

func (m *MockInstrumentRepo) List(ctx context.Context, category string) ([]domain.Instrument, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Instrument), args.Error(1)
}

type MockOwnershipRepo struct{ mock.Mock }

func (m *MockOwnershipRepo) Create(ctx context.Context, o *domain.Ownership) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOwnershipRepo) GetByID(ctx context.Context, id int32) (*domain.Ownership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ownership), args.Error(1)
}

func (m *MockOwnershipRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Ownership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ownership), args.Error(1)
}

func (m *MockOwnershipRepo) ListAvailable(ctx context.Context) ([]domain.Ownership, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ownership), args.Error(1)
}

func (m *MockOwnershipRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Ownership, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ownership), args.Error(1)
}

func (m *MockOwnershipRepo) ListAvailableListings(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockOwnershipRepo) Update(ctx context.Context, o *domain.Ownership) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOwnershipRepo) SetAvailability(ctx context.Context, id int32, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *MockOwnershipRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRentalRepo struct{ mock.Mock }

func (m *MockRentalRepo) Create(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) Update(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRentalRepo) ListByRenter(ctx context.Context, renterID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) HasActiveByOwnership(ctx context.Context, ownershipID int32) (bool, error) {
	args := m.Called(ctx, ownershipID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentalRepo) CategoriesByRenter(ctx context.Context, renterID int32) ([]string, error) {
	args := m.Called(ctx, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockPaymentRepo struct{ mock.Mock }

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) GetByRental(ctx context.Context, rentalID int32) (*domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) GetByRentalAndStatus(ctx context.Context, rentalID int32, status domain.PaymentStatus) (*domain.Payment, error) {
	args := m.Called(ctx, rentalID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockReviewRepo struct{ mock.Mock }

func (m *MockReviewRepo) Create(ctx context.Context, r *domain.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepo) GetByID(ctx context.Context, id int32) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepo) GetByRental(ctx context.Context, rentalID int32) (*domain.Review, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepo) List(ctx context.Context, ownershipID, rating int32) ([]domain.Review, error) {
	args := m.Called(ctx, ownershipID, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepo) Update(ctx context.Context, r *domain.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepo) StatsByOwnership(ctx context.Context, ownershipID int32) (*domain.ReviewStats, error) {
	args := m.Called(ctx, ownershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewStats), args.Error(1)
}

type MockSurveyRepo struct{ mock.Mock }

func (m *MockSurveyRepo) Create(ctx context.Context, s *domain.SurveyResponse) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSurveyRepo) GetByID(ctx context.Context, id int32) (*domain.SurveyResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SurveyResponse), args.Error(1)
}

func (m *MockSurveyRepo) GetByUser(ctx context.Context, userID int32) (*domain.SurveyResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SurveyResponse), args.Error(1)
}

func (m *MockSurveyRepo) Update(ctx context.Context, s *domain.SurveyResponse) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSurveyRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockChatRepo struct{ mock.Mock }

func (m *MockChatRepo) Create(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockChatRepo) ListBySession(ctx context.Context, userID int32, sessionID string) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

func (m *MockChatRepo) ListRecentBySession(ctx context.Context, userID int32, sessionID string, limit int32) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, userID, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

func (m *MockChatRepo) ListSessions(ctx context.Context, userID int32) ([]domain.ChatSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatSession), args.Error(1)
}

func (m *MockChatRepo) DeleteSession(ctx context.Context, userID int32, sessionID string) (int32, error) {
	args := m.Called(ctx, userID, sessionID)
	return args.Get(0).(int32), args.Error(1)
}

// fakeTxRunner invokes fn with the supplied repositories; there is no real
// transaction in unit tests.
type fakeTxRunner struct {
	repos *repository.Repositories
}

func (f *fakeTxRunner) RunInTx(ctx context.Context, fn func(r *repository.Repositories) error) error {
	return fn(f.repos)
}

type repoMocks struct {
	users       *MockUserRepo
	instruments *MockInstrumentRepo
	ownerships  *MockOwnershipRepo
	rentals     *MockRentalRepo
	payments    *MockPaymentRepo
	reviews     *MockReviewRepo
	surveys     *MockSurveyRepo
	chats       *MockChatRepo
}

func newRepoMocks() (*repoMocks, *repository.Repositories) {
	m := &repoMocks{
		users:       new(MockUserRepo),
		instruments: new(MockInstrumentRepo),
		ownerships:  new(MockOwnershipRepo),
		rentals:     new(MockRentalRepo),
		payments:    new(MockPaymentRepo),
		reviews:     new(MockReviewRepo),
		surveys:     new(MockSurveyRepo),
		chats:       new(MockChatRepo),
	}
	repos := &repository.Repositories{
		Users:       m.users,
		Instruments: m.instruments,
		Ownerships:  m.ownerships,
		Rentals:     m.rentals,
		Payments:    m.payments,
		Reviews:     m.reviews,
		Surveys:     m.surveys,
		Chats:       m.chats,
	}
	return m, repos
}

type MockProcessor struct{ mock.Mock }

func (m *MockProcessor) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*processor.Intent, error) {
	args := m.Called(ctx, amountCents, currency, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processor.Intent), args.Error(1)
}

func (m *MockProcessor) GetIntent(ctx context.Context, intentID string) (*processor.Intent, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processor.Intent), args.Error(1)
}

func (m *MockProcessor) RefundCharge(ctx context.Context, chargeID string, metadata map[string]string) (string, error) {
	args := m.Called(ctx, chargeID, metadata)
	return args.String(0), args.Error(1)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendRentalBookedNotification(ctx context.Context, ownerEmail, renterName, instrumentName, startDate, endDate string) error {
	args := m.Called(ctx, ownerEmail, renterName, instrumentName, startDate, endDate)
	return args.Error(0)
}

func (m *MockEmailService) SendRentalCancelledNotification(ctx context.Context, ownerEmail, renterName, instrumentName string) error {
	args := m.Called(ctx, ownerEmail, renterName, instrumentName)
	return args.Error(0)
}

func (m *MockEmailService) SendReturnConfirmation(ctx context.Context, ownerEmail, renterName, instrumentName string) error {
	args := m.Called(ctx, ownerEmail, renterName, instrumentName)
	return args.Error(0)
}

func (m *MockEmailService) SendReturnReminder(ctx context.Context, renterEmail, renterName, instrumentName, endDate string) error {
	args := m.Called(ctx, renterEmail, renterName, instrumentName, endDate)
	return args.Error(0)
}

func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, renterEmail, instrumentName string, amount float64) error {
	args := m.Called(ctx, renterEmail, instrumentName, amount)
	return args.Error(0)
}

type MockModel struct{ mock.Mock }

func (m *MockModel) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockClassifier struct{ mock.Mock }

func (m *MockClassifier) Classify(ctx context.Context, text string, labels []string) ([]string, error) {
	args := m.Called(ctx, text, labels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
