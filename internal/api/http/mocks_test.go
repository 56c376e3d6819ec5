package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"instrument-rental-backend/internal/domain"
)

type MockRentalService struct{ mock.Mock }

func (m *MockRentalService) CreateRental(ctx context.Context, renterID, ownershipID int32, startDate, endDate string) (*domain.Rental, error) {
	args := m.Called(ctx, renterID, ownershipID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) GetRental(ctx context.Context, callerID, rentalID int32) (*domain.Rental, error) {
	args := m.Called(ctx, callerID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) ListMyRentals(ctx context.Context, renterID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalService) ListMyLendings(ctx context.Context, ownerID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalService) CancelRental(ctx context.Context, callerID, rentalID int32) error {
	args := m.Called(ctx, callerID, rentalID)
	return args.Error(0)
}

func (m *MockRentalService) ReturnRental(ctx context.Context, callerID, rentalID int32) (*domain.Rental, error) {
	args := m.Called(ctx, callerID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

type MockInstrumentService struct{ mock.Mock }

func (m *MockInstrumentService) AddInstrument(ctx context.Context, instrument *domain.Instrument) error {
	args := m.Called(ctx, instrument)
	return args.Error(0)
}

func (m *MockInstrumentService) GetInstrument(ctx context.Context, id int32) (*domain.Instrument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Instrument), args.Error(1)
}

func (m *MockInstrumentService) ListInstruments(ctx context.Context, category string) ([]domain.Instrument, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Instrument), args.Error(1)
}

func (m *MockInstrumentService) ListAvailable(ctx context.Context) ([]domain.Ownership, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ownership), args.Error(1)
}
