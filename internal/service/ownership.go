package service

import (
	"context"
	"database/sql"
	"errors"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/repository"
)

type ownershipService struct {
	ownershipRepo  repository.OwnershipRepository
	instrumentRepo repository.InstrumentRepository
	rentalRepo     repository.RentalRepository
	userRepo       repository.UserRepository
}

func NewOwnershipService(
	ownershipRepo repository.OwnershipRepository,
	instrumentRepo repository.InstrumentRepository,
	rentalRepo repository.RentalRepository,
	userRepo repository.UserRepository,
) OwnershipService {
	return &ownershipService{
		ownershipRepo:  ownershipRepo,
		instrumentRepo: instrumentRepo,
		rentalRepo:     rentalRepo,
		userRepo:       userRepo,
	}
}

func (s *ownershipService) AddOwnership(ctx context.Context, ownerID int32, ownership *domain.Ownership) error {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundf("user %d not found", ownerID)
		}
		return domain.Internal(err)
	}
	if owner.UserType != domain.UserTypeOwner {
		return domain.Forbiddenf("only owners can list instruments")
	}

	if ownership.DailyRate <= 0 {
		return domain.Validationf("daily_rate must be positive")
	}
	switch ownership.Condition {
	case domain.OwnershipConditionExcellent, domain.OwnershipConditionGood, domain.OwnershipConditionFair:
	default:
		return domain.Validationf("condition must be excellent, good or fair")
	}

	if _, err := s.instrumentRepo.GetByID(ctx, ownership.InstrumentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundf("instrument %d not found", ownership.InstrumentID)
		}
		return domain.Internal(err)
	}

	ownership.UserID = ownerID
	ownership.IsAvailable = true
	if err := s.ownershipRepo.Create(ctx, ownership); err != nil {
		return domain.Internal(err)
	}
	return nil
}

func (s *ownershipService) GetOwnership(ctx context.Context, id int32) (*domain.Ownership, error) {
	ownership, err := s.ownershipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("ownership %d not found", id)
		}
		return nil, domain.Internal(err)
	}
	return ownership, nil
}

func (s *ownershipService) ListAvailable(ctx context.Context) ([]domain.Ownership, error) {
	ownerships, err := s.ownershipRepo.ListAvailable(ctx)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return ownerships, nil
}

func (s *ownershipService) ListMyInstruments(ctx context.Context, ownerID int32) ([]domain.Ownership, error) {
	ownerships, err := s.ownershipRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return ownerships, nil
}

func (s *ownershipService) UpdateOwnership(ctx context.Context, callerID int32, ownership *domain.Ownership) error {
	existing, err := s.GetOwnership(ctx, ownership.ID)
	if err != nil {
		return err
	}
	if existing.UserID != callerID {
		return domain.Forbiddenf("only the owner can update this listing")
	}

	if ownership.DailyRate <= 0 {
		return domain.Validationf("daily_rate must be positive")
	}

	// Availability is driven by the rental and payment flows, not edits.
	ownership.UserID = existing.UserID
	ownership.InstrumentID = existing.InstrumentID
	ownership.IsAvailable = existing.IsAvailable
	if err := s.ownershipRepo.Update(ctx, ownership); err != nil {
		return domain.Internal(err)
	}
	return nil
}

func (s *ownershipService) DeleteOwnership(ctx context.Context, callerID, ownershipID int32) error {
	existing, err := s.GetOwnership(ctx, ownershipID)
	if err != nil {
		return err
	}
	if existing.UserID != callerID {
		return domain.Forbiddenf("only the owner can delete this listing")
	}

	hasActive, err := s.rentalRepo.HasActiveByOwnership(ctx, ownershipID)
	if err != nil {
		return domain.Internal(err)
	}
	if hasActive {
		return domain.Conflictf("listing has a pending or active rental")
	}

	if err := s.ownershipRepo.Delete(ctx, ownershipID); err != nil {
		return domain.Internal(err)
	}
	return nil
}
