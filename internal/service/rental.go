package service

import (
	"context"
	"database/sql"
	"errors"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/logger"
	"instrument-rental-backend/internal/repository"
	"instrument-rental-backend/internal/utils"
)

type rentalService struct {
	tx       repository.TxRunner
	repos    *repository.Repositories
	emailSvc EmailService
}

func NewRentalService(tx repository.TxRunner, repos *repository.Repositories, emailSvc EmailService) RentalService {
	return &rentalService{tx: tx, repos: repos, emailSvc: emailSvc}
}

func (s *rentalService) CreateRental(ctx context.Context, renterID, ownershipID int32, startDate, endDate string) (*domain.Rental, error) {
	if _, err := utils.RentalDays(startDate, endDate); err != nil {
		return nil, domain.Validationf("invalid rental dates: %v", err)
	}

	var rental *domain.Rental
	err := s.tx.RunInTx(ctx, func(r *repository.Repositories) error {
		ownership, err := r.Ownerships.GetByIDForUpdate(ctx, ownershipID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFoundf("ownership %d not found", ownershipID)
			}
			return domain.Internal(err)
		}
		if !ownership.IsAvailable {
			return domain.Conflictf("instrument is not available for rental")
		}
		if ownership.UserID == renterID {
			return domain.InvalidOperationf("cannot rent your own instrument")
		}

		totalCost, err := utils.RentalCost(startDate, endDate, ownership.DailyRate)
		if err != nil {
			return domain.Validationf("invalid rental dates: %v", err)
		}

		rental = &domain.Rental{
			RenterID:    renterID,
			OwnershipID: ownershipID,
			StartDate:   startDate,
			EndDate:     endDate,
			TotalCost:   totalCost,
			Status:      domain.RentalStatusPending,
		}
		if err := r.Rentals.Create(ctx, rental); err != nil {
			return domain.Internal(err)
		}
		return r.Ownerships.SetAvailability(ctx, ownershipID, false)
	})
	if err != nil {
		return nil, err
	}

	s.notifyBooking(ctx, rental)
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, callerID, rentalID int32) (*domain.Rental, error) {
	rental, err := s.getRental(ctx, s.repos, rentalID)
	if err != nil {
		return nil, err
	}

	ownership, err := s.repos.Ownerships.GetByID(ctx, rental.OwnershipID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if rental.RenterID != callerID && ownership.UserID != callerID {
		return nil, domain.Forbiddenf("rental %d does not involve you", rentalID)
	}
	return rental, nil
}

func (s *rentalService) ListMyRentals(ctx context.Context, renterID int32) ([]domain.Rental, error) {
	rentals, err := s.repos.Rentals.ListByRenter(ctx, renterID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return rentals, nil
}

func (s *rentalService) ListMyLendings(ctx context.Context, ownerID int32) ([]domain.Rental, error) {
	rentals, err := s.repos.Rentals.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return rentals, nil
}

func (s *rentalService) CancelRental(ctx context.Context, callerID, rentalID int32) error {
	var cancelled *domain.Rental
	err := s.tx.RunInTx(ctx, func(r *repository.Repositories) error {
		rental, err := s.getRental(ctx, r, rentalID)
		if err != nil {
			return err
		}
		if rental.RenterID != callerID {
			return domain.Forbiddenf("only the renter can cancel this rental")
		}
		if rental.Status != domain.RentalStatusPending {
			return domain.InvalidOperationf("only pending rentals can be cancelled")
		}

		rental.Status = domain.RentalStatusCancelled
		if err := r.Rentals.Update(ctx, rental); err != nil {
			return domain.Internal(err)
		}
		cancelled = rental
		return r.Ownerships.SetAvailability(ctx, rental.OwnershipID, true)
	})
	if err != nil {
		return err
	}

	s.notifyCancellation(ctx, cancelled)
	return nil
}

func (s *rentalService) ReturnRental(ctx context.Context, callerID, rentalID int32) (*domain.Rental, error) {
	var returned *domain.Rental
	err := s.tx.RunInTx(ctx, func(r *repository.Repositories) error {
		rental, err := s.getRental(ctx, r, rentalID)
		if err != nil {
			return err
		}
		if rental.RenterID != callerID {
			return domain.Forbiddenf("only the renter can return this rental")
		}
		switch rental.Status {
		case domain.RentalStatusPending, domain.RentalStatusActive:
		default:
			return domain.InvalidOperationf("rental is already %s", rental.Status)
		}

		today := utils.Today()
		rental.ActualReturnDate = &today
		rental.Status = domain.RentalStatusCompleted
		if err := r.Rentals.Update(ctx, rental); err != nil {
			return domain.Internal(err)
		}
		returned = rental
		return r.Ownerships.SetAvailability(ctx, rental.OwnershipID, true)
	})
	if err != nil {
		return nil, err
	}

	s.notifyReturn(ctx, returned)
	return returned, nil
}

func (s *rentalService) getRental(ctx context.Context, r *repository.Repositories, rentalID int32) (*domain.Rental, error) {
	rental, err := r.Rentals.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("rental %d not found", rentalID)
		}
		return nil, domain.Internal(err)
	}
	return rental, nil
}

// Email failures never fail the rental operation.

func (s *rentalService) notifyBooking(ctx context.Context, rental *domain.Rental) {
	owner, renter, instrumentName, ok := s.rentalParties(ctx, rental)
	if !ok {
		return
	}
	if err := s.emailSvc.SendRentalBookedNotification(ctx, owner.Email, renter.Name, instrumentName, rental.StartDate, rental.EndDate); err != nil {
		logger.Warn("failed to send booking notification", "rental_id", rental.ID, "error", err)
	}
}

func (s *rentalService) notifyCancellation(ctx context.Context, rental *domain.Rental) {
	owner, renter, instrumentName, ok := s.rentalParties(ctx, rental)
	if !ok {
		return
	}
	if err := s.emailSvc.SendRentalCancelledNotification(ctx, owner.Email, renter.Name, instrumentName); err != nil {
		logger.Warn("failed to send cancellation notification", "rental_id", rental.ID, "error", err)
	}
}

func (s *rentalService) notifyReturn(ctx context.Context, rental *domain.Rental) {
	owner, renter, instrumentName, ok := s.rentalParties(ctx, rental)
	if !ok {
		return
	}
	if err := s.emailSvc.SendReturnConfirmation(ctx, owner.Email, renter.Name, instrumentName); err != nil {
		logger.Warn("failed to send return confirmation", "rental_id", rental.ID, "error", err)
	}
}

func (s *rentalService) rentalParties(ctx context.Context, rental *domain.Rental) (owner, renter *domain.User, instrumentName string, ok bool) {
	ownership, err := s.repos.Ownerships.GetByID(ctx, rental.OwnershipID)
	if err != nil {
		return nil, nil, "", false
	}
	owner, err = s.repos.Users.GetByID(ctx, ownership.UserID)
	if err != nil {
		return nil, nil, "", false
	}
	renter, err = s.repos.Users.GetByID(ctx, rental.RenterID)
	if err != nil {
		return nil, nil, "", false
	}
	instrument, err := s.repos.Instruments.GetByID(ctx, ownership.InstrumentID)
	if err != nil {
		return nil, nil, "", false
	}
	return owner, renter, instrument.Name, true
}
