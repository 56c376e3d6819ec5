package service

import (
	"context"
	"database/sql"
	"errors"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/repository"
)

type reviewService struct {
	tx    repository.TxRunner
	repos *repository.Repositories
}

func NewReviewService(tx repository.TxRunner, repos *repository.Repositories) ReviewService {
	return &reviewService{tx: tx, repos: repos}
}

func (s *reviewService) CreateReview(ctx context.Context, renterID, rentalID, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.Validationf("rating must be between 1 and 5")
	}

	var review *domain.Review
	err := s.tx.RunInTx(ctx, func(r *repository.Repositories) error {
		rental, err := r.Rentals.GetByID(ctx, rentalID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFoundf("rental %d not found", rentalID)
			}
			return domain.Internal(err)
		}
		if rental.RenterID != renterID {
			return domain.Forbiddenf("only the renter can review this rental")
		}
		if rental.Status != domain.RentalStatusCompleted {
			return domain.InvalidOperationf("only completed rentals can be reviewed")
		}

		existing, err := r.Reviews.GetByRental(ctx, rentalID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return domain.Internal(err)
		}
		if existing != nil {
			return domain.Conflictf("rental %d is already reviewed", rentalID)
		}

		// Ownership attribution is frozen at creation time.
		review = &domain.Review{
			RentalID:    rentalID,
			OwnershipID: rental.OwnershipID,
			RenterID:    renterID,
			Rating:      rating,
			Comment:     comment,
		}
		if err := r.Reviews.Create(ctx, review); err != nil {
			return domain.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) GetReview(ctx context.Context, id int32) (*domain.Review, error) {
	review, err := s.repos.Reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("review %d not found", id)
		}
		return nil, domain.Internal(err)
	}
	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, ownershipID, rating int32) ([]domain.Review, error) {
	if rating != 0 && (rating < 1 || rating > 5) {
		return nil, domain.Validationf("rating filter must be between 1 and 5")
	}
	reviews, err := s.repos.Reviews.List(ctx, ownershipID, rating)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return reviews, nil
}

func (s *reviewService) ListOwnerReviews(ctx context.Context, ownerID int32) ([]domain.Review, error) {
	ownerships, err := s.repos.Ownerships.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Internal(err)
	}

	var all []domain.Review
	for _, o := range ownerships {
		reviews, err := s.repos.Reviews.List(ctx, o.ID, 0)
		if err != nil {
			return nil, domain.Internal(err)
		}
		all = append(all, reviews...)
	}
	return all, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, callerID, reviewID, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.Validationf("rating must be between 1 and 5")
	}

	review, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.RenterID != callerID {
		return nil, domain.Forbiddenf("only the reviewer can update this review")
	}

	review.Rating = rating
	review.Comment = comment
	if err := s.repos.Reviews.Update(ctx, review); err != nil {
		return nil, domain.Internal(err)
	}
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, callerID, reviewID int32) error {
	review, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.RenterID != callerID {
		return domain.Forbiddenf("only the reviewer can delete this review")
	}

	if err := s.repos.Reviews.Delete(ctx, reviewID); err != nil {
		return domain.Internal(err)
	}
	return nil
}

func (s *reviewService) OwnershipStats(ctx context.Context, ownershipID int32) (*domain.ReviewStats, error) {
	if _, err := s.repos.Ownerships.GetByID(ctx, ownershipID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("ownership %d not found", ownershipID)
		}
		return nil, domain.Internal(err)
	}

	stats, err := s.repos.Reviews.StatsByOwnership(ctx, ownershipID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return stats, nil
}
