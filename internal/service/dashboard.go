package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/repository"
)

const recentRentalsLimit = 10

type dashboardService struct {
	userRepo      repository.UserRepository
	rentalRepo    repository.RentalRepository
	ownershipRepo repository.OwnershipRepository
}

func NewDashboardService(
	userRepo repository.UserRepository,
	rentalRepo repository.RentalRepository,
	ownershipRepo repository.OwnershipRepository,
) DashboardService {
	return &dashboardService{
		userRepo:      userRepo,
		rentalRepo:    rentalRepo,
		ownershipRepo: ownershipRepo,
	}
}

func (s *dashboardService) Stats(ctx context.Context, userID int32) (*DashboardStats, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.UserType == domain.UserTypeRenter {
		rentals, err := s.rentalRepo.ListByRenter(ctx, userID)
		if err != nil {
			return nil, domain.Internal(err)
		}
		return &DashboardStats{
			UserType:   domain.UserTypeRenter,
			Statistics: renterStats(rentals),
		}, nil
	}

	ownerships, err := s.ownershipRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	rentals, err := s.rentalRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return &DashboardStats{
		UserType:   domain.UserTypeOwner,
		Statistics: ownerStats(ownerships, rentals),
	}, nil
}

func (s *dashboardService) OwnerDashboard(ctx context.Context, ownerID int32) (*Dashboard, error) {
	user, err := s.getUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if user.UserType != domain.UserTypeOwner {
		return nil, domain.Forbiddenf("this dashboard is for owners only")
	}

	ownerships, err := s.ownershipRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	rentals, err := s.rentalRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Internal(err)
	}

	return &Dashboard{
		User:          user,
		Statistics:    ownerStats(ownerships, rentals),
		RecentRentals: recentRentals(rentals),
		Instruments:   ownerships,
	}, nil
}

func (s *dashboardService) RenterDashboard(ctx context.Context, renterID int32) (*Dashboard, error) {
	user, err := s.getUser(ctx, renterID)
	if err != nil {
		return nil, err
	}
	if user.UserType != domain.UserTypeRenter {
		return nil, domain.Forbiddenf("this dashboard is for renters only")
	}

	rentals, err := s.rentalRepo.ListByRenter(ctx, renterID)
	if err != nil {
		return nil, domain.Internal(err)
	}

	return &Dashboard{
		User:          user,
		Statistics:    renterStats(rentals),
		RecentRentals: recentRentals(rentals),
	}, nil
}

func (s *dashboardService) getUser(ctx context.Context, userID int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("user %d not found", userID)
		}
		return nil, domain.Internal(err)
	}
	return user, nil
}

func renterStats(rentals []domain.Rental) map[string]float64 {
	stats := map[string]float64{
		"total_rentals":     float64(len(rentals)),
		"active_rentals":    0,
		"completed_rentals": 0,
		"total_spent":       0,
	}
	for _, r := range rentals {
		switch r.Status {
		case domain.RentalStatusActive:
			stats["active_rentals"]++
		case domain.RentalStatusCompleted:
			stats["completed_rentals"]++
			stats["total_spent"] += r.TotalCost
		}
	}
	return stats
}

func ownerStats(ownerships []domain.Ownership, rentals []domain.Rental) map[string]float64 {
	stats := map[string]float64{
		"total_instruments":     float64(len(ownerships)),
		"available_instruments": 0,
		"total_rentals":         float64(len(rentals)),
		"active_rentals":        0,
		"completed_rentals":     0,
		"total_earned":          0,
	}
	for _, o := range ownerships {
		if o.IsAvailable {
			stats["available_instruments"]++
		}
	}
	for _, r := range rentals {
		switch r.Status {
		case domain.RentalStatusActive:
			stats["active_rentals"]++
		case domain.RentalStatusCompleted:
			stats["completed_rentals"]++
			stats["total_earned"] += r.TotalCost
		}
	}
	return stats
}

func recentRentals(rentals []domain.Rental) []domain.Rental {
	sorted := make([]domain.Rental, len(rentals))
	copy(sorted, rentals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedOn > sorted[j].CreatedOn
	})
	if len(sorted) > recentRentalsLimit {
		sorted = sorted[:recentRentalsLimit]
	}
	return sorted
}
