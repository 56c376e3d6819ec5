package service

import (
	"context"
	"database/sql"
	"errors"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("user %d not found", id)
		}
		return nil, domain.Internal(err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, callerID, userID int32, name, phone string) (*domain.User, error) {
	if callerID != userID {
		return nil, domain.Forbiddenf("cannot update another user's profile")
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, domain.Internal(err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, callerID, userID int32) error {
	if callerID != userID {
		return domain.Forbiddenf("cannot delete another user's account")
	}

	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}

	hasDeps, err := s.userRepo.HasDependents(ctx, userID)
	if err != nil {
		return domain.Internal(err)
	}
	if hasDeps {
		return domain.Conflictf("account has rentals, listings, reviews or payments and cannot be deleted")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return domain.Internal(err)
	}
	return nil
}
