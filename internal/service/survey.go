package service

import (
	"context"
	"database/sql"
	"errors"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/repository"
)

type surveyService struct {
	surveyRepo repository.SurveyRepository
	userRepo   repository.UserRepository
}

func NewSurveyService(surveyRepo repository.SurveyRepository, userRepo repository.UserRepository) SurveyService {
	return &surveyService{surveyRepo: surveyRepo, userRepo: userRepo}
}

func (s *surveyService) SubmitSurvey(ctx context.Context, userID int32, survey *domain.SurveyResponse) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundf("user %d not found", userID)
		}
		return domain.Internal(err)
	}
	if user.UserType != domain.UserTypeRenter {
		return domain.Forbiddenf("only renters can fill the survey")
	}

	existing, err := s.surveyRepo.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.Internal(err)
	}
	if existing != nil {
		return domain.Conflictf("survey already submitted")
	}

	survey.UserID = userID
	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		return domain.Internal(err)
	}
	return nil
}

func (s *surveyService) GetMySurvey(ctx context.Context, userID int32) (*domain.SurveyResponse, error) {
	survey, err := s.surveyRepo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("no survey response for user %d", userID)
		}
		return nil, domain.Internal(err)
	}
	return survey, nil
}

func (s *surveyService) UpdateSurvey(ctx context.Context, userID int32, survey *domain.SurveyResponse) (*domain.SurveyResponse, error) {
	existing, err := s.GetMySurvey(ctx, userID)
	if err != nil {
		return nil, err
	}

	survey.ID = existing.ID
	survey.UserID = userID
	if err := s.surveyRepo.Update(ctx, survey); err != nil {
		return nil, domain.Internal(err)
	}
	return survey, nil
}

func (s *surveyService) DeleteSurvey(ctx context.Context, userID int32) error {
	existing, err := s.GetMySurvey(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.surveyRepo.Delete(ctx, existing.ID); err != nil {
		return domain.Internal(err)
	}
	return nil
}
