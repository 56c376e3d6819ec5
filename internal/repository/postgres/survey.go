package postgres

import (
	"context"
	"time"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/repository"
	"instrument-rental-backend/internal/utils"
)

type surveyRepository struct {
	db dbtx
}

func NewSurveyRepository(db dbtx) repository.SurveyRepository {
	return &surveyRepository{db: db}
}

func (r *surveyRepository) Create(ctx context.Context, s *domain.SurveyResponse) error {
	query := `INSERT INTO survey_responses (user_id, preferred_instruments, experience_level, favorite_genres, budget_range, rental_frequency, use_case, location, additional_notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	s.CreatedOn = utils.FormatDate(now)
	s.UpdatedOn = s.CreatedOn
	return r.db.QueryRowContext(ctx, query, s.UserID, s.PreferredInstruments, s.ExperienceLevel, s.FavoriteGenres, s.BudgetRange, s.RentalFrequency, s.UseCase, s.Location, s.AdditionalNotes, now, now).Scan(&s.ID)
}

const surveyColumns = `id, user_id, COALESCE(preferred_instruments, ''), COALESCE(experience_level, ''), COALESCE(favorite_genres, ''), COALESCE(budget_range, ''), COALESCE(rental_frequency, ''), COALESCE(use_case, ''), COALESCE(location, ''), COALESCE(additional_notes, ''), created_on, updated_on`

func scanSurvey(scan func(...any) error) (*domain.SurveyResponse, error) {
	s := &domain.SurveyResponse{}
	var createdOn, updatedOn time.Time
	err := scan(&s.ID, &s.UserID, &s.PreferredInstruments, &s.ExperienceLevel, &s.FavoriteGenres, &s.BudgetRange, &s.RentalFrequency, &s.UseCase, &s.Location, &s.AdditionalNotes, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	s.CreatedOn = utils.FormatDate(createdOn)
	s.UpdatedOn = utils.FormatDate(updatedOn)
	return s, nil
}

func (r *surveyRepository) GetByID(ctx context.Context, id int32) (*domain.SurveyResponse, error) {
	query := `SELECT ` + surveyColumns + ` FROM survey_responses WHERE id = $1`
	return scanSurvey(r.db.QueryRowContext(ctx, query, id).Scan)
}

func (r *surveyRepository) GetByUser(ctx context.Context, userID int32) (*domain.SurveyResponse, error) {
	query := `SELECT ` + surveyColumns + ` FROM survey_responses WHERE user_id = $1`
	return scanSurvey(r.db.QueryRowContext(ctx, query, userID).Scan)
}

func (r *surveyRepository) Update(ctx context.Context, s *domain.SurveyResponse) error {
	query := `UPDATE survey_responses SET preferred_instruments=$1, experience_level=$2, favorite_genres=$3, budget_range=$4, rental_frequency=$5, use_case=$6, location=$7, additional_notes=$8, updated_on=$9 WHERE id=$10`
	now := time.Now()
	s.UpdatedOn = utils.FormatDate(now)
	_, err := r.db.ExecContext(ctx, query, s.PreferredInstruments, s.ExperienceLevel, s.FavoriteGenres, s.BudgetRange, s.RentalFrequency, s.UseCase, s.Location, s.AdditionalNotes, now, s.ID)
	return err
}

func (r *surveyRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM survey_responses WHERE id=$1`, id)
	return err
}
