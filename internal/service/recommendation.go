package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"instrument-rental-backend/internal/assistant"
	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/logger"
	"instrument-rental-backend/internal/recommend"
	"instrument-rental-backend/internal/repository"
)

type recommendationService struct {
	ownershipRepo repository.OwnershipRepository
	rentalRepo    repository.RentalRepository
	surveyRepo    repository.SurveyRepository
	classifier    assistant.Classifier
}

// NewRecommendationService builds the scorer-backed recommender. classifier
// may be nil; keyword matching alone is always sufficient.
func NewRecommendationService(
	ownershipRepo repository.OwnershipRepository,
	rentalRepo repository.RentalRepository,
	surveyRepo repository.SurveyRepository,
	classifier assistant.Classifier,
) RecommendationService {
	return &recommendationService{
		ownershipRepo: ownershipRepo,
		rentalRepo:    rentalRepo,
		surveyRepo:    surveyRepo,
		classifier:    classifier,
	}
}

func (s *recommendationService) RecommendByNeeds(ctx context.Context, needs string, budget *float64) (*RecommendationResult, error) {
	if strings.TrimSpace(needs) == "" {
		return nil, domain.Validationf("needs text is required")
	}

	listings, err := s.ownershipRepo.ListAvailableListings(ctx)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if len(listings) == 0 {
		return &RecommendationResult{
			Recommendations: []Recommendation{},
			Message:         "No instruments available at the moment",
		}, nil
	}

	matched := recommend.MatchCategories(needs)

	// The remote classifier only ever supplements keyword matching; any
	// failure falls through silently.
	if s.classifier != nil {
		labels, err := s.classifier.Classify(ctx, needs, recommend.ClassifierLabels)
		if err != nil {
			logger.Warn("classifier unavailable, using keyword matching only", "error", err)
		} else {
			matched = mergeCategories(matched, labels)
		}
	}

	scored := recommend.Rank(listings, needs, matched, budget)

	recs := make([]Recommendation, 0, len(scored))
	for _, sc := range scored {
		recs = append(recs, toRecommendation(sc, matched))
	}

	return &RecommendationResult{
		Recommendations:   recs,
		TotalAvailable:    int32(len(listings)),
		MatchedCount:      int32(len(scored)),
		NeedsAnalyzed:     needs,
		MatchedCategories: matched,
	}, nil
}

func (s *recommendationService) RecommendForUser(ctx context.Context, userID int32) (*RecommendationResult, error) {
	var needsParts []string
	var budget *float64

	survey, err := s.surveyRepo.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Internal(err)
	}
	if survey != nil {
		for _, part := range []string{survey.PreferredInstruments, survey.FavoriteGenres, survey.UseCase} {
			if part != "" {
				needsParts = append(needsParts, part)
			}
		}
		budget = parseBudgetRange(survey.BudgetRange)
	}

	categories, err := s.rentalRepo.CategoriesByRenter(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	needsParts = append(needsParts, categories...)

	if len(needsParts) == 0 {
		return &RecommendationResult{
			Recommendations: []Recommendation{},
			Message:         "Take the preference survey or rent an instrument to get personalized recommendations",
		}, nil
	}

	return s.RecommendByNeeds(ctx, strings.Join(needsParts, " "), budget)
}

func toRecommendation(sc recommend.Scored, matched []string) Recommendation {
	l := sc.Listing
	subject := "an instrument"
	if len(matched) > 0 {
		subject = matched[0]
	}
	return Recommendation{
		OwnershipID:   l.OwnershipID,
		InstrumentID:  l.Instrument.ID,
		Name:          l.Instrument.Name,
		Category:      l.Instrument.Category,
		Brand:         l.Instrument.Brand,
		Model:         l.Instrument.Model,
		Description:   l.Instrument.Description,
		DailyRate:     l.DailyRate,
		Location:      l.Location,
		Condition:     string(l.Condition),
		AverageRating: l.AvgRating,
		MatchScore:    sc.Score,
		Reasoning: fmt.Sprintf("Matches your need for %s at $%.2f/day with %.1f/5 rating",
			subject, l.DailyRate, l.AvgRating),
	}
}

func mergeCategories(matched, extra []string) []string {
	seen := make(map[string]bool, len(matched))
	for _, m := range matched {
		seen[m] = true
	}
	for _, e := range extra {
		e = strings.ToLower(e)
		if !seen[e] {
			seen[e] = true
			matched = append(matched, e)
		}
	}
	return matched
}

// parseBudgetRange pulls the upper bound out of a free-text budget band
// like "50-100", "$50 - $100" or "under 30". Returns nil if no number
// can be found.
func parseBudgetRange(band string) *float64 {
	var best *float64
	field := strings.Builder{}
	flush := func() {
		if field.Len() == 0 {
			return
		}
		if v, err := strconv.ParseFloat(field.String(), 64); err == nil {
			if best == nil || v > *best {
				b := v
				best = &b
			}
		}
		field.Reset()
	}
	for _, r := range band {
		if (r >= '0' && r <= '9') || r == '.' {
			field.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return best
}
