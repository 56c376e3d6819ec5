// Package recommend implements rule-based matching of available listings
// against a renter's free-text needs, budget and rating signals.
package recommend

import (
	"sort"
	"strings"

	"instrument-rental-backend/internal/domain"
)

const maxRecommendations = 5

// categoryKeywords maps instrument categories to the phrases that signal
// them in free-text needs. Matching is case-insensitive substring.
var categoryKeywords = map[string][]string{
	"guitar": {"guitar", "acoustic", "electric", "fender", "ibanez", "les paul"},
	"piano":  {"piano", "keyboard", "synthesizer", "yamaha", "grand piano"},
	"drums":  {"drums", "drum kit", "percussion", "cymbal", "snare"},
	"violin": {"violin", "viola", "bow", "classical", "fiddle"},
	"flute":  {"flute", "piccolo", "woodwind", "wind instrument"},
	"bass":   {"bass", "bass guitar", "upright", "acoustic bass"},
}

// ClassifierLabels are the candidate labels handed to an optional remote
// zero-shot classifier. Classifier output supplements keyword matching
// but is never required.
var ClassifierLabels = []string{
	"beginner-friendly", "professional-grade", "budget-friendly",
	"acoustic", "electric", "percussion", "wind-instrument",
	"string-instrument", "keyboard",
}

// MatchCategories extracts instrument categories referenced by the needs
// text using the fixed keyword table.
func MatchCategories(needs string) []string {
	lower := strings.ToLower(needs)
	var matched []string
	for _, category := range []string{"guitar", "piano", "drums", "violin", "flute", "bass"} {
		for _, kw := range categoryKeywords[category] {
			if strings.Contains(lower, kw) {
				matched = append(matched, category)
				break
			}
		}
	}
	return matched
}

// Score rates how well a listing matches the stated needs, 0 to 100.
// Components are additive: category 40, budget 30, rating 20, lexical 10.
func Score(listing domain.Listing, needs string, matchedCategories []string, budget *float64) int32 {
	var score int32

	category := strings.ToLower(listing.Instrument.Category)
	for _, m := range matchedCategories {
		if category == m {
			score += 40
			break
		}
	}

	if budget == nil {
		score += 20
	} else if listing.DailyRate <= *budget {
		score += 30
	} else if listing.DailyRate <= *budget*1.5 {
		score += 15
	}

	switch {
	case listing.AvgRating >= 4.5:
		score += 20
	case listing.AvgRating >= 4.0:
		score += 15
	case listing.AvgRating >= 3.5:
		score += 10
	}

	combined := strings.ToLower(listing.Instrument.Name + " " + listing.Instrument.Description)
	for _, token := range strings.Fields(strings.ToLower(needs)) {
		if strings.Contains(combined, token) {
			score += 10
			break
		}
	}

	return score
}

// Scored pairs a listing with its match score.
type Scored struct {
	Listing domain.Listing
	Score   int32
}

// Rank scores every listing, drops zero scores, sorts descending with
// ties keeping original listing order, and truncates to the top 5.
func Rank(listings []domain.Listing, needs string, matchedCategories []string, budget *float64) []Scored {
	var scored []Scored
	for _, l := range listings {
		s := Score(l, needs, matchedCategories, budget)
		if s > 0 {
			scored = append(scored, Scored{Listing: l, Score: s})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxRecommendations {
		scored = scored[:maxRecommendations]
	}
	return scored
}
