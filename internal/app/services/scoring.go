package services

import (
	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/config"
	"github.com/emrekoch/skillbridge/internal/pkg/geo"
)

// neutralProximity is used when either side lacks coordinates, so
// coordinate-less profiles are neither rewarded nor punished.
const neutralProximity = 0.5

// ScoringWeights defines the relative importance of each compatibility
// component. The weights must sum to 1; config validation enforces it.
type ScoringWeights struct {
	Rating    float64
	Proximity float64
	Level     float64
}

// WeightsFromConfig builds scoring weights from the matching config section
func WeightsFromConfig(cfg *config.Config) ScoringWeights {
	return ScoringWeights{
		Rating:    cfg.Matching.RatingWeight,
		Proximity: cfg.Matching.ProximityWeight,
		Level:     cfg.Matching.LevelWeight,
	}
}

// levelRank orders proficiency levels for comparison
var levelRank = map[models.SkillLevel]int{
	models.LevelBeginner:     1,
	models.LevelIntermediate: 2,
	models.LevelAdvanced:     3,
	models.LevelExpert:       4,
}

// ScoreInput carries everything the scorer needs about one candidate
// against one request.
type ScoreInput struct {
	CandidateRating float64
	CandidateLevel  models.SkillLevel
	DesiredLevel    models.SkillLevel
	RequesterLat    *float64
	RequesterLon    *float64
	CandidateLat    *float64
	CandidateLon    *float64
	MaxDistanceKm   float64
}

// ScoreResult is the scorer output: a compatibility score in [0,100] and
// the great-circle distance when both sides have coordinates.
type ScoreResult struct {
	CompatibilityScore float64
	DistanceKm         *float64
}

// ScoreCandidate computes distance and compatibility for one candidate.
// It is pure and deterministic: same inputs, same output, no side effects.
func ScoreCandidate(in ScoreInput, w ScoringWeights) ScoreResult {
	var distance *float64
	if in.RequesterLat != nil && in.RequesterLon != nil && in.CandidateLat != nil && in.CandidateLon != nil {
		d := geo.Haversine(*in.RequesterLat, *in.RequesterLon, *in.CandidateLat, *in.CandidateLon)
		distance = &d
	}

	ratingScore := in.CandidateRating / 5.0
	if ratingScore > 1 {
		ratingScore = 1
	}
	if ratingScore < 0 {
		ratingScore = 0
	}

	proximityScore := neutralProximity
	if distance != nil && in.MaxDistanceKm > 0 {
		proximityScore = 1 - *distance/in.MaxDistanceKm
		if proximityScore < 0 {
			proximityScore = 0
		}
	}

	score := 100 * (w.Rating*ratingScore + w.Proximity*proximityScore + w.Level*levelScore(in.CandidateLevel, in.DesiredLevel))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return ScoreResult{CompatibilityScore: score, DistanceKm: distance}
}

// levelScore rewards an exact level match, gives partial credit when the
// candidate teaches above the desired level, and little when below. An
// unknown level on either side scores neutral.
func levelScore(candidate, desired models.SkillLevel) float64 {
	cr, cok := levelRank[candidate]
	dr, dok := levelRank[desired]
	if !cok || !dok {
		return 0.5
	}
	switch {
	case cr == dr:
		return 1.0
	case cr > dr:
		return 0.75
	default:
		return 0.25
	}
}
