package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emrekoch/skillbridge/internal/app/models"
)

var testWeights = ScoringWeights{Rating: 0.4, Proximity: 0.3, Level: 0.3}

func f64(v float64) *float64 { return &v }

func TestScoreCandidate_RangeClamped(t *testing.T) {
	inputs := []ScoreInput{
		{CandidateRating: 0, CandidateLevel: models.LevelBeginner, DesiredLevel: models.LevelExpert, MaxDistanceKm: 50},
		{CandidateRating: 5, CandidateLevel: models.LevelExpert, DesiredLevel: models.LevelExpert,
			RequesterLat: f64(41.0), RequesterLon: f64(29.0), CandidateLat: f64(41.0), CandidateLon: f64(29.0), MaxDistanceKm: 50},
		{CandidateRating: 7.5, CandidateLevel: models.LevelExpert, DesiredLevel: models.LevelExpert, MaxDistanceKm: 50},
		{CandidateRating: -2, MaxDistanceKm: 50},
	}

	for _, in := range inputs {
		result := ScoreCandidate(in, testWeights)
		assert.GreaterOrEqual(t, result.CompatibilityScore, 0.0)
		assert.LessOrEqual(t, result.CompatibilityScore, 100.0)
	}
}

func TestScoreCandidate_DecreasesWithDistance(t *testing.T) {
	base := ScoreInput{
		CandidateRating: 4.5,
		CandidateLevel:  models.LevelAdvanced,
		DesiredLevel:    models.LevelAdvanced,
		RequesterLat:    f64(41.0),
		RequesterLon:    f64(29.0),
		MaxDistanceKm:   100,
	}

	prev := 101.0
	// Walk the candidate eastward; each step must score no better than the last
	for _, lonOffset := range []float64{0.0, 0.2, 0.4, 0.8} {
		in := base
		in.CandidateLat = f64(41.0)
		in.CandidateLon = f64(29.0 + lonOffset)
		result := ScoreCandidate(in, testWeights)
		assert.Less(t, result.CompatibilityScore, prev)
		prev = result.CompatibilityScore
	}
}

func TestScoreCandidate_MissingCoordinates(t *testing.T) {
	in := ScoreInput{
		CandidateRating: 4.0,
		CandidateLevel:  models.LevelIntermediate,
		DesiredLevel:    models.LevelIntermediate,
		MaxDistanceKm:   50,
	}

	result := ScoreCandidate(in, testWeights)

	assert.Nil(t, result.DistanceKm)
	// 0.4*(4/5) + 0.3*0.5 + 0.3*1.0 = 0.77
	assert.InDelta(t, 77.0, result.CompatibilityScore, 0.001)
}

func TestScoreCandidate_DistanceComputed(t *testing.T) {
	in := ScoreInput{
		CandidateRating: 5.0,
		CandidateLevel:  models.LevelExpert,
		DesiredLevel:    models.LevelExpert,
		RequesterLat:    f64(41.0082),
		RequesterLon:    f64(28.9784),
		CandidateLat:    f64(41.0082),
		CandidateLon:    f64(28.9784),
		MaxDistanceKm:   50,
	}

	result := ScoreCandidate(in, testWeights)

	if assert.NotNil(t, result.DistanceKm) {
		assert.InDelta(t, 0.0, *result.DistanceKm, 0.001)
	}
	assert.InDelta(t, 100.0, result.CompatibilityScore, 0.001)
}

func TestLevelScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate models.SkillLevel
		desired   models.SkillLevel
		want      float64
	}{
		{"exact match", models.LevelAdvanced, models.LevelAdvanced, 1.0},
		{"candidate above", models.LevelExpert, models.LevelBeginner, 0.75},
		{"candidate below", models.LevelBeginner, models.LevelExpert, 0.25},
		{"unknown candidate level", "", models.LevelExpert, 0.5},
		{"unknown desired level", models.LevelExpert, "", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, levelScore(tt.candidate, tt.desired))
		})
	}
}
