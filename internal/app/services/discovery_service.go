package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/app/repositories"
	"github.com/emrekoch/skillbridge/internal/config"
	"github.com/emrekoch/skillbridge/internal/events"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// candidateFinder is the profile search surface discovery needs
type candidateFinder interface {
	FindTeacherCandidates(ctx context.Context, filter repositories.CandidateFilter) ([]*models.Profile, error)
}

// requestReader loads skill requests for the find-matches flow
type requestReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.SkillRequest, error)
}

// matchWriter persists discovered candidates idempotently
type matchWriter interface {
	CreateOrIgnore(ctx context.Context, candidates []models.MatchCandidate) ([]models.MatchUpsertResult, error)
}

// DiscoveryService filters, scores and ranks teacher candidates, and runs
// the request-driven discovery flow that persists match rows.
type DiscoveryService struct {
	profiles        candidateFinder
	requests        requestReader
	matches         matchWriter
	publisher       events.Publisher
	weights         ScoringWeights
	defaultRadiusKm float64
	maxResults      int
	logger          zerolog.Logger
}

// NewDiscoveryService creates a new DiscoveryService
func NewDiscoveryService(profiles candidateFinder, requests requestReader, matches matchWriter, publisher events.Publisher, cfg *config.Config, logger zerolog.Logger) *DiscoveryService {
	return &DiscoveryService{
		profiles:        profiles,
		requests:        requests,
		matches:         matches,
		publisher:       publisher,
		weights:         WeightsFromConfig(cfg),
		defaultRadiusKm: cfg.Matching.DefaultRadiusKm,
		maxResults:      cfg.Matching.MaxResults,
		logger:          logger,
	}
}

// Discover returns a ranked, bounded page of teacher candidates matching
// the query. It is a pure read path with no side effects.
func (s *DiscoveryService) Discover(ctx context.Context, actorID uuid.UUID, q dto.DiscoverQuery) ([]dto.RankedCandidate, error) {
	radius := q.RadiusKm
	if radius <= 0 {
		radius = s.defaultRadiusKm
	}

	profiles, err := s.profiles.FindTeacherCandidates(ctx, repositories.CandidateFilter{
		Query:        q.Query,
		Category:     q.Category,
		OnlineOnly:   q.OnlineOnly,
		InPersonOnly: q.InPersonOnly,
		VerifiedOnly: q.VerifiedOnly,
		MinRating:    q.MinRating,
		ExcludeUser:  actorID,
	})
	if err != nil {
		return nil, err
	}

	ranked := make([]dto.RankedCandidate, 0, len(profiles))
	for _, p := range profiles {
		skill := bestTeachableSkill(p, nil)

		result := ScoreCandidate(ScoreInput{
			CandidateRating: p.Rating,
			CandidateLevel:  teachableLevel(skill),
			RequesterLat:    q.Latitude,
			RequesterLon:    q.Longitude,
			CandidateLat:    p.Latitude,
			CandidateLon:    p.Longitude,
			MaxDistanceKm:   radius,
		}, s.weights)

		// Candidates beyond the radius are excluded outright; candidates
		// without coordinates stay in because distance is unknown, not zero.
		if q.HasCoordinates() && result.DistanceKm != nil && *result.DistanceKm > radius {
			continue
		}

		ranked = append(ranked, dto.RankedCandidate{
			Profile:            p,
			TeacherSkill:       skill,
			DistanceKm:         result.DistanceKm,
			CompatibilityScore: result.CompatibilityScore,
		})
	}

	sortRanked(ranked)
	if len(ranked) > s.maxResults {
		ranked = ranked[:s.maxResults]
	}
	return ranked, nil
}

// FindMatchesForRequest runs discovery for an open skill request, scores the
// candidates and persists match rows idempotently. Re-running it for the same
// request never duplicates or re-scores existing matches.
func (s *DiscoveryService) FindMatchesForRequest(ctx context.Context, actorID, requestID uuid.UUID) ([]models.MatchUpsertResult, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.RequesterID != actorID {
		return nil, apperrors.ErrRequestNotOwned
	}
	if request.Status != models.RequestOpen {
		return nil, apperrors.ErrRequestNotOpen
	}

	radius := request.MaxDistanceKm
	if radius <= 0 {
		radius = s.defaultRadiusKm
	}

	profiles, err := s.profiles.FindTeacherCandidates(ctx, repositories.CandidateFilter{
		SkillID:     &request.SkillID,
		ExcludeUser: request.RequesterID,
	})
	if err != nil {
		return nil, err
	}

	var candidates []models.MatchCandidate
	for _, p := range profiles {
		skill := bestTeachableSkill(p, &request.SkillID)

		result := ScoreCandidate(ScoreInput{
			CandidateRating: p.Rating,
			CandidateLevel:  teachableLevel(skill),
			DesiredLevel:    request.DesiredLevel,
			RequesterLat:    request.Latitude,
			RequesterLon:    request.Longitude,
			CandidateLat:    p.Latitude,
			CandidateLon:    p.Longitude,
			MaxDistanceKm:   radius,
		}, s.weights)

		if !request.IsRemote && request.HasCoordinates() && result.DistanceKm != nil && *result.DistanceKm > radius {
			continue
		}

		candidates = append(candidates, models.MatchCandidate{
			RequestID:          request.ID,
			LearnerID:          request.RequesterID,
			TeacherID:          p.ID,
			SkillID:            request.SkillID,
			CompatibilityScore: result.CompatibilityScore,
			DistanceKm:         result.DistanceKm,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidateLess(candidates[i], candidates[j])
	})
	if len(candidates) > s.maxResults {
		candidates = candidates[:s.maxResults]
	}

	if len(candidates) == 0 {
		return []models.MatchUpsertResult{}, nil
	}

	// Persistence is best effort: a storage hiccup here must not fail the
	// discovery read the learner is waiting on.
	results, err := s.matches.CreateOrIgnore(ctx, candidates)
	if err != nil {
		s.logger.Warn().Err(err).Str("requestId", requestID.String()).Msg("Failed to persist discovered matches")
		results = make([]models.MatchUpsertResult, 0, len(candidates))
		for i := range candidates {
			results = append(results, models.MatchUpsertResult{
				Match: &models.Match{
					RequestID:          &candidates[i].RequestID,
					LearnerID:          candidates[i].LearnerID,
					TeacherID:          candidates[i].TeacherID,
					SkillID:            candidates[i].SkillID,
					CompatibilityScore: candidates[i].CompatibilityScore,
					DistanceKm:         candidates[i].DistanceKm,
					Status:             models.MatchPending,
				},
				Outcome: models.UpsertIgnored,
			})
		}
		return results, nil
	}

	// Drop any result without a match row; response building assumes
	// every entry carries one.
	kept := results[:0]
	for _, r := range results {
		if r.Match != nil {
			kept = append(kept, r)
		}
	}
	results = kept

	for _, r := range results {
		if r.Outcome != models.UpsertCreated {
			continue
		}
		err := s.publisher.Publish(ctx, events.Event{
			Type:     events.MatchChanged,
			EntityID: r.Match.ID,
			ActorID:  actorID,
			Payload:  map[string]interface{}{"status": string(r.Match.Status)},
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("matchId", r.Match.ID.String()).Msg("Failed to publish match change event")
		}
	}

	return results, nil
}

// candidateLess orders candidates the same way ranked discovery results are
// ordered: score descending, then distance ascending, then nothing further
// (candidate rows carry no rating).
func candidateLess(a, b models.MatchCandidate) bool {
	if a.CompatibilityScore != b.CompatibilityScore {
		return a.CompatibilityScore > b.CompatibilityScore
	}
	return lessDistance(a.DistanceKm, b.DistanceKm)
}

// sortRanked orders by score descending, distance ascending with unknown
// distance last, then rating descending.
func sortRanked(ranked []dto.RankedCandidate) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.CompatibilityScore != b.CompatibilityScore {
			return a.CompatibilityScore > b.CompatibilityScore
		}
		if (a.DistanceKm == nil) != (b.DistanceKm == nil) || (a.DistanceKm != nil && *a.DistanceKm != *b.DistanceKm) {
			return lessDistance(a.DistanceKm, b.DistanceKm)
		}
		return a.Profile.Rating > b.Profile.Rating
	})
}

// lessDistance treats unknown distance as farther than any known one
func lessDistance(a, b *float64) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}

// bestTeachableSkill picks the teachable skill to score against: the one
// matching skillID when given, otherwise the highest declared level.
func bestTeachableSkill(p *models.Profile, skillID *uuid.UUID) *models.UserSkill {
	var best *models.UserSkill
	for _, us := range p.TeachableSkills {
		if skillID != nil && us.SkillID == *skillID {
			return us
		}
		if best == nil || levelRank[us.Level] > levelRank[best.Level] {
			best = us
		}
	}
	return best
}

// teachableLevel returns the skill's level, or empty when no skill matched
func teachableLevel(us *models.UserSkill) models.SkillLevel {
	if us == nil {
		return ""
	}
	return us.Level
}
