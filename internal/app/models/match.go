package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus defines the lifecycle state of a match
type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchAccepted  MatchStatus = "accepted"
	MatchDeclined  MatchStatus = "declined"
	MatchCompleted MatchStatus = "completed"
)

// IsValid reports whether the status is one of the known lifecycle states
func (s MatchStatus) IsValid() bool {
	switch s {
	case MatchPending, MatchAccepted, MatchDeclined, MatchCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions
func (s MatchStatus) IsTerminal() bool {
	return s == MatchDeclined || s == MatchCompleted
}

// CanTransitionTo reports whether the lifecycle allows moving from s to target.
// pending -> accepted|declined, accepted -> completed; declined and completed
// are terminal.
func (s MatchStatus) CanTransitionTo(target MatchStatus) bool {
	switch s {
	case MatchPending:
		return target == MatchAccepted || target == MatchDeclined
	case MatchAccepted:
		return target == MatchCompleted
	}
	return false
}

// HealthStatus classifies a non-terminal match by activity recency.
// It is derived at read time, never stored.
type HealthStatus string

const (
	HealthActive   HealthStatus = "active"
	HealthDormant  HealthStatus = "dormant"
	HealthInactive HealthStatus = "inactive"
	HealthTerminal HealthStatus = "terminal"
)

// HealthThresholds are the policy knobs for health derivation
type HealthThresholds struct {
	DormantAfter  time.Duration
	InactiveAfter time.Duration
}

// DefaultHealthThresholds returns the documented defaults: dormant after
// 7 days without activity, inactive after 30.
func DefaultHealthThresholds() HealthThresholds {
	return HealthThresholds{
		DormantAfter:  7 * 24 * time.Hour,
		InactiveAfter: 30 * 24 * time.Hour,
	}
}

// DeriveHealthStatus classifies a match given its status, the timestamp of its
// most recent activity and the current time. Terminal matches have no health
// classification.
func DeriveHealthStatus(status MatchStatus, lastActivityAt, now time.Time, t HealthThresholds) HealthStatus {
	if status.IsTerminal() {
		return HealthTerminal
	}

	idle := now.Sub(lastActivityAt)
	switch {
	case idle >= t.InactiveAfter:
		return HealthInactive
	case idle >= t.DormantAfter:
		return HealthDormant
	}
	return HealthActive
}

// Match represents a learner/teacher pairing for a skill
type Match struct {
	ID                 uuid.UUID   `json:"id" db:"id"`
	RequestID          *uuid.UUID  `json:"requestId,omitempty" db:"request_id"`
	LearnerID          uuid.UUID   `json:"learnerId" db:"learner_id"`
	TeacherID          uuid.UUID   `json:"teacherId" db:"teacher_id"`
	SkillID            uuid.UUID   `json:"skillId" db:"skill_id"`
	OfferedSkillID     *uuid.UUID  `json:"offeredSkillId,omitempty" db:"offered_skill_id"`
	Message            *string     `json:"message,omitempty" db:"message"`
	Status             MatchStatus `json:"status" db:"status"`
	CompatibilityScore float64     `json:"compatibilityScore" db:"compatibility_score"`
	DistanceKm         *float64    `json:"distanceKm,omitempty" db:"distance_km"`
	CreatedAt          time.Time   `json:"createdAt" db:"created_at"`
	AcceptedAt         *time.Time  `json:"acceptedAt,omitempty" db:"accepted_at"`
	CompletedAt        *time.Time  `json:"completedAt,omitempty" db:"completed_at"`
	UpdatedAt          time.Time   `json:"updatedAt" db:"updated_at"`

	// LastActivityAt is the greatest of created_at, accepted_at and the most
	// recent message timestamp; computed by the repository, not persisted.
	LastActivityAt time.Time `json:"lastActivityAt" db:"-"`

	// Related entities
	Teacher *Profile `json:"teacher,omitempty"`
	Learner *Profile `json:"learner,omitempty"`
	Skill   *Skill   `json:"skill,omitempty"`
}

// IsParty reports whether the given user is learner or teacher on the match
func (m *Match) IsParty(userID uuid.UUID) bool {
	return m.LearnerID == userID || m.TeacherID == userID
}

// Health derives the read-time health classification for the match
func (m *Match) Health(now time.Time, t HealthThresholds) HealthStatus {
	last := m.LastActivityAt
	if last.IsZero() {
		last = m.CreatedAt
		if m.AcceptedAt != nil && m.AcceptedAt.After(last) {
			last = *m.AcceptedAt
		}
	}
	return DeriveHealthStatus(m.Status, last, now, t)
}

// MatchCandidate is a scored discovery result pending persistence
type MatchCandidate struct {
	RequestID          uuid.UUID
	LearnerID          uuid.UUID
	TeacherID          uuid.UUID
	SkillID            uuid.UUID
	CompatibilityScore float64
	DistanceKm         *float64
}

// UpsertOutcome tags the result of an idempotent match insert so callers can
// tell a fresh row from an already-existing one.
type UpsertOutcome string

const (
	UpsertCreated UpsertOutcome = "created"
	UpsertIgnored UpsertOutcome = "ignored"
)

// MatchUpsertResult pairs a candidate with its insert outcome
type MatchUpsertResult struct {
	Match   *Match
	Outcome UpsertOutcome
}
