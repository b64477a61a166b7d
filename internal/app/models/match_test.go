package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMatchStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    MatchStatus
		to      MatchStatus
		allowed bool
	}{
		{MatchPending, MatchAccepted, true},
		{MatchPending, MatchDeclined, true},
		{MatchPending, MatchCompleted, false},
		{MatchAccepted, MatchCompleted, true},
		{MatchAccepted, MatchDeclined, false},
		{MatchAccepted, MatchAccepted, false},
		{MatchDeclined, MatchAccepted, false},
		{MatchDeclined, MatchPending, false},
		{MatchCompleted, MatchAccepted, false},
		{MatchCompleted, MatchPending, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to),
			"%s -> %s", c.from, c.to)
	}
}

func TestMatchStatus_IsTerminal(t *testing.T) {
	assert.False(t, MatchPending.IsTerminal())
	assert.False(t, MatchAccepted.IsTerminal())
	assert.True(t, MatchDeclined.IsTerminal())
	assert.True(t, MatchCompleted.IsTerminal())
}

func TestDeriveHealthStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	thresholds := DefaultHealthThresholds()

	cases := []struct {
		name   string
		status MatchStatus
		idle   time.Duration
		want   HealthStatus
	}{
		{"fresh pending", MatchPending, time.Hour, HealthActive},
		{"just under dormant", MatchAccepted, 7*24*time.Hour - time.Minute, HealthActive},
		{"dormant at threshold", MatchAccepted, 7 * 24 * time.Hour, HealthDormant},
		{"dormant pending", MatchPending, 10 * 24 * time.Hour, HealthDormant},
		{"inactive", MatchAccepted, 31 * 24 * time.Hour, HealthInactive},
		{"completed is terminal", MatchCompleted, time.Hour, HealthTerminal},
		{"declined is terminal", MatchDeclined, 100 * 24 * time.Hour, HealthTerminal},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := DeriveHealthStatus(c.status, now.Add(-c.idle), now, thresholds)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestMatch_Health_FallsBackToStampedTimes(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	accepted := now.Add(-2 * 24 * time.Hour)

	m := &Match{
		Status:     MatchAccepted,
		CreatedAt:  now.Add(-20 * 24 * time.Hour),
		AcceptedAt: &accepted,
	}

	// No message activity recorded; accepted_at is the most recent movement.
	assert.Equal(t, HealthActive, m.Health(now, DefaultHealthThresholds()))
}

func TestMatch_Health_SessionActivityRevivesDormantMatch(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	accepted := now.Add(-30 * 24 * time.Hour)

	m := &Match{
		Status:     MatchAccepted,
		CreatedAt:  now.Add(-40 * 24 * time.Hour),
		AcceptedAt: &accepted,
	}
	assert.Equal(t, HealthDormant, m.Health(now, DefaultHealthThresholds()))

	// A session proposal or message bumps updated_at, which the repository
	// folds into last_activity_at.
	m.LastActivityAt = now.Add(-time.Hour)
	assert.Equal(t, HealthActive, m.Health(now, DefaultHealthThresholds()))
}

func TestMatch_IsParty(t *testing.T) {
	learner := uuid.New()
	teacher := uuid.New()
	m := &Match{LearnerID: learner, TeacherID: teacher}

	assert.True(t, m.IsParty(learner))
	assert.True(t, m.IsParty(teacher))
	assert.False(t, m.IsParty(uuid.New()))
}
