package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChallengeTotalDaysIncludesBothEndpoints(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	week := &Challenge{StartDate: start, EndDate: start.AddDate(0, 0, 6)}
	assert.Equal(t, 7, week.TotalDays())

	single := &Challenge{StartDate: start, EndDate: start}
	assert.Equal(t, 1, single.TotalDays())
}

func TestChallengeContains(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	c := &Challenge{StartDate: start, EndDate: start.AddDate(0, 0, 6)}

	assert.True(t, c.Contains(start))
	assert.True(t, c.Contains(start.AddDate(0, 0, 6)))
	assert.False(t, c.Contains(start.AddDate(0, 0, -1)))
	assert.False(t, c.Contains(start.AddDate(0, 0, 7)))
}
