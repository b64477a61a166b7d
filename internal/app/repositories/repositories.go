package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	ProfileRepository   *ProfileRepository
	RequestRepository   *SkillRequestRepository
	MatchRepository     *MatchRepository
	ReviewRepository    *ReviewRepository
	ChallengeRepository *ChallengeRepository
	SessionRepository   *SessionRepository
	MessageRepository   *MessageRepository
	ReportRepository    *ReportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		ProfileRepository:   NewProfileRepository(db),
		RequestRepository:   NewSkillRequestRepository(db),
		MatchRepository:     NewMatchRepository(db),
		ReviewRepository:    NewReviewRepository(db),
		ChallengeRepository: NewChallengeRepository(db),
		SessionRepository:   NewSessionRepository(db),
		MessageRepository:   NewMessageRepository(db),
		ReportRepository:    NewReportRepository(db),
	}
}
