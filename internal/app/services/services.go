package services

// Services defined in this package:
// - MatchService: match lifecycle (propose, transition, read)
// - DiscoveryService: candidate search, scoring and idempotent match creation
// - RequestService: skill request lifecycle
// - ReviewService: post-completion reviews and aggregate ratings
// - ChallengeService: daily check-ins, streaks and leaderboards
// - SessionService: session scheduling and match conversations
// - ReportService: moderation flags
