package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoch/skillbridge/internal/app/models"
)

// MessageRepository handles database operations for match messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message on a match
func (r *MessageRepository) Create(ctx context.Context, m *models.Message) error {
	query := `
		INSERT INTO messages (match_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, m.MatchID, m.SenderID, m.Content).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}
	return nil
}

// ListByMatch retrieves messages on a match, newest first, bounded by limit
func (r *MessageRepository) ListByMatch(ctx context.Context, matchID uuid.UUID, limit int) ([]*models.Message, error) {
	query := `
		SELECT m.id, m.match_id, m.sender_id, m.content, m.created_at, p.full_name
		FROM messages m
		JOIN profiles p ON p.id = m.sender_id
		WHERE m.match_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, matchID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing messages for match %s: %w", matchID, err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var m models.Message
		var senderName string
		if err := rows.Scan(&m.ID, &m.MatchID, &m.SenderID, &m.Content, &m.CreatedAt, &senderName); err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		m.Sender = &models.Profile{ID: m.SenderID, FullName: senderName}
		messages = append(messages, &m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}
