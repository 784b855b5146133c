package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offloadr/connect-api/internal/domain"
)

// MessageRepository manages channel messages. Messages are append-only;
// there is no update or delete.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	// ListByChannel returns every message in the channel, oldest first.
	ListByChannel(ctx context.Context, channelID string) ([]domain.Message, error)
	// ListByChannelAndType pushes the type filter into the query; used for
	// the client read path, which must never fetch the staff partition.
	ListByChannelAndType(ctx context.Context, channelID string, msgType domain.MessageType) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

const messageColumns = `id, channel_id, sender_id, sender_name, sender_role, type, text,
        recipient_id, recipient_name, created_at`

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (channel_id, sender_id, sender_name, sender_role, type, text, recipient_id, recipient_name)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.ChannelID,
		msg.SenderID,
		msg.SenderName,
		msg.SenderRole,
		msg.Type,
		msg.Text,
		msg.RecipientID,
		msg.RecipientName,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *messageRepository) ListByChannel(ctx context.Context, channelID string) ([]domain.Message, error) {
	const query = `
        SELECT ` + messageColumns + `
        FROM messages WHERE channel_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *messageRepository) ListByChannelAndType(ctx context.Context, channelID string, msgType domain.MessageType) ([]domain.Message, error) {
	const query = `
        SELECT ` + messageColumns + `
        FROM messages WHERE channel_id=$1 AND type=$2 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, channelID, msgType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *messageRepository) scanMany(rows pgx.Rows) ([]domain.Message, error) {
	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.ChannelID,
			&msg.SenderID,
			&msg.SenderName,
			&msg.SenderRole,
			&msg.Type,
			&msg.Text,
			&msg.RecipientID,
			&msg.RecipientName,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
