package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/TaoufikZa/watami-mvp/internal/dal/postgres"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
)

// MessageRepository implements the chat log repository for PostgreSQL.
type MessageRepository struct {
	client *postgres.Client
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(client *postgres.Client) *MessageRepository {
	return &MessageRepository{
		client: client,
	}
}

// Insert appends a message to the log.
func (r *MessageRepository) Insert(ctx context.Context, msg message.Message) (message.Message, error) {
	var ctaLabel, ctaLink *string
	if msg.CTA != nil {
		ctaLabel = &msg.CTA.Label
		ctaLink = &msg.CTA.Link
	}

	query, args, err := sq.Insert("wa_messages").
		Columns("id", "text", "sender", "ts", "cta_label", "cta_link").
		Values(msg.ID, msg.Text, string(msg.Sender), msg.Timestamp, ctaLabel, ctaLink).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return message.Message{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return message.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	return msg, nil
}

// List returns all messages in chronological order.
func (r *MessageRepository) List(ctx context.Context) ([]message.Message, error) {
	query, args, err := sq.Select("id", "text", "sender", "ts", "cta_label", "cta_link").
		From("wa_messages").
		OrderBy("ts ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	result := []message.Message{}
	for rows.Next() {
		var (
			msg      message.Message
			sender   string
			ctaLabel *string
			ctaLink  *string
		)
		err := rows.Scan(&msg.ID, &msg.Text, &sender, &msg.Timestamp, &ctaLabel, &ctaLink)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Sender = message.Sender(sender)
		if ctaLabel != nil && ctaLink != nil {
			msg.CTA = &message.CTA{Label: *ctaLabel, Link: *ctaLink}
		}
		result = append(result, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
