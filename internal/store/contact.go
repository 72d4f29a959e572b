package store

import (
	"context"
	"fmt"
	"time"
)

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateContactMessage stores msg and returns it with its id and timestamp.
// Field validation happens before this call.
func (s *Store) CreateContactMessage(ctx context.Context, msg ContactMessage) (ContactMessage, error) {
	if err := s.db.QueryRowContext(ctx, `
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, msg.Name, msg.Email, msg.Subject, msg.Message).Scan(&msg.ID, &msg.CreatedAt); err != nil {
		return ContactMessage{}, fmt.Errorf("insert contact message: %w", err)
	}
	return msg, nil
}

// ListContactMessages returns one page of messages, newest first, and the total count.
func (s *Store) ListContactMessages(ctx context.Context, page Page) ([]ContactMessage, int, error) {
	page = page.Normalize()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contact messages: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, subject, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("select contact messages: %w", err)
	}
	defer rows.Close()

	messages := []ContactMessage{}
	for rows.Next() {
		var m ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contact messages: %w", err)
	}

	return messages, total, nil
}
