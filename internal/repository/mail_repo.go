package repository

import (
	"fmt"

	"healthyfamilies/internal/database"
	"healthyfamilies/internal/models"
)

// maxMailAttempts caps delivery retries before a message is parked.
const maxMailAttempts = 5

// MailRepository handles database operations for the outgoing mail queue.
// Messages are enqueued transactionally alongside the writes that
// triggered them; the dispatcher drains the queue outside any transaction.
type MailRepository struct {
	db *database.DB
}

// NewMailRepository creates a new mail repository
func NewMailRepository(db *database.DB) *MailRepository {
	return &MailRepository{db: db}
}

// Enqueue adds a message to the outgoing queue as part of a write batch
func (r *MailRepository) Enqueue(q database.DBTX, msg *models.MailMessage) (int64, error) {
	query := "INSERT INTO mail_queue (to_email, subject, html_body, text_body) VALUES (?, ?, ?, ?)"
	id, err := q.ExecReturningID(query, msg.ToEmail, msg.Subject, msg.HTMLBody, msg.TextBody)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue mail: %w", err)
	}
	return id, nil
}

// NextBatch retrieves the oldest undelivered messages still eligible for
// a delivery attempt
func (r *MailRepository) NextBatch(limit int) ([]models.MailMessage, error) {
	query := `
		SELECT id, to_email, subject, html_body, text_body, created_at, sent_at, attempts, last_error
		FROM mail_queue
		WHERE sent_at IS NULL AND attempts < ?
		ORDER BY id ASC
		LIMIT ?
	`
	rows, err := r.db.Query(query, maxMailAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query mail queue: %w", err)
	}
	defer rows.Close()

	var messages []models.MailMessage
	for rows.Next() {
		var m models.MailMessage
		if err := rows.Scan(&m.ID, &m.ToEmail, &m.Subject, &m.HTMLBody, &m.TextBody, &m.CreatedAt, &m.SentAt, &m.Attempts, &m.LastError); err != nil {
			return nil, fmt.Errorf("failed to scan mail message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// MarkSent records a successful delivery
func (r *MailRepository) MarkSent(id int64) error {
	query := "UPDATE mail_queue SET sent_at = CURRENT_TIMESTAMP, attempts = attempts + 1, last_error = '' WHERE id = ?"
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to mark mail sent: %w", err)
	}
	return nil
}

// MarkFailed records a failed delivery attempt
func (r *MailRepository) MarkFailed(id int64, deliveryErr string) error {
	query := "UPDATE mail_queue SET attempts = attempts + 1, last_error = ? WHERE id = ?"
	if _, err := r.db.Exec(query, deliveryErr, id); err != nil {
		return fmt.Errorf("failed to mark mail failed: %w", err)
	}
	return nil
}
