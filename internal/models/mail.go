package models

import "time"

// MailMessage is an entry on the outgoing mail queue. Messages are
// enqueued in the same transaction as the writes that triggered them and
// delivered asynchronously by the dispatcher.
type MailMessage struct {
	ID        int64
	ToEmail   string
	Subject   string
	HTMLBody  string
	TextBody  string
	CreatedAt time.Time
	SentAt    *time.Time
	Attempts  int
	LastError string
}

// IsSent reports whether the message has been delivered.
func (m *MailMessage) IsSent() bool {
	return m.SentAt != nil
}
