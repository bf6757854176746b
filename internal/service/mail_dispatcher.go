package service

import (
	"context"
	"log"
	"time"

	"healthyfamilies/internal/repository"
)

const dispatchBatchSize = 10

// MailDispatcher drains the outgoing mail queue in the background. Queued
// messages survive restarts; delivery retries up to the repository's
// attempt cap.
type MailDispatcher struct {
	mailRepo *repository.MailRepository
	email    *EmailService
	interval time.Duration
}

// NewMailDispatcher creates a new mail dispatcher
func NewMailDispatcher(mailRepo *repository.MailRepository, email *EmailService, interval time.Duration) *MailDispatcher {
	return &MailDispatcher{
		mailRepo: mailRepo,
		email:    email,
		interval: interval,
	}
}

// Run polls the queue until the context is cancelled. It is intended to
// run in its own goroutine.
func (d *MailDispatcher) Run(ctx context.Context) {
	log.Printf("Mail dispatcher started: interval=%s", d.interval)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Mail dispatcher stopped")
			return
		case <-ticker.C:
			d.dispatchOnce(ctx)
		}
	}
}

// dispatchOnce sends one batch of queued messages.
func (d *MailDispatcher) dispatchOnce(ctx context.Context) {
	batch, err := d.mailRepo.NextBatch(dispatchBatchSize)
	if err != nil {
		log.Printf("Error fetching mail batch: %v", err)
		return
	}

	for _, msg := range batch {
		if err := d.email.SendEmail(ctx, msg.ToEmail, msg.Subject, msg.HTMLBody, msg.TextBody); err != nil {
			log.Printf("Error sending queued mail %d: %v", msg.ID, err)
			if markErr := d.mailRepo.MarkFailed(msg.ID, err.Error()); markErr != nil {
				log.Printf("Error recording mail failure %d: %v", msg.ID, markErr)
			}
			continue
		}
		if err := d.mailRepo.MarkSent(msg.ID); err != nil {
			log.Printf("Error marking mail %d sent: %v", msg.ID, err)
		}
	}
}
