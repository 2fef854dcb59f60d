package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus represents the lifecycle state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType identifies which template renders a queued email.
type EmailTemplateType string

const (
	TemplateVerificationCode EmailTemplateType = "verification_code"
	TemplatePasswordReset    EmailTemplateType = "password_reset"
)

// DefaultEmailMaxAttempts is how many times a job is tried before it is given up.
const DefaultEmailMaxAttempts = 3

// emailRetryBackoff is indexed by the number of attempts already made.
var emailRetryBackoff = []time.Duration{0, time.Minute, 5 * time.Minute}

// EmailJob is an outbound email waiting in the queue.
type EmailJob struct {
	ID                uuid.UUID
	TemplateType      EmailTemplateType
	RecipientEmail    string
	RecipientName     string
	Subject           string
	TemplateData      map[string]string
	Status            EmailStatus
	Attempts          int
	MaxAttempts       int
	LastError         string
	ProviderMessageID string
	CreatedAt         time.Time
	ScheduledAt       time.Time
	ProcessedAt       *time.Time
}

// NewEmailJob creates a pending job scheduled for immediate delivery.
func NewEmailJob(templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]string) *EmailJob {
	now := time.Now().UTC()
	if data == nil {
		data = map[string]string{}
	}
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    DefaultEmailMaxAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing claims the job for delivery.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records a successful delivery.
func (e *EmailJob) MarkSent(providerMessageID string) {
	now := time.Now().UTC()
	e.Status = EmailStatusSent
	e.ProviderMessageID = providerMessageID
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt. Permanent failures and exhausted jobs end in
// EmailStatusFailed; anything else goes back to pending with a backoff.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	e.Attempts++
	e.LastError = err.Error()

	now := time.Now().UTC()
	if permanent || !e.CanRetry() {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	e.Status = EmailStatusPending
	e.ScheduledAt = now.Add(e.nextBackoff())
}

func (e *EmailJob) nextBackoff() time.Duration {
	if e.Attempts < len(emailRetryBackoff) {
		return emailRetryBackoff[e.Attempts]
	}
	return emailRetryBackoff[len(emailRetryBackoff)-1]
}

// CanRetry reports whether the job has attempts left.
func (e *EmailJob) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}

// IsReadyToProcess reports whether the job is pending and due.
func (e *EmailJob) IsReadyToProcess(now time.Time) bool {
	return e.Status == EmailStatusPending && !now.Before(e.ScheduledAt)
}
