package model

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sparked/backend/internal/domain/entity"
)

// EmailQueueModel represents the email_queue table in the database.
type EmailQueueModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	TemplateType      string    `gorm:"type:varchar(50);not null"`
	RecipientEmail    string    `gorm:"type:varchar(255);index;not null"`
	RecipientName     string    `gorm:"type:varchar(150)"`
	Subject           string    `gorm:"type:varchar(500);not null"`
	TemplateData      string    `gorm:"type:text;not null;default:'{}'"`
	Status            string    `gorm:"type:varchar(20);index;not null;default:'pending'"`
	Attempts          int       `gorm:"not null;default:0"`
	MaxAttempts       int       `gorm:"not null;default:3"`
	LastError         string    `gorm:"type:text"`
	ProviderMessageID string    `gorm:"type:varchar(100)"`
	CreatedAt         time.Time `gorm:"not null"`
	ScheduledAt       time.Time `gorm:"index;not null"`
	ProcessedAt       sql.NullTime
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts an EmailQueueModel to a domain EmailJob entity.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	templateData := map[string]string{}
	if m.TemplateData != "" {
		if err := json.Unmarshal([]byte(m.TemplateData), &templateData); err != nil {
			slog.Warn("Failed to unmarshal email template data", "error", err, "id", m.ID)
		}
	}

	var processedAt *time.Time
	if m.ProcessedAt.Valid {
		t := m.ProcessedAt.Time
		processedAt = &t
	}

	return &entity.EmailJob{
		ID:                m.ID,
		TemplateType:      entity.EmailTemplateType(m.TemplateType),
		RecipientEmail:    m.RecipientEmail,
		RecipientName:     m.RecipientName,
		Subject:           m.Subject,
		TemplateData:      templateData,
		Status:            entity.EmailStatus(m.Status),
		Attempts:          m.Attempts,
		MaxAttempts:       m.MaxAttempts,
		LastError:         m.LastError,
		ProviderMessageID: m.ProviderMessageID,
		CreatedAt:         m.CreatedAt,
		ScheduledAt:       m.ScheduledAt,
		ProcessedAt:       processedAt,
	}
}

// EmailQueueModelFromEntity creates an EmailQueueModel from a domain EmailJob entity.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	templateDataJSON, err := json.Marshal(job.TemplateData)
	if err != nil {
		slog.Error("Failed to marshal email template data", "error", err, "job_id", job.ID)
		templateDataJSON = []byte("{}")
	}

	var processedAt sql.NullTime
	if job.ProcessedAt != nil {
		processedAt = sql.NullTime{Time: *job.ProcessedAt, Valid: true}
	}

	return &EmailQueueModel{
		ID:                job.ID,
		TemplateType:      string(job.TemplateType),
		RecipientEmail:    job.RecipientEmail,
		RecipientName:     job.RecipientName,
		Subject:           job.Subject,
		TemplateData:      string(templateDataJSON),
		Status:            string(job.Status),
		Attempts:          job.Attempts,
		MaxAttempts:       job.MaxAttempts,
		LastError:         job.LastError,
		ProviderMessageID: job.ProviderMessageID,
		CreatedAt:         job.CreatedAt,
		ScheduledAt:       job.ScheduledAt,
		ProcessedAt:       processedAt,
	}
}
