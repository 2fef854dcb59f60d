package email

import (
	"context"

	"github.com/sparked/backend/internal/application/adapter"
	"github.com/sparked/backend/internal/domain/entity"
	domainerror "github.com/sparked/backend/internal/domain/error"
)

const (
	subjectVerificationCode = "Your SparkEd verification code"
	subjectPasswordReset    = "Reset your SparkEd password"
)

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{queue: queue}
}

// QueueVerificationCodeEmail queues the email carrying a verification code.
func (s *Service) QueueVerificationCodeEmail(ctx context.Context, input adapter.QueueVerificationCodeInput) error {
	job := entity.NewEmailJob(
		entity.TemplateVerificationCode,
		input.UserEmail,
		input.UserName,
		subjectVerificationCode,
		map[string]string{
			"user_name":  input.UserName,
			"code":       input.Code,
			"verify_url": input.VerifyURL,
			"expires_in": input.ExpiresIn,
		},
	)
	return s.enqueue(ctx, job, "failed to queue verification email")
}

// QueuePasswordResetEmail queues a password reset email.
func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	job := entity.NewEmailJob(
		entity.TemplatePasswordReset,
		input.UserEmail,
		input.UserName,
		subjectPasswordReset,
		map[string]string{
			"user_name":  input.UserName,
			"reset_url":  input.ResetURL,
			"expires_in": input.ExpiresIn,
		},
	)
	return s.enqueue(ctx, job, "failed to queue password reset email")
}

func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob, message string) error {
	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, message, err)
	}
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
