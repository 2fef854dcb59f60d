package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/sparked/backend/internal/application/adapter"
	"github.com/sparked/backend/internal/domain/entity"
	domainerror "github.com/sparked/backend/internal/domain/error"
	"github.com/sparked/backend/internal/integration/email/templates"
)

// Worker processes the email queue and sends emails.
type Worker struct {
	queue       adapter.EmailQueueRepository
	sender      adapter.EmailSender
	renderer    *templates.Renderer
	config      WorkerConfig
	now         func() time.Time
	lastCleanup time.Time
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// SentRetention is how long sent jobs are kept; zero disables cleanup.
	SentRetention   time.Duration
	CleanupInterval time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval:    5 * time.Second,
		BatchSize:       10,
		SentRetention:   7 * 24 * time.Hour,
		CleanupInterval: time.Hour,
	}
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	return &Worker{
		queue:    queue,
		sender:   sender,
		renderer: renderer,
		config:   config,
		now:      time.Now,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.config.PollInterval,
		"batch_size", w.config.BatchSize,
	)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	w.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	w.processBatch(ctx)

	if w.config.SentRetention <= 0 {
		return
	}
	now := w.now().UTC()
	if now.Sub(w.lastCleanup) < w.config.CleanupInterval {
		return
	}
	w.lastCleanup = now

	removed, err := w.queue.DeleteSentBefore(ctx, now.Add(-w.config.SentRetention))
	if err != nil {
		slog.Error("Failed to clean up sent emails", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("Cleaned up sent emails", "count", removed)
	}
}

// processBatch fetches and processes a batch of pending emails.
func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.now().UTC(), w.config.BatchSize)
	if err != nil {
		slog.Error("Failed to get pending email jobs", "error", err)
		return
	}
	if len(jobs) == 0 {
		return
	}

	slog.Debug("Processing email batch", "count", len(jobs))
	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.processJob(ctx, job)
	}
}

// processJob processes a single email job.
func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"recipient", job.RecipientEmail,
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as processing", "error", err)
		return
	}

	html, text, err := w.renderTemplate(job)
	if err != nil {
		logger.Error("Failed to render email template", "error", err)
		w.handleFailure(ctx, job, err, domainerror.IsPermanentEmailFailure(err))
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("Failed to send email", "error", err)

		w.handleFailure(ctx, job, err, domainerror.IsPermanentEmailFailure(err))
		return
	}

	job.MarkSent(result.MessageID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}

	logger.Info("Email sent", "message_id", result.MessageID)
}

// renderTemplate renders the appropriate template for the job.
func (w *Worker) renderTemplate(job *entity.EmailJob) (string, string, error) {
	var data any
	switch job.TemplateType {
	case entity.TemplateVerificationCode:
		data = templates.VerificationCodeData{
			UserName:  job.TemplateData["user_name"],
			Code:      job.TemplateData["code"],
			VerifyURL: job.TemplateData["verify_url"],
			ExpiresIn: job.TemplateData["expires_in"],
		}
	case entity.TemplatePasswordReset:
		data = templates.PasswordResetData{
			UserName:  job.TemplateData["user_name"],
			ResetURL:  job.TemplateData["reset_url"],
			ExpiresIn: job.TemplateData["expires_in"],
		}
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template type",
			domainerror.ErrInvalidTemplate,
		)
	}

	html, text, err := w.renderer.Render(string(job.TemplateType), data)
	if err != nil {
		return "", "", domainerror.NewEmailError(domainerror.ErrCodeTemplateRenderFailed, "failed to render template", err)
	}
	return html, text, nil
}

// handleFailure records a failed attempt on the job.
func (w *Worker) handleFailure(ctx context.Context, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		slog.Error("Failed to update job after failure",
			"job_id", job.ID,
			"error", updateErr,
		)
	}

	if job.Status == entity.EmailStatusFailed {
		slog.Warn("Email job permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
		return
	}
	slog.Info("Email job scheduled for retry",
		"job_id", job.ID,
		"attempts", job.Attempts,
		"scheduled_at", job.ScheduledAt,
	)
}

// ProcessNow processes pending emails immediately.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}
