package entity

import (
	"errors"
	"testing"
	"time"
)

func TestEmailJob_MarkFailed(t *testing.T) {
	t.Run("temporary failure schedules a retry", func(t *testing.T) {
		job := NewEmailJob(TemplateVerificationCode, "ada@example.com", "Ada", "Verify", nil)
		job.MarkProcessing()

		job.MarkFailed(errors.New("timeout"), false)

		if job.Status != EmailStatusPending {
			t.Errorf("expected status %s, got %s", EmailStatusPending, job.Status)
		}
		if job.Attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", job.Attempts)
		}
		if !job.ScheduledAt.After(job.CreatedAt) {
			t.Error("expected retry to be scheduled after creation")
		}
		if job.ProcessedAt != nil {
			t.Error("expected processed_at to stay empty")
		}
	})

	t.Run("permanent failure ends the job", func(t *testing.T) {
		job := NewEmailJob(TemplateVerificationCode, "ada@example.com", "Ada", "Verify", nil)

		job.MarkFailed(errors.New("422 validation"), true)

		if job.Status != EmailStatusFailed {
			t.Errorf("expected status %s, got %s", EmailStatusFailed, job.Status)
		}
		if job.LastError != "422 validation" {
			t.Errorf("unexpected last error %q", job.LastError)
		}
		if job.ProcessedAt == nil {
			t.Error("expected processed_at to be set")
		}
	})

	t.Run("attempts are exhausted", func(t *testing.T) {
		job := NewEmailJob(TemplatePasswordReset, "ada@example.com", "Ada", "Reset", nil)
		for i := 0; i < DefaultEmailMaxAttempts; i++ {
			job.MarkFailed(errors.New("503"), false)
		}

		if job.Status != EmailStatusFailed {
			t.Errorf("expected status %s after %d attempts, got %s", EmailStatusFailed, DefaultEmailMaxAttempts, job.Status)
		}
		if job.CanRetry() {
			t.Error("expected no retries left")
		}
	})
}

func TestEmailJob_IsReadyToProcess(t *testing.T) {
	job := NewEmailJob(TemplateVerificationCode, "ada@example.com", "Ada", "Verify", map[string]string{"code": "123456"})

	if !job.IsReadyToProcess(job.ScheduledAt) {
		t.Error("expected a new job to be ready at its scheduled time")
	}
	if job.IsReadyToProcess(job.ScheduledAt.Add(-time.Second)) {
		t.Error("expected job not to be ready before its scheduled time")
	}

	job.MarkSent("msg-1")
	if job.IsReadyToProcess(time.Now().UTC()) {
		t.Error("expected sent job not to be ready")
	}
	if job.ProviderMessageID != "msg-1" {
		t.Errorf("expected provider id msg-1, got %s", job.ProviderMessageID)
	}
}

func TestUser_LoginBookkeeping(t *testing.T) {
	u := NewUser("Ada Lovelace", "ada@example.com", "5551234567", "hash")
	if !u.IsActive || u.EmailVerified || u.IsAdmin {
		t.Fatalf("unexpected defaults: %+v", u)
	}

	now := time.Now().UTC()
	u.RecordFailedLogin(now)
	u.RecordFailedLogin(now)
	if u.FailedLogins != 2 {
		t.Errorf("expected 2 failed logins, got %d", u.FailedLogins)
	}

	u.RecordLogin(now)
	if u.FailedLogins != 0 {
		t.Errorf("expected failed logins to reset, got %d", u.FailedLogins)
	}
	if u.LastLoginAt == nil || !u.LastLoginAt.Equal(now) {
		t.Error("expected last login to be recorded")
	}

	u.MarkEmailVerified(now)
	if !u.EmailVerified {
		t.Error("expected email to be verified")
	}
}
