// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/sparked/backend/internal/application/adapter"
	domainerror "github.com/sparked/backend/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client. A non-empty baseURL replaces the
// public Resend endpoint.
func NewResendClient(apiKey, fromName, fromEmail, baseURL string) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url: %w", err)
		}
		client.BaseURL = u
	}
	return &ResendClient{
		client:    client,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, classifySendError(err)
	}

	return &adapter.SendEmailResult{
		MessageID: resp.Id,
	}, nil
}

// classifySendError wraps a provider error as permanent or temporary.
// 401, 403 and 422 responses will fail again on retry; 429 and 5xx may not.
func classifySendError(err error) error {
	if isPermanentError(err) {
		return domainerror.NewEmailError(
			domainerror.ErrCodePermanentEmailFailure,
			"permanent email failure",
			err,
		)
	}
	return domainerror.NewEmailError(
		domainerror.ErrCodeTemporaryEmailFailure,
		"temporary email failure",
		err,
	)
}

var (
	temporaryPatterns = []string{"429", "rate limit", "timeout", "500", "502", "503", "504"}
	permanentPatterns = []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"}
)

func isPermanentError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())

	for _, pattern := range temporaryPatterns {
		if strings.Contains(msg, pattern) {
			return false
		}
	}
	for _, pattern := range permanentPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// LogSender writes emails to the log instead of delivering them.
// It is used in development when no Resend API key is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that only logs.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the email and reports success.
func (s *LogSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.logger.Info("Email not delivered (log sender)",
		"to", input.To,
		"subject", input.Subject,
		"text", input.Text,
	)
	return &adapter.SendEmailResult{MessageID: "log"}, nil
}

// RecordingSender keeps sent emails in memory and can be told to fail.
type RecordingSender struct {
	mu          sync.Mutex
	sent        []adapter.SendEmailInput
	failErr     error
	isPermanent bool
}

// NewRecordingSender creates an empty recording sender.
func NewRecordingSender() *RecordingSender {
	return &RecordingSender{}
}

// Send records the email, or fails if a failure is configured.
func (m *RecordingSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		if m.isPermanent {
			return nil, domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "recorded permanent failure", m.failErr)
		}
		return nil, domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "recorded temporary failure", m.failErr)
	}

	m.sent = append(m.sent, input)
	return &adapter.SendEmailResult{
		MessageID: fmt.Sprintf("rec-%d", len(m.sent)),
	}, nil
}

// Sent returns a copy of the recorded emails.
func (m *RecordingSender) Sent() []adapter.SendEmailInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]adapter.SendEmailInput, len(m.sent))
	copy(out, m.sent)
	return out
}

// SetFailure makes subsequent sends fail with err.
func (m *RecordingSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
	m.isPermanent = permanent
}

// ClearFailure lets subsequent sends succeed again.
func (m *RecordingSender) ClearFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = nil
	m.isPermanent = false
}

// Reset clears recorded emails and any configured failure.
func (m *RecordingSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.failErr = nil
	m.isPermanent = false
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*LogSender)(nil)
	_ adapter.EmailSender = (*RecordingSender)(nil)
)
