package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sparked/backend/internal/application/adapter"
	domainerror "github.com/sparked/backend/internal/domain/error"
)

func newProviderServer(t *testing.T, status int, received *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if received != nil {
			_ = json.NewDecoder(r.Body).Decode(received)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status < 300 {
			_, _ = w.Write([]byte(`{"id":"re_123"}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{"statusCode":%d,"name":"error","message":"%d %s"}`, status, status, http.StatusText(status))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResendClient_Send(t *testing.T) {
	var body map[string]any
	server := newProviderServer(t, http.StatusOK, &body)

	client, err := NewResendClient("re_test", "SparkEd", "noreply@sparked.test", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := client.Send(context.Background(), adapter.SendEmailInput{
		To:      "ada@example.com",
		Subject: "Your SparkEd verification code",
		HTML:    "<p>123456</p>",
		Text:    "123456",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MessageID != "re_123" {
		t.Errorf("expected message id re_123, got %s", result.MessageID)
	}
	if body["from"] != "SparkEd <noreply@sparked.test>" {
		t.Errorf("expected from header with display name, got %v", body["from"])
	}
	if body["subject"] != "Your SparkEd verification code" {
		t.Errorf("unexpected subject %v", body["subject"])
	}
}

func TestResendClient_SendClassifiesFailures(t *testing.T) {
	tests := []struct {
		name              string
		status            int
		expectedPermanent bool
	}{
		{name: "validation error", status: http.StatusUnprocessableEntity, expectedPermanent: true},
		{name: "unauthorized", status: http.StatusUnauthorized, expectedPermanent: true},
		{name: "unavailable", status: http.StatusServiceUnavailable, expectedPermanent: false},
		{name: "internal error", status: http.StatusInternalServerError, expectedPermanent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newProviderServer(t, tt.status, nil)
			client, err := NewResendClient("re_test", "SparkEd", "noreply@sparked.test", server.URL)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			_, err = client.Send(context.Background(), adapter.SendEmailInput{To: "ada@example.com", Subject: "s", Text: "t"})
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := domainerror.IsPermanentEmailFailure(err); got != tt.expectedPermanent {
				t.Errorf("expected permanent=%v, got %v (%v)", tt.expectedPermanent, got, err)
			}
		})
	}
}

func TestNewResendClient_InvalidBaseURL(t *testing.T) {
	if _, err := NewResendClient("re_test", "SparkEd", "noreply@sparked.test", "http://[::1"); err == nil {
		t.Error("expected an error for a malformed base url")
	}
}
