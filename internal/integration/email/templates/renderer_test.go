package templates

import (
	"strings"
	"testing"
)

func TestRenderer_VerificationCode(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	html, text, err := r.Render("verification_code", VerificationCodeData{
		UserName:  "Ada <admin>",
		Code:      "042917",
		VerifyURL: "https://sparked.test/verify?email=ada%40example.com",
		ExpiresIn: "5 minutes",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(html, "042917") || !strings.Contains(text, "042917") {
		t.Error("expected both versions to contain the code")
	}
	if strings.Contains(html, "<admin>") {
		t.Error("expected user name to be escaped in HTML")
	}
	if !strings.Contains(text, "Ada <admin>") {
		t.Error("expected user name to be verbatim in text")
	}
	if !strings.Contains(text, "5 minutes") {
		t.Error("expected expiry in text version")
	}
}

func TestRenderer_PasswordReset(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	html, err := r.RenderHTML("password_reset", PasswordResetData{
		UserName:  "Ada",
		ResetURL:  "https://sparked.test/reset-password?token=abc",
		ExpiresIn: "1 hour",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "reset-password?token=abc") {
		t.Error("expected reset URL in HTML")
	}
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	if _, _, err := r.Render("group_invitation", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}
