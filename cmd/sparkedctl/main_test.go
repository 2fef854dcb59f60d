package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sparked/backend/config"
	domainerror "github.com/sparked/backend/internal/domain/error"
	"github.com/sparked/backend/internal/infra/db"
	"github.com/sparked/backend/internal/integration/persistence"
)

func newTestApp(t *testing.T) (*app, *db.Database, *bytes.Buffer) {
	t.Helper()

	database, err := db.Open(&config.DatabaseConfig{Driver: db.DriverSQLite, URL: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	cfg := &config.Config{Security: config.SecurityConfig{BcryptCost: 4}}
	out := &bytes.Buffer{}
	return &app{
		cfg:      cfg,
		open:     func() (*db.Database, error) { return database, nil },
		out:      out,
		keepOpen: true,
	}, database, out
}

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	buf := a.out.(*bytes.Buffer)
	buf.Reset()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetErr(&bytes.Buffer{})
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestCLI_UserLifecycle(t *testing.T) {
	a, database, _ := newTestApp(t)

	if _, err := run(t, a, "migrate"); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	out, err := run(t, a, "users", "create", "Ada@Example.com",
		"--name", "Ada Lovelace", "--phone", "5551234567", "--password", "Abcd123!")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out, "ada@example.com") {
		t.Errorf("expected normalized email in output, got %q", out)
	}

	if _, err := run(t, a, "users", "set-admin", "ada@example.com"); err != nil {
		t.Fatalf("set-admin failed: %v", err)
	}

	user, err := persistence.NewUserRepository(database.DB()).FindByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if !user.IsAdmin || !user.EmailVerified {
		t.Errorf("expected verified admin, got admin=%v verified=%v", user.IsAdmin, user.EmailVerified)
	}

	out, err = run(t, a, "users", "list", "--verified", "yes")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Ada Lovelace") || !strings.Contains(out, "1 of 1 users") {
		t.Errorf("unexpected list output %q", out)
	}

	out, err = run(t, a, "users", "list", "--verified", "no")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "No users found.") {
		t.Errorf("expected empty result, got %q", out)
	}
}

func TestCLI_CreateRejectsWeakPassword(t *testing.T) {
	a, _, _ := newTestApp(t)
	if _, err := run(t, a, "migrate"); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	_, err := run(t, a, "users", "create", "bob@example.com",
		"--name", "Bob", "--phone", "5559876543", "--password", "Abc12345")
	if err == nil {
		t.Fatal("expected weak password to be rejected")
	}
}

func TestCLI_CreateRejectsOverlongPassword(t *testing.T) {
	a, _, _ := newTestApp(t)
	if _, err := run(t, a, "migrate"); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	_, err := run(t, a, "users", "create", "bob@example.com",
		"--name", "Bob", "--phone", "5559876543", "--password", "Abcd123!"+strings.Repeat("x", 70))
	if !errors.Is(err, domainerror.ErrPasswordTooLong) {
		t.Errorf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestCLI_VerifyUnknownUser(t *testing.T) {
	a, _, _ := newTestApp(t)
	if _, err := run(t, a, "migrate"); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	if _, err := run(t, a, "users", "verify", "nobody@example.com"); err == nil {
		t.Error("expected error for unknown user")
	}
}

func TestCLI_ListRejectsBadFilter(t *testing.T) {
	a, _, _ := newTestApp(t)

	if _, err := run(t, a, "users", "list", "--verified", "maybe"); err == nil {
		t.Error("expected error for invalid --verified value")
	}
}

func TestCLI_TokensPurge(t *testing.T) {
	a, _, _ := newTestApp(t)
	if _, err := run(t, a, "migrate"); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	out, err := run(t, a, "tokens", "purge")
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if !strings.Contains(out, "Removed 0 expired tokens") {
		t.Errorf("unexpected output %q", out)
	}
}
