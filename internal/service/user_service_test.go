package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"taskboard/internal/repository"
	"taskboard/internal/repository/sqlite"
)

func newUserService(t *testing.T) UserService {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewUserRepository(db)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init repo: %v", err)
	}
	return NewUserService(repo)
}

func TestUserService_Register(t *testing.T) {
	svc := newUserService(t)

	user, err := svc.Register(context.Background(), "alice", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" {
		t.Error("Register() returned user without id")
	}
	if user.Username != "alice" || user.Email != "a@x.com" {
		t.Errorf("Register() = %+v", user)
	}
	if user.PasswordHash != "" {
		t.Error("Register() leaked password hash")
	}
}

func TestUserService_RegisterValidation(t *testing.T) {
	svc := newUserService(t)

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "missing username", username: "", email: "a@x.com", password: "secret1"},
		{name: "missing email", username: "alice", email: "", password: "secret1"},
		{name: "missing password", username: "alice", email: "a@x.com", password: ""},
		{name: "short username", username: "al", email: "a@x.com", password: "secret1"},
		{name: "short password", username: "alice", email: "a@x.com", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("Register() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "a@x.com", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// other fields differ; only the email decides
	_, err := svc.Register(ctx, "totally-different", "a@x.com", "another-password")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("Register(duplicate) error = %v, want ErrEmailTaken", err)
	}

	// email comparison is case-insensitive
	_, err = svc.Register(ctx, "alice2", "A@X.COM", "secret1")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register(upper-cased duplicate) error = %v, want ErrEmailTaken", err)
	}
}

func TestUserService_AuthenticateIndistinguishableFailures(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "a@x.com", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, wrongPassword := svc.Authenticate(ctx, "a@x.com", "wrong-password")
	_, unknownEmail := svc.Authenticate(ctx, "nobody@x.com", "secret1")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("Authenticate(wrong password) error = %v, want ErrInvalidCredentials", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("Authenticate(unknown email) error = %v, want ErrInvalidCredentials", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Errorf("failure signals differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestUserService_AuthenticateSuccess(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := svc.Authenticate(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("Authenticate() id = %q, want %q", user.ID, registered.ID)
	}
	if user.PasswordHash != "" {
		t.Error("Authenticate() leaked password hash")
	}
}

func TestUserService_GetByIDMissing(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.GetByID(context.Background(), "no-such-user")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
}
