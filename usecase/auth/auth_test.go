package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/internal/password"
	"github.com/taskhive/backend/internal/token"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	failing bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.failing {
		return nil, errors.New("store unreachable")
	}
	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.failing {
		return errors.New("store unreachable")
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailTaken
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byEmail[user.Email] = user
	return nil
}

type recordedEvent struct {
	action string
	userID string
}

type fakeTrail struct {
	events []recordedEvent
}

func (t *fakeTrail) Record(action, userID, target, detail string) {
	t.events = append(t.events, recordedEvent{action: action, userID: userID})
}

func newTestUseCase(t *testing.T) (*UseCase, *fakeUserRepo, *token.Service, *fakeTrail) {
	t.Helper()
	repo := newFakeUserRepo()
	tokens := token.NewService("auth-test-secret", "taskhive", time.Hour)
	trail := &fakeTrail{}
	return New(repo, tokens, trail, nil), repo, tokens, trail
}

func seedUser(t *testing.T, repo *fakeUserRepo, name, email, plaintext string) *domain.User {
	t.Helper()
	hash, err := password.Hash(plaintext)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	user := &domain.User{Name: name, Email: email, PasswordHash: hash}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return user
}

func TestLoginRoundTrip(t *testing.T) {
	uc, repo, tokens, _ := newTestUseCase(t)
	seeded := seedUser(t, repo, "Ada", "ada@example.com", "s3cret-pass")

	user, signed, err := uc.Login(context.Background(), "ada@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != seeded.ID {
		t.Errorf("user id = %q, want %q", user.ID, seeded.ID)
	}

	subject, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if subject != seeded.ID {
		t.Errorf("token subject = %q, want %q", subject, seeded.ID)
	}
}

// Unknown email and wrong password must be indistinguishable to the
// caller: same error value, so the handler renders the same body.
func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	uc, repo, _, _ := newTestUseCase(t)
	seedUser(t, repo, "Ada", "ada@example.com", "s3cret-pass")

	_, _, unknownErr := uc.Login(context.Background(), "nobody@example.com", "whatever12")
	_, _, mismatchErr := uc.Login(context.Background(), "ada@example.com", "wrong-pass")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(mismatchErr, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", mismatchErr)
	}
	if unknownErr.Error() != mismatchErr.Error() {
		t.Errorf("error messages differ: %q vs %q", unknownErr, mismatchErr)
	}
}

func TestLoginStoreFailureIsNotCredentialError(t *testing.T) {
	uc, repo, _, _ := newTestUseCase(t)
	repo.failing = true

	_, _, err := uc.Login(context.Background(), "ada@example.com", "s3cret-pass")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Error("store failure must not masquerade as bad credentials")
	}
}

func TestRegisterValidation(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	tests := []struct {
		name     string
		userName string
		email    string
		pass     string
	}{
		{"missing name", "", "ada@example.com", "s3cret-pass"},
		{"bad email", "Ada", "not-an-email", "s3cret-pass"},
		{"short password", "Ada", "ada@example.com", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := uc.Register(context.Background(), tt.userName, tt.email, tt.pass)
			if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
				t.Errorf("Register() error = %v, want INVALID", err)
			}
		})
	}
}

func TestRegisterThenLogin(t *testing.T) {
	uc, _, tokens, trail := newTestUseCase(t)

	user, signed, err := uc.Register(context.Background(), "Ada", "ada@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}
	if subject, err := tokens.Verify(signed); err != nil || subject != user.ID {
		t.Fatalf("registration token: subject=%q err=%v", subject, err)
	}

	if _, _, err := uc.Login(context.Background(), "ada@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("Login after Register: %v", err)
	}

	if len(trail.events) < 2 {
		t.Fatalf("expected register+login audit events, got %d", len(trail.events))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	if _, _, err := uc.Register(context.Background(), "Ada", "ada@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, _, err := uc.Register(context.Background(), "Imposter", "ada@example.com", "other-pass1")
	if !domain.IsDomainError(err, domain.ErrCodeConflict) {
		t.Errorf("duplicate email error = %v, want CONFLICT", err)
	}
}
