// Package auth implements the login and registration flows. Unknown
// email and wrong password deliberately collapse into one error so the
// response never reveals whether an account exists.
package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/internal/infrastructure/audit"
	"github.com/taskhive/backend/internal/password"
	"github.com/taskhive/backend/internal/token"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/usecase"
)

const minPasswordLength = 6

type UseCase struct {
	users  repository.UserRepository
	tokens *token.Service
	trail  usecase.AuditTrail
	logger *zap.Logger
}

func New(users repository.UserRepository, tokens *token.Service, trail usecase.AuditTrail, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		tokens: tokens,
		trail:  trail,
		logger: logger,
	}
}

// Login authenticates the credentials and issues a fresh token. The
// only failure a caller can distinguish is domain.ErrInvalidCredentials;
// which step failed is recorded internally only.
func (uc *UseCase) Login(ctx context.Context, email, plaintext string) (*domain.User, string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.record(audit.ActionLoginFailure, "", email, "unknown email")
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		uc.record(audit.ActionLoginFailure, user.ID, email, "password mismatch")
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "token issuance failed", err)
	}

	uc.record(audit.ActionLoginSuccess, user.ID, email, "")
	return user, signed, nil
}

// Register creates an account and logs it in immediately.
func (uc *UseCase) Register(ctx context.Context, name, email, plaintext string) (*domain.User, string, error) {
	if name == "" {
		return nil, "", domain.NewError(domain.ErrCodeInvalid, "Please add a name")
	}
	if !domain.ValidEmail(email) {
		return nil, "", domain.NewError(domain.ErrCodeInvalid, "Please add a valid email")
	}
	if len(plaintext) < minPasswordLength {
		return nil, "", domain.NewError(domain.ErrCodeInvalid, "Password must be at least 6 characters")
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "password hashing failed", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	signed, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "token issuance failed", err)
	}

	uc.record(audit.ActionRegister, user.ID, email, "")
	return user, signed, nil
}

func (uc *UseCase) record(action, userID, target, detail string) {
	if uc.trail == nil {
		return
	}
	uc.trail.Record(action, userID, target, detail)
}
