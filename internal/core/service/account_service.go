package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/martijn/secondchance/internal/core/domain"
	"github.com/martijn/secondchance/internal/core/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgUserNotFound       = "User not found"
	msgPasswordTooLong    = "password must be at most 72 bytes"
)

type RegisterInput struct {
	Email     string `validate:"required" label:"email"`
	Password  string `validate:"required" label:"password"`
	FirstName string `validate:"required" label:"firstName"`
	LastName  string `validate:"required" label:"lastName"`
}

type LoginInput struct {
	Email    string `validate:"required" label:"email"`
	Password string `validate:"required" label:"password"`
}

type UpdateCredentialsInput struct {
	Email           string `validate:"required" label:"email"`
	CurrentPassword string `validate:"required" label:"password"`
	// FirstName replaces the stored first name when non-empty.
	FirstName string
}

// AuthResult is returned by every operation that issues a token.
type AuthResult struct {
	UserID    string
	Token     string
	FirstName string
	Email     string
}

type AccountService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenService
	validate *validator.Validate
}

func NewAccountService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenService) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		validate: newValidator(),
	}
}

// Register creates a user and issues a token for it. The steps run in order:
// existence check, field validation, hashing, insert, token issuance.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if in.Email != "" {
		_, err := s.userRepo.FindByEmail(ctx, in.Email)
		switch {
		case err == nil:
			return nil, NewConflictError(msgUserExists)
		case !errors.Is(err, repository.ErrNotFound):
			return nil, NewInternalError("failed to check existing user", err)
		}
	}

	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, NewValidationError(msgPasswordTooLong)
	}

	hashedPassword, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, NewValidationError(msgPasswordTooLong)
		}
		return nil, NewInternalError("failed to hash password", err)
	}

	user := domain.NewUser(in.Email, hashedPassword, in.FirstName, in.LastName)

	// The insert is not tied to the caller's lifetime so an abandoned request
	// cannot cut a write short.
	if err := s.userRepo.Create(context.WithoutCancel(ctx), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewConflictError(msgUserExists)
		}
		return nil, NewInternalError("failed to register user", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, NewInternalError("failed to issue token", err)
	}

	return &AuthResult{
		UserID:    user.ID,
		Token:     token,
		FirstName: user.FirstName,
		Email:     user.Email,
	}, nil
}

// Login verifies credentials. Unknown email and wrong password produce the
// same AuthError.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewAuthError(msgInvalidCredentials)
		}
		return nil, NewInternalError("failed to look up user", err)
	}

	if !s.hasher.Verify(in.Password, user.Password) {
		return nil, NewAuthError(msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, NewInternalError("failed to issue token", err)
	}

	return &AuthResult{
		UserID:    user.ID,
		Token:     token,
		FirstName: user.FirstName,
		Email:     user.Email,
	}, nil
}

// UpdateCredentials re-authenticates the user with their current password,
// optionally renames them and issues a fresh token.
func (s *AccountService) UpdateCredentials(ctx context.Context, in UpdateCredentialsInput) (*AuthResult, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError(msgUserNotFound)
		}
		return nil, NewInternalError("failed to look up user", err)
	}

	if !s.hasher.Verify(in.CurrentPassword, user.Password) {
		return nil, NewAuthError(msgInvalidCredentials)
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(context.WithoutCancel(ctx), user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError(msgUserNotFound)
		}
		return nil, NewInternalError("failed to update user", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, NewInternalError("failed to issue token", err)
	}

	return &AuthResult{
		UserID:    user.ID,
		Token:     token,
		FirstName: user.FirstName,
		Email:     user.Email,
	}, nil
}

// ListUsers returns every account; used by the CLI.
func (s *AccountService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list users", err)
	}
	return users, nil
}

// ValidateToken exposes token verification to the transport layer.
func (s *AccountService) ValidateToken(token string) (*TokenClaims, error) {
	return s.tokens.Validate(token)
}
