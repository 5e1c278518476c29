// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and token verification.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	minPasswordLength = 6
	maxNameLength     = 100
	maxEmailLength    = 254
)

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      models.PublicUser
}

// UserService provides authentication-related operations.
type UserService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	tokens       *auth.TokenService
	hasher       *auth.PasswordHasher
	storeTimeout time.Duration
	now          func() time.Time
}

// NewUserService constructs a UserService from repositories, credential
// primitives and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService, hasher *auth.PasswordHasher, cfg *config.Config) *UserService {
	return &UserService{
		db:           db,
		repomanager:  m,
		tokens:       tokens,
		hasher:       hasher,
		storeTimeout: cfg.StoreTimeout,
		now:          time.Now,
	}
}

// Register creates a user and logs it in. A taken email yields
// common.ErrUserExists; the store's unique constraint backs the lookup.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	ctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrUserExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error searching user: %w", dbx.Classify(err))
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("error hashing password: %w", common.ErrorInternal)
	}

	user, err := repo.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", dbx.Classify(err))
	}

	return s.issue(user)
}

// Login verifies credentials. Unknown email and wrong password both return
// common.ErrInvalidCredentials after the same amount of hashing work.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.ErrInvalidCredentials
	}

	ctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyPassword("", password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", dbx.Classify(err))
	}

	if !s.hasher.VerifyPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token to the user id it asserts.
func (s *UserService) Authenticate(_ context.Context, token string) (string, error) {
	return s.tokens.Verify(token)
}

// Me returns the public view of userID.
func (s *UserService) Me(ctx context.Context, userID string) (*models.PublicUser, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrorNotFound
	}

	ctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error searching user: %w", dbx.Classify(err))
	}

	pub := user.Public()
	return &pub, nil
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", common.ErrorInternal)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user.Public()}, nil
}

func validateRegistration(name, email, password string) error {
	if name == "" {
		return common.NewValidationError("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return common.NewValidationError("name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
	if email == "" {
		return common.NewValidationError("email", "must not be empty")
	}
	if len(email) > maxEmailLength {
		return common.NewValidationError("email", "is too long")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return common.NewValidationError("email", "must be a valid email address")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return common.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	return nil
}
