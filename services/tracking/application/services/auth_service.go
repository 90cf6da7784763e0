package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ghuser/hourglass/pkg/auth"
	"github.com/ghuser/hourglass/pkg/option"
	domain "github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
)

// Session is the outcome of a successful login.
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// AuthService verifies user credentials and issues bearer tokens.
type AuthService struct {
	users  repositories.UserQueries
	hasher repositories.PasswordHasher
	tokens *auth.TokenIssuer

	decoyOnce sync.Once
	decoy     string
}

// decoyPassword is hashed once and compared against when no user matches, so
// an unknown email costs the same hash comparison as a wrong password.
const decoyPassword = "hourglass-login-decoy"

// NewAuthService returns an AuthService. A nil tokens disables bearer tokens:
// Login still verifies the credentials and returns an empty Token.
func NewAuthService(users repositories.UserQueries, hasher repositories.PasswordHasher, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Login returns domain.ErrInvalidCredentials for an unknown email, a user
// without a password, or a wrong password. Every path runs one password
// comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	found, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	withPassword := option.Filter(found, func(u *models.User) bool { return u.PasswordHash != "" })

	var u *models.User
	err = option.Match(withPassword,
		func(candidate *models.User) error {
			u = candidate
			return s.hasher.Compare(candidate.PasswordHash, password)
		},
		func() error {
			_ = s.hasher.Compare(s.decoyHash(), password)
			return domain.ErrInvalidCredentials
		},
	)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, auth.ErrPasswordMismatch):
		return nil, domain.ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("login: %w", err)
	}

	sess := &Session{User: u}
	if s.tokens != nil {
		sess.Token, sess.ExpiresAt, err = s.tokens.Issue(u.ID.UUID)
		if err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
	}
	return sess, nil
}

func (s *AuthService) decoyHash() string {
	s.decoyOnce.Do(func() {
		// On failure the decoy stays empty and Compare fails fast.
		s.decoy, _ = s.hasher.Hash(decoyPassword)
	})
	return s.decoy
}
