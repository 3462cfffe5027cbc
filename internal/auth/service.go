package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/nerrad567/pulselink-core/internal/domain"
	"github.com/nerrad567/pulselink-core/internal/user"
	"github.com/nerrad567/pulselink-core/internal/validate"
)

// Users is the slice of the user repository the service needs.
type Users interface {
	Create(ctx context.Context, in user.NewUser) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	Update(ctx context.Context, id int64, p user.Patch) (domain.Result, error)
}

// Logger is the logging surface the service needs.
type Logger interface {
	Warn(msg string, args ...any)
}

// Registration holds the fields for Register.
type Registration struct {
	SubscriberID int64  `json:"subscriber_id"`
	RoleID       int64  `json:"role_id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

// Service implements registration and login.
type Service struct {
	users  Users
	tokens *TokenIssuer
	logger Logger
}

// NewService creates the credential service.
func NewService(users Users, tokens *TokenIssuer, logger Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

// Tokens returns the issuer used for login, for request authentication.
func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// Register creates a user with a hashed password.
//
// The username is checked before hashing so a taken name fails fast
// with ErrUsernameTaken. The user repository still enforces every
// other field rule, the references and the unique keys.
func (s *Service) Register(ctx context.Context, in Registration) (*user.User, error) {
	if err := validate.Check("username", in.Username, validate.Required); err != nil {
		return nil, err
	}
	if err := validate.Check("password", in.Password, validate.Required); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return s.users.Create(ctx, user.NewUser{
		SubscriberID: in.SubscriberID,
		RoleID:       in.RoleID,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
	})
}

// Login verifies username and password and issues a token.
//
// An unknown username, a user without a stored credential and a wrong
// password all return ErrInvalidCredentials. A legacy hash is replaced
// after a successful check; failing to store the new hash only logs.
func (s *Service) Login(ctx context.Context, username, password string) (*Token, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if u == nil || !u.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	ok, err := VerifyPassword(password, u.PasswordHash)
	if err != nil {
		if errors.Is(err, ErrInvalidHash) {
			s.logger.Warn("stored password hash is unreadable", "user_id", u.ID)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if NeedsRehash(u.PasswordHash) {
		s.rehash(ctx, u.ID, password)
	}

	return s.tokens.Issue(Subject{ID: u.ID, Username: u.Username})
}

func (s *Service) rehash(ctx context.Context, userID int64, password string) {
	hash, err := HashPassword(password)
	if err != nil {
		s.logger.Warn("rehashing password failed", "user_id", userID, "error", err)
		return
	}
	if _, err := s.users.Update(ctx, userID, user.Patch{PasswordHash: &hash}); err != nil {
		s.logger.Warn("storing rehashed password failed", "user_id", userID, "error", err)
	}
}
