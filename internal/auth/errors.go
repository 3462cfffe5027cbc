package auth

import (
	"errors"
	"fmt"

	"github.com/nerrad567/pulselink-core/internal/domain"
)

var (
	// ErrInvalidToken is returned for a bad signature, a wrong algorithm,
	// an expired token or missing claims.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidCredentials is returned for any failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken is returned by Register before any hashing work
	// when the username already exists.
	ErrUsernameTaken = fmt.Errorf("%w: username already taken", domain.ErrDuplicate)

	// ErrInvalidHash is returned when a stored hash cannot be parsed.
	ErrInvalidHash = errors.New("invalid password hash")
)
