package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/OzanKEreal/EndlleesTube/internal/auth/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_refresh_session_store.go -package=mocks github.com/OzanKEreal/EndlleesTube/internal/auth/domain RefreshSessionStore

import (
	"context"
	"time"
)

type UserRepository interface {
	// Create inserts the user. A unique-constraint violation on email or
	// username surfaces as apperrors.ErrUserExists.
	Create(ctx context.Context, user *User) error
	// GetByID returns (nil, nil) when no user matches.
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByIdentifier matches the identifier against email or username and
	// returns (nil, nil) when no user matches.
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}

// RefreshSessionStore persists refresh sessions keyed by a deterministic
// hash of the raw token, so presenting the token is both the credential and
// the lookup key.
type RefreshSessionStore interface {
	Store(ctx context.Context, userID, rawToken string, ttl time.Duration) (*RefreshSession, error)
	// GetByRawToken returns (nil, nil) when no session matches.
	GetByRawToken(ctx context.Context, rawToken string) (*RefreshSession, error)
	// Rotate atomically stores a fresh session for the new token and deletes
	// the consumed one. It fails when the consumed session has already been
	// deleted by a concurrent rotation.
	Rotate(ctx context.Context, consumedID, userID, newRawToken string, ttl time.Duration) (*RefreshSession, error)
	// DeleteAllByRawToken removes every session matching the token's hash.
	DeleteAllByRawToken(ctx context.Context, rawToken string) error
}
