package domain

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	DisplayName  string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshSession is the server-side record backing one refresh token. Only
// a keyed hash of the token is stored; the raw value never touches the
// database.
type RefreshSession struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
