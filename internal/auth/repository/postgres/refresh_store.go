package postgres

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/OzanKEreal/EndlleesTube/internal/auth/domain"
	apperrors "github.com/OzanKEreal/EndlleesTube/internal/errors"
)

// RefreshSessionStore persists refresh sessions in the refresh_tokens table.
// The lookup key is an HMAC-SHA256 of the raw token under a dedicated key:
// deterministic, so the presented token can be recomputed into its row, and
// keyed, so database contents alone don't let an attacker match tokens.
type RefreshSessionStore struct {
	db      DB
	hashKey []byte
}

func NewRefreshSessionStore(db DB, hashKey string) *RefreshSessionStore {
	return &RefreshSessionStore{db: db, hashKey: []byte(hashKey)}
}

func (s *RefreshSessionStore) hashToken(rawToken string) string {
	mac := hmac.New(sha256.New, s.hashKey)
	mac.Write([]byte(rawToken))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *RefreshSessionStore) Store(ctx context.Context, userID, rawToken string, ttl time.Duration) (*domain.RefreshSession, error) {
	now := time.Now()
	session := &domain.RefreshSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: s.hashToken(rawToken),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, session.ID, session.UserID, session.TokenHash, session.ExpiresAt, session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh session: %w", err)
	}

	return session, nil
}

func (s *RefreshSessionStore) GetByRawToken(ctx context.Context, rawToken string) (*domain.RefreshSession, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, created_at
		FROM refresh_tokens
		WHERE token_hash = $1
		LIMIT 1;
	`
	var session domain.RefreshSession
	err := s.db.QueryRow(ctx, query, s.hashToken(rawToken)).Scan(
		&session.ID, &session.UserID, &session.TokenHash, &session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh session: %w", err)
	}

	return &session, nil
}

// Rotate inserts the new session first and then deletes the consumed one,
// both inside one transaction. The delete must remove exactly one row:
// when a concurrent rotation already consumed it, the transaction rolls
// back and the caller loses the race.
func (s *RefreshSessionStore) Rotate(ctx context.Context, consumedID, userID, newRawToken string, ttl time.Duration) (*domain.RefreshSession, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin rotation: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now()
	session := &domain.RefreshSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: s.hashToken(newRawToken),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, session.ID, session.UserID, session.TokenHash, session.ExpiresAt, session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to store rotated session: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM refresh_tokens WHERE id = $1`, consumedID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete consumed session: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit rotation: %w", err)
	}

	return session, nil
}

func (s *RefreshSessionStore) DeleteAllByRawToken(ctx context.Context, rawToken string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, s.hashToken(rawToken))
	if err != nil {
		return fmt.Errorf("failed to delete refresh sessions: %w", err)
	}
	return nil
}
