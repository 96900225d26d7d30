package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/OzanKEreal/EndlleesTube/internal/errors"
)

const testHashKey = "test-refresh-hash-key"

func TestRefreshSessionStore_hashToken(t *testing.T) {
	s := NewRefreshSessionStore(nil, testHashKey)

	// Deterministic: the same token always maps to the same row key.
	assert.Equal(t, s.hashToken("token-a"), s.hashToken("token-a"))
	assert.NotEqual(t, s.hashToken("token-a"), s.hashToken("token-b"))

	// Keyed: a different key yields a different digest for the same token.
	other := NewRefreshSessionStore(nil, "another-key")
	assert.NotEqual(t, s.hashToken("token-a"), other.hashToken("token-a"))

	// hex-encoded SHA-256 output
	assert.Len(t, s.hashToken("token-a"), 64)
}

func TestRefreshSessionStore_Store(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewRefreshSessionStore(mock, testHashKey)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO refresh_tokens").
			WithArgs(pgxmock.AnyArg(), "user-123", s.hashToken("raw-token"),
				pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		session, err := s.Store(ctx, "user-123", "raw-token", time.Hour)
		require.NoError(t, err)
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, "user-123", session.UserID)
		assert.Equal(t, s.hashToken("raw-token"), session.TokenHash)
		assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO refresh_tokens").
			WithArgs(pgxmock.AnyArg(), "user-123", s.hashToken("raw-token"),
				pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(fmt.Errorf("db error"))

		_, err := s.Store(ctx, "user-123", "raw-token", time.Hour)
		assert.Error(t, err)
	})
}

func TestRefreshSessionStore_GetByRawToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewRefreshSessionStore(mock, testHashKey)
	ctx := context.Background()
	columns := []string{"id", "user_id", "token_hash", "expires_at", "created_at"}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, token_hash").
			WithArgs(s.hashToken("raw-token")).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow("session-1", "user-123", s.hashToken("raw-token"),
					time.Now().Add(time.Hour), time.Now()))

		session, err := s.GetByRawToken(ctx, "raw-token")
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "session-1", session.ID)
		assert.Equal(t, "user-123", session.UserID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, token_hash").
			WithArgs(s.hashToken("unknown-token")).
			WillReturnError(pgx.ErrNoRows)

		session, err := s.GetByRawToken(ctx, "unknown-token")
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, token_hash").
			WithArgs(s.hashToken("raw-token")).
			WillReturnError(fmt.Errorf("db error"))

		_, err := s.GetByRawToken(ctx, "raw-token")
		assert.Error(t, err)
	})
}

func TestRefreshSessionStore_Rotate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewRefreshSessionStore(mock, testHashKey)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO refresh_tokens").
			WithArgs(pgxmock.AnyArg(), "user-123", s.hashToken("new-token"),
				pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec("DELETE FROM refresh_tokens WHERE id").
			WithArgs("consumed-session").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		session, err := s.Rotate(ctx, "consumed-session", "user-123", "new-token", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, s.hashToken("new-token"), session.TokenHash)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lost race rolls back", func(t *testing.T) {
		// A concurrent rotation already deleted the consumed session, so the
		// delete touches zero rows and the new session must not survive.
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO refresh_tokens").
			WithArgs(pgxmock.AnyArg(), "user-123", s.hashToken("new-token"),
				pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec("DELETE FROM refresh_tokens WHERE id").
			WithArgs("consumed-session").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectRollback()

		session, err := s.Rotate(ctx, "consumed-session", "user-123", "new-token", time.Hour)
		assert.Nil(t, session)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO refresh_tokens").
			WithArgs(pgxmock.AnyArg(), "user-123", s.hashToken("new-token"),
				pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(fmt.Errorf("db error"))
		mock.ExpectRollback()

		_, err := s.Rotate(ctx, "consumed-session", "user-123", "new-token", time.Hour)
		assert.Error(t, err)
	})
}

func TestRefreshSessionStore_DeleteAllByRawToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewRefreshSessionStore(mock, testHashKey)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM refresh_tokens WHERE token_hash").
			WithArgs(s.hashToken("raw-token")).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))

		err := s.DeleteAllByRawToken(ctx, "raw-token")
		require.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM refresh_tokens WHERE token_hash").
			WithArgs(s.hashToken("raw-token")).
			WillReturnError(fmt.Errorf("db error"))

		err := s.DeleteAllByRawToken(ctx, "raw-token")
		assert.Error(t, err)
	})
}
