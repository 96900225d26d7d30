package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OzanKEreal/EndlleesTube/internal/auth/domain"
	repo "github.com/OzanKEreal/EndlleesTube/internal/auth/repository/postgres"
	apperrors "github.com/OzanKEreal/EndlleesTube/internal/errors"
)

var userColumns = []string{
	"id", "username", "email", "display_name", "password_hash", "role", "created_at", "updated_at",
}

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewUserRepository(mock)
	ctx := context.Background()

	user := &domain.User{
		ID:           "user-123",
		Username:     "ada99",
		Email:        "ada@example.com",
		DisplayName:  "Ada Lovelace",
		PasswordHash: "hash",
		Role:         "user",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Username, user.Email, user.DisplayName,
				user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Create(ctx, user)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrUserExists", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Username, user.Email, user.DisplayName,
				user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		err := r.Create(ctx, user)
		assert.ErrorIs(t, err, apperrors.ErrUserExists)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Username, user.Email, user.DisplayName,
				user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Create(ctx, user)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrUserExists)
	})
}

func TestUserRepository_GetByIdentifier(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewUserRepository(mock)
	ctx := context.Background()

	t.Run("matches email", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username, email").
			WithArgs("ada@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-123", "ada99", "ada@example.com", "Ada Lovelace",
					"hash", "user", time.Now(), time.Now()))

		user, err := r.GetByIdentifier(ctx, "ada@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "user-123", user.ID)
		assert.Equal(t, "ada99", user.Username)
	})

	t.Run("matches username", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username, email").
			WithArgs("ada99").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-123", "ada99", "ada@example.com", "Ada Lovelace",
					"hash", "user", time.Now(), time.Now()))

		user, err := r.GetByIdentifier(ctx, "ada99")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username, email").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByIdentifier(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username, email").
			WithArgs("ada99").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByIdentifier(ctx, "ada99")
		assert.Error(t, err)
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewUserRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username, email").
			WithArgs("user-123").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-123", "ada99", "ada@example.com", "Ada Lovelace",
					"hash", "user", time.Now(), time.Now()))

		user, err := r.GetByID(ctx, "user-123")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "ada99", user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username, email").
			WithArgs("gone").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByID(ctx, "gone")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserRepository_ExistsByEmailOrUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewUserRepository(mock)
	ctx := context.Background()

	t.Run("exists", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("ada@example.com", "ada99").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := r.ExistsByEmailOrUsername(ctx, "ada@example.com", "ada99")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("does not exist", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("new@example.com", "newbie").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := r.ExistsByEmailOrUsername(ctx, "new@example.com", "newbie")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("ada@example.com", "ada99").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.ExistsByEmailOrUsername(ctx, "ada@example.com", "ada99")
		assert.Error(t, err)
	})
}
