package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OzanKEreal/EndlleesTube/internal/auth/domain"
	"github.com/OzanKEreal/EndlleesTube/internal/auth/dto"
	"github.com/OzanKEreal/EndlleesTube/internal/auth/service"
	apperrors "github.com/OzanKEreal/EndlleesTube/internal/errors"
	"github.com/OzanKEreal/EndlleesTube/internal/logging"
	"github.com/OzanKEreal/EndlleesTube/internal/mocks"
	"github.com/OzanKEreal/EndlleesTube/pkg/constant"
)

// lightHasher keeps argon2 cheap enough for unit tests.
func lightHasher() *service.Argon2Hasher {
	return service.NewArgon2Hasher(service.Argon2Params{
		MemoryKiB:   1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func testLogger() logging.Logger {
	return logging.NewJSONLogger(io.Discard, slog.LevelError)
}

type serviceMocks struct {
	repo     *mocks.MockUserRepository
	sessions *mocks.MockRefreshSessionStore
	tokens   *mocks.MockTokenGenerator
}

func newTestUserService(t *testing.T) (*service.UserService, serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := serviceMocks{
		repo:     mocks.NewMockUserRepository(ctrl),
		sessions: mocks.NewMockRefreshSessionStore(ctrl),
		tokens:   mocks.NewMockTokenGenerator(ctrl),
	}

	s, err := service.NewUserService(m.repo, m.sessions, m.tokens, lightHasher(), testLogger())
	require.NoError(t, err)

	return s, m
}

func testUser(hash string) *domain.User {
	now := time.Now()

	return &domain.User{
		ID:           "c7f9e6a0-1111-2222-3333-444455556666",
		Username:     "ada99",
		Email:        "ada@example.com",
		DisplayName:  "Ada Lovelace",
		PasswordHash: hash,
		Role:         constant.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	s, m := newTestUserService(t)

	input := dto.RegisterInput{
		Username:    "ada99",
		Email:       "ada@example.com",
		DisplayName: "Ada Lovelace",
		Password:    "password123",
	}

	var created *domain.User

	m.repo.EXPECT().ExistsByEmailOrUsername(gomock.Any(), input.Email, input.Username).Return(false, nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *domain.User) error {
			created = u
			return nil
		})
	m.tokens.EXPECT().Generate(gomock.Any(), input.Username, constant.RoleUser).
		Return("access-token", "refresh-token", nil)
	m.tokens.EXPECT().GetRefreshTokenExpiry().Return(7 * 24 * time.Hour)
	m.sessions.EXPECT().Store(gomock.Any(), gomock.Any(), "refresh-token", 7*24*time.Hour).
		Return(&domain.RefreshSession{ID: "session-1"}, nil)

	result, err := s.Register(context.Background(), input)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, input.Password, created.PasswordHash)

	assert.Equal(t, created.ID, result.User.ID)
	assert.Equal(t, input.Username, result.User.Username)
	assert.Equal(t, constant.RoleUser, result.User.Role)
	assert.Equal(t, "access-token", result.Tokens.AccessToken)
	assert.Equal(t, "refresh-token", result.Tokens.RefreshToken)
}

func TestUserService_Register_Conflict(t *testing.T) {
	s, m := newTestUserService(t)

	input := dto.RegisterInput{
		Username:    "ada99",
		Email:       "ada@example.com",
		DisplayName: "Ada Lovelace",
		Password:    "password123",
	}

	m.repo.EXPECT().ExistsByEmailOrUsername(gomock.Any(), input.Email, input.Username).Return(true, nil)

	result, err := s.Register(context.Background(), input)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrUserExists)
}

func TestUserService_Register_CreateRace(t *testing.T) {
	s, m := newTestUserService(t)

	input := dto.RegisterInput{
		Username:    "ada99",
		Email:       "ada@example.com",
		DisplayName: "Ada Lovelace",
		Password:    "password123",
	}

	// The existence check passed, but a concurrent registration won the
	// unique constraint.
	m.repo.EXPECT().ExistsByEmailOrUsername(gomock.Any(), input.Email, input.Username).Return(false, nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperrors.ErrUserExists)

	result, err := s.Register(context.Background(), input)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrUserExists)
}

func TestUserService_Login_Success(t *testing.T) {
	s, m := newTestUserService(t)

	hash, err := lightHasher().Hash("password123")
	require.NoError(t, err)
	user := testUser(hash)

	m.repo.EXPECT().GetByIdentifier(gomock.Any(), "ada@example.com").Return(user, nil)
	m.tokens.EXPECT().Generate(user.ID, user.Username, user.Role).
		Return("access-token", "refresh-token", nil)
	m.tokens.EXPECT().GetRefreshTokenExpiry().Return(7 * 24 * time.Hour)
	m.sessions.EXPECT().Store(gomock.Any(), user.ID, "refresh-token", 7*24*time.Hour).
		Return(&domain.RefreshSession{ID: "session-1"}, nil)

	result, err := s.Login(context.Background(), dto.LoginInput{
		Identifier: "ada@example.com",
		Password:   "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, "access-token", result.Tokens.AccessToken)
}

func TestUserService_Login_Failures(t *testing.T) {
	hash, err := lightHasher().Hash("password123")
	require.NoError(t, err)

	tests := []struct {
		name  string
		setup func(m serviceMocks)
		input dto.LoginInput
	}{
		{
			name: "unknown identifier",
			setup: func(m serviceMocks) {
				m.repo.EXPECT().GetByIdentifier(gomock.Any(), "ghost").Return(nil, nil)
			},
			input: dto.LoginInput{Identifier: "ghost", Password: "password123"},
		},
		{
			name: "wrong password",
			setup: func(m serviceMocks) {
				m.repo.EXPECT().GetByIdentifier(gomock.Any(), "ada@example.com").
					Return(testUser(hash), nil)
			},
			input: dto.LoginInput{Identifier: "ada@example.com", Password: "not-the-password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestUserService(t)
			tt.setup(m)

			// Both paths return the same error, so a caller can't probe which
			// accounts exist.
			result, err := s.Login(context.Background(), tt.input)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}
}

func TestUserService_Refresh_Success(t *testing.T) {
	s, m := newTestUserService(t)

	user := testUser("irrelevant")
	session := &domain.RefreshSession{
		ID:        "session-1",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	m.tokens.EXPECT().VerifyRefreshToken("old-refresh").
		Return(&service.RefreshClaims{UserID: user.ID}, nil)
	m.sessions.EXPECT().GetByRawToken(gomock.Any(), "old-refresh").Return(session, nil)
	m.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	m.tokens.EXPECT().Generate(user.ID, user.Username, user.Role).
		Return("new-access", "new-refresh", nil)
	m.tokens.EXPECT().GetRefreshTokenExpiry().Return(7 * 24 * time.Hour)
	m.sessions.EXPECT().Rotate(gomock.Any(), session.ID, user.ID, "new-refresh", 7*24*time.Hour).
		Return(&domain.RefreshSession{ID: "session-2"}, nil)

	result, err := s.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", result.Tokens.AccessToken)
	assert.Equal(t, "new-refresh", result.Tokens.RefreshToken)
}

func TestUserService_Refresh_Failures(t *testing.T) {
	user := testUser("irrelevant")

	tests := []struct {
		name  string
		setup func(m serviceMocks)
	}{
		{
			name: "bad signature",
			setup: func(m serviceMocks) {
				m.tokens.EXPECT().VerifyRefreshToken("presented").
					Return(nil, errors.New("signature is invalid"))
			},
		},
		{
			name: "no stored session",
			setup: func(m serviceMocks) {
				m.tokens.EXPECT().VerifyRefreshToken("presented").
					Return(&service.RefreshClaims{UserID: user.ID}, nil)
				m.sessions.EXPECT().GetByRawToken(gomock.Any(), "presented").Return(nil, nil)
			},
		},
		{
			name: "session expired",
			setup: func(m serviceMocks) {
				m.tokens.EXPECT().VerifyRefreshToken("presented").
					Return(&service.RefreshClaims{UserID: user.ID}, nil)
				m.sessions.EXPECT().GetByRawToken(gomock.Any(), "presented").
					Return(&domain.RefreshSession{
						ID:        "session-1",
						UserID:    user.ID,
						ExpiresAt: time.Now().Add(-time.Minute),
					}, nil)
			},
		},
		{
			name: "session belongs to another account",
			setup: func(m serviceMocks) {
				m.tokens.EXPECT().VerifyRefreshToken("presented").
					Return(&service.RefreshClaims{UserID: user.ID}, nil)
				m.sessions.EXPECT().GetByRawToken(gomock.Any(), "presented").
					Return(&domain.RefreshSession{
						ID:        "session-1",
						UserID:    "someone-else",
						ExpiresAt: time.Now().Add(time.Hour),
					}, nil)
			},
		},
		{
			name: "lost the rotation race",
			setup: func(m serviceMocks) {
				session := &domain.RefreshSession{
					ID:        "session-1",
					UserID:    user.ID,
					ExpiresAt: time.Now().Add(time.Hour),
				}
				m.tokens.EXPECT().VerifyRefreshToken("presented").
					Return(&service.RefreshClaims{UserID: user.ID}, nil)
				m.sessions.EXPECT().GetByRawToken(gomock.Any(), "presented").Return(session, nil)
				m.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
				m.tokens.EXPECT().Generate(user.ID, user.Username, user.Role).
					Return("new-access", "new-refresh", nil)
				m.tokens.EXPECT().GetRefreshTokenExpiry().Return(7 * 24 * time.Hour)
				m.sessions.EXPECT().Rotate(gomock.Any(), session.ID, user.ID, "new-refresh", 7*24*time.Hour).
					Return(nil, apperrors.ErrInvalidRefreshToken)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestUserService(t)
			tt.setup(m)

			result, err := s.Refresh(context.Background(), "presented")
			assert.Nil(t, result)
			assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
		})
	}
}

func TestUserService_Logout(t *testing.T) {
	t.Run("deletes matching sessions", func(t *testing.T) {
		s, m := newTestUserService(t)
		m.sessions.EXPECT().DeleteAllByRawToken(gomock.Any(), "refresh-token").Return(nil)

		s.Logout(context.Background(), "refresh-token")
	})

	t.Run("store failure is swallowed", func(t *testing.T) {
		s, m := newTestUserService(t)
		m.sessions.EXPECT().DeleteAllByRawToken(gomock.Any(), "refresh-token").
			Return(errors.New("connection reset"))

		s.Logout(context.Background(), "refresh-token")
	})

	t.Run("empty token is a no-op", func(t *testing.T) {
		s, _ := newTestUserService(t)

		s.Logout(context.Background(), "")
	})
}

func TestUserService_VerifyAccessToken(t *testing.T) {
	s, m := newTestUserService(t)

	want := &service.AccessClaims{UserID: "user-1", Username: "ada99", Role: constant.RoleUser}
	m.tokens.EXPECT().VerifyAccessToken("good-token").Return(want, nil)
	m.tokens.EXPECT().VerifyAccessToken("bad-token").Return(nil, errors.New("token is expired"))

	claims, err := s.VerifyAccessToken("good-token")
	require.NoError(t, err)
	assert.Equal(t, want, claims)

	_, err = s.VerifyAccessToken("bad-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAccessToken)
}

func TestUserService_Me(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, m := newTestUserService(t)
		user := testUser("irrelevant")
		m.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

		out, err := s.Me(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Username, out.Username)
	})

	t.Run("deleted account", func(t *testing.T) {
		s, m := newTestUserService(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "gone").Return(nil, nil)

		out, err := s.Me(context.Background(), "gone")
		assert.Nil(t, out)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
