package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/OzanKEreal/EndlleesTube/internal/auth/domain"
	"github.com/OzanKEreal/EndlleesTube/internal/auth/dto"
	apperrors "github.com/OzanKEreal/EndlleesTube/internal/errors"
	"github.com/OzanKEreal/EndlleesTube/internal/logging"
	"github.com/OzanKEreal/EndlleesTube/internal/metrics"
	"github.com/OzanKEreal/EndlleesTube/pkg/constant"
)

// UserService orchestrates registration, login, refresh, logout and access
// token verification. All failures map to the small closed error set in
// internal/errors; nothing is retried.
type UserService struct {
	repo     domain.UserRepository
	sessions domain.RefreshSessionStore
	tokens   TokenGenerator
	hasher   PasswordHasher
	log      logging.Logger

	// dummyHash keeps the latency of "unknown identifier" close to the
	// latency of "wrong password", so login failures don't leak which check
	// failed.
	dummyHash string
}

func NewUserService(repo domain.UserRepository, sessions domain.RefreshSessionStore,
	tokens TokenGenerator, hasher PasswordHasher, log logging.Logger) (*UserService, error) {
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &UserService{
		repo:      repo,
		sessions:  sessions,
		tokens:    tokens,
		hasher:    hasher,
		log:       log,
		dummyHash: dummyHash,
	}, nil
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResult, error) {
	exists, err := s.repo.ExistsByEmailOrUsername(ctx, input.Email, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		PasswordHash: passwordHash,
		Role:         constant.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The existence check above races with concurrent registrations; the
	// unique constraints are the source of truth and surface here as
	// ErrUserExists.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info(ctx, "user registered", "user_id", user.ID, "username", user.Username)

	return &dto.AuthResult{User: dto.NewUserOutput(user), Tokens: *tokens}, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResult, error) {
	user, err := s.repo.GetByIdentifier(ctx, input.Identifier)
	if err != nil {
		return nil, err
	}

	if user == nil {
		// Burn a verification anyway; see dummyHash.
		_, _ = s.hasher.Verify(s.dummyHash, input.Password)
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(user.PasswordHash, input.Password)
	if err != nil || !ok {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	return &dto.AuthResult{User: dto.NewUserOutput(user), Tokens: *tokens}, nil
}

// Refresh exchanges a valid refresh token for a brand-new pair, consuming the
// presented token. Of two concurrent calls with the same token exactly one
// wins; the other gets ErrInvalidRefreshToken.
func (s *UserService) Refresh(ctx context.Context, rawRefreshToken string) (*dto.AuthResult, error) {
	claims, err := s.tokens.VerifyRefreshToken(rawRefreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, apperrors.ErrInvalidRefreshToken
	}

	session, err := s.sessions.GetByRawToken(ctx, rawRefreshToken)
	if err != nil {
		return nil, err
	}
	// Expiry at exactly the stored instant fails closed.
	if session == nil || !time.Now().Before(session.ExpiresAt) || session.UserID != claims.UserID {
		metrics.TokenRefreshesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.repo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		metrics.TokenRefreshesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, apperrors.ErrInvalidRefreshToken
	}

	accessToken, refreshToken, err := s.tokens.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	// Insert-new-then-delete-old in one transaction, so a crash mid-rotation
	// can't strand the account with zero valid sessions.
	if _, err := s.sessions.Rotate(ctx, session.ID, user.ID, refreshToken,
		s.tokens.GetRefreshTokenExpiry()); err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, apperrors.ErrInvalidRefreshToken
	}

	metrics.TokenRefreshesTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	return &dto.AuthResult{
		User:   dto.NewUserOutput(user),
		Tokens: dto.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
	}, nil
}

// Logout is best-effort: deleting nothing is still a successful logout, and
// store failures are logged but never surfaced to the caller.
func (s *UserService) Logout(ctx context.Context, rawRefreshToken string) {
	if rawRefreshToken == "" {
		return
	}
	if err := s.sessions.DeleteAllByRawToken(ctx, rawRefreshToken); err != nil {
		s.log.Warn(ctx, "failed to delete refresh sessions on logout", "error", err)
	}
}

// VerifyAccessToken is pure: access tokens are self-contained, so revocation
// only takes effect at the refresh layer.
func (s *UserService) VerifyAccessToken(rawAccessToken string) (*AccessClaims, error) {
	claims, err := s.tokens.VerifyAccessToken(rawAccessToken)
	if err != nil {
		return nil, apperrors.ErrInvalidAccessToken
	}
	return claims, nil
}

func (s *UserService) Me(ctx context.Context, userID string) (*dto.UserOutput, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return dto.NewUserOutput(user), nil
}

func (s *UserService) issueTokens(ctx context.Context, user *domain.User) (*dto.TokenPair, error) {
	accessToken, refreshToken, err := s.tokens.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessions.Store(ctx, user.ID, refreshToken, s.tokens.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
