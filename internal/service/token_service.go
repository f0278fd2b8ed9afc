package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/config"
	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

const bearerScheme = "Bearer "

// TokenService issues, verifies and revokes opaque bearer tokens.
// A token row goes through issued -> valid -> expired or revoked;
// expiry is evaluated lazily at verification time against the service
// clock, never written back.
type TokenService struct {
	tokens     repository.TokenRepository
	codec      *auth.OpaqueTokens
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService builds the service from auth configuration.
func NewTokenService(cfg config.AuthConfig, tokens repository.TokenRepository) *TokenService {
	return &TokenService{
		tokens:     tokens,
		codec:      auth.NewOpaqueTokens(cfg.RefreshTokenPepper),
		accessTTL:  time.Duration(cfg.AccessTokenTTLMinutes) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshTokenTTLDays) * 24 * time.Hour,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// AccessTokenTTL reports the configured access-token lifetime.
func (s *TokenService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

// RefreshTokenTTL reports the configured refresh-token lifetime.
func (s *TokenService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

// IssueAccessToken stores a new hashed access token and returns the raw
// value together with its expiry. The raw value is never persisted.
func (s *TokenService) IssueAccessToken(ctx context.Context, accountID string) (string, time.Time, error) {
	raw, err := s.codec.NewAccessToken()
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	expiresAt, err := s.store(ctx, accountID, s.codec.HashAccessToken(raw), domain.TokenTypeAccess, s.accessTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	return raw, expiresAt, nil
}

// IssueRefreshToken stores a new keyed-hash refresh token and returns
// the raw value together with its expiry.
func (s *TokenService) IssueRefreshToken(ctx context.Context, accountID string) (string, time.Time, error) {
	raw, err := s.codec.NewRefreshToken()
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	expiresAt, err := s.store(ctx, accountID, s.codec.HashRefreshToken(raw), domain.TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	return raw, expiresAt, nil
}

func (s *TokenService) store(ctx context.Context, accountID, hash string, tokenType domain.TokenType, ttl time.Duration) (time.Time, error) {
	token := &domain.Token{
		AccountID: accountID,
		TokenHash: hash,
		Type:      tokenType,
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		// A hash collision across tokens is a system fault, not a
		// business condition.
		if errors.Is(err, repository.ErrDuplicate) {
			return time.Time{}, apperrors.NewInternalError(errors.New("token hash collision"))
		}
		return time.Time{}, apperrors.NewInternalError(err)
	}
	return token.ExpiresAt, nil
}

// VerifyAccessToken parses an Authorization header, looks the token up
// by its fast hash and returns the owning account id. Expired tokens
// fail exactly like tokens that never existed.
func (s *TokenService) VerifyAccessToken(ctx context.Context, bearerHeader string) (string, error) {
	if !strings.HasPrefix(bearerHeader, bearerScheme) {
		return "", apperrors.NewMissingAccessToken()
	}
	raw := strings.TrimSpace(strings.TrimPrefix(bearerHeader, bearerScheme))
	if raw == "" {
		return "", apperrors.NewMissingAccessToken()
	}

	return s.lookup(ctx, s.codec.HashAccessToken(raw), domain.TokenTypeAccess, apperrors.NewInvalidAccessToken())
}

// VerifyRefreshToken validates a raw refresh token via its keyed hash
// and returns the owning account id.
func (s *TokenService) VerifyRefreshToken(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return "", apperrors.NewMissingRefreshToken()
	}
	return s.lookup(ctx, s.codec.HashRefreshToken(raw), domain.TokenTypeRefresh, apperrors.NewInvalidRefreshToken())
}

func (s *TokenService) lookup(ctx context.Context, hash string, tokenType domain.TokenType, invalid error) (string, error) {
	token, found, err := s.tokens.FindActiveByHash(ctx, hash, tokenType)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if !found || !s.now().Before(token.ExpiresAt) {
		return "", invalid
	}
	return token.AccountID, nil
}

// RevokeRefreshToken flips the revoked flag on the matching refresh
// token. Revoking an unknown or already-revoked token is a no-op, never
// an error.
func (s *TokenService) RevokeRefreshToken(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	if _, err := s.tokens.Revoke(ctx, s.codec.HashRefreshToken(raw), domain.TokenTypeRefresh); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}
