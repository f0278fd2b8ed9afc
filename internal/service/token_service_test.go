package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/hr-service/internal/config"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

func newTestTokenService(repo *fakeTokenRepo, at time.Time) *TokenService {
	svc := NewTokenService(config.AuthConfig{
		RefreshTokenPepper:    "test-pepper",
		AccessTokenTTLMinutes: 15,
		RefreshTokenTTLDays:   3,
	}, repo)
	svc.now = fixedClock(at)
	return svc
}

func TestIssueAccessTokenDistinctValues(t *testing.T) {
	svc := newTestTokenService(newFakeTokenRepo(), time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		raw, expiresAt, err := svc.IssueAccessToken(context.Background(), "acc-1")
		if err != nil {
			t.Fatalf("issue %d: %v", i, err)
		}
		if seen[raw] {
			t.Fatalf("issue %d returned a repeated token", i)
		}
		seen[raw] = true
		if want := svc.now().Add(15 * time.Minute); !expiresAt.Equal(want) {
			t.Fatalf("got expiry %v, want %v", expiresAt, want)
		}
	}
}

func TestVerifyAccessToken(t *testing.T) {
	issuedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestTokenService(repo, issuedAt)

	raw, _, err := svc.IssueAccessToken(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tests := []struct {
		name     string
		header   string
		at       time.Time
		wantID   string
		wantKind string
	}{
		{name: "valid bearer header", header: "Bearer " + raw, at: issuedAt.Add(time.Minute), wantID: "acc-1"},
		{name: "empty header", header: "", at: issuedAt, wantKind: apperrors.KindMissingAccessToken},
		{name: "no bearer scheme", header: raw, at: issuedAt, wantKind: apperrors.KindMissingAccessToken},
		{name: "scheme without token", header: "Bearer ", at: issuedAt, wantKind: apperrors.KindMissingAccessToken},
		{name: "unknown token", header: "Bearer deadbeef", at: issuedAt, wantKind: apperrors.KindInvalidAccessToken},
		{name: "expired token reads like a missing one", header: "Bearer " + raw, at: issuedAt.Add(16 * time.Minute), wantKind: apperrors.KindInvalidAccessToken},
		{name: "expiry boundary is exclusive", header: "Bearer " + raw, at: issuedAt.Add(15 * time.Minute), wantKind: apperrors.KindInvalidAccessToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.now = fixedClock(tt.at)
			id, err := svc.VerifyAccessToken(context.Background(), tt.header)
			if tt.wantKind != "" {
				if !apperrors.IsKind(err, tt.wantKind) {
					t.Fatalf("got err %v, want kind %s", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Fatalf("got account id %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestRefreshTokenLifecycle(t *testing.T) {
	issuedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestTokenService(repo, issuedAt)

	first, _, err := svc.IssueRefreshToken(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("issue first: %v", err)
	}
	second, _, err := svc.IssueRefreshToken(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("issue second: %v", err)
	}

	t.Run("verify returns the owner", func(t *testing.T) {
		id, err := svc.VerifyRefreshToken(context.Background(), first)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "acc-1" {
			t.Fatalf("got account id %q, want acc-1", id)
		}
	})

	t.Run("revocation only hits the targeted token", func(t *testing.T) {
		if err := svc.RevokeRefreshToken(context.Background(), first); err != nil {
			t.Fatalf("revoke: %v", err)
		}
		if _, err := svc.VerifyRefreshToken(context.Background(), first); !apperrors.IsKind(err, apperrors.KindInvalidRefreshToken) {
			t.Fatalf("revoked token verified: %v", err)
		}
		if _, err := svc.VerifyRefreshToken(context.Background(), second); err != nil {
			t.Fatalf("sibling token broken by revocation: %v", err)
		}
	})

	t.Run("revoking again is a no-op", func(t *testing.T) {
		if err := svc.RevokeRefreshToken(context.Background(), first); err != nil {
			t.Fatalf("second revoke errored: %v", err)
		}
	})

	t.Run("revoking an unknown token is a no-op", func(t *testing.T) {
		if err := svc.RevokeRefreshToken(context.Background(), "never-issued"); err != nil {
			t.Fatalf("unknown revoke errored: %v", err)
		}
		if err := svc.RevokeRefreshToken(context.Background(), ""); err != nil {
			t.Fatalf("empty revoke errored: %v", err)
		}
	})

	t.Run("expired refresh token is invalid", func(t *testing.T) {
		svc.now = fixedClock(issuedAt.Add(3*24*time.Hour + time.Second))
		if _, err := svc.VerifyRefreshToken(context.Background(), second); !apperrors.IsKind(err, apperrors.KindInvalidRefreshToken) {
			t.Fatalf("got err %v, want kind %s", err, apperrors.KindInvalidRefreshToken)
		}
	})

	t.Run("empty refresh token is missing, not invalid", func(t *testing.T) {
		if _, err := svc.VerifyRefreshToken(context.Background(), ""); !apperrors.IsKind(err, apperrors.KindMissingRefreshToken) {
			t.Fatalf("got err %v, want kind %s", err, apperrors.KindMissingRefreshToken)
		}
	})
}

// Raw token values never reach the store; only hashes do.
func TestRawTokensNotPersisted(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTestTokenService(repo, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	access, _, err := svc.IssueAccessToken(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	refresh, _, err := svc.IssueRefreshToken(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	for _, token := range repo.tokens {
		if token.TokenHash == access || token.TokenHash == refresh {
			t.Fatalf("raw token value stored as hash for token %d", token.ID)
		}
	}
}
