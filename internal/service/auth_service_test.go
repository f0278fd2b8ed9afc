package service

import (
	"context"
	"testing"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/domain"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

const testBcryptCost = 4

func seedAccount(t *testing.T, creds *fakeCredentialRepo, accounts *fakeAccountRepo, id, username, password string, role domain.Role, active bool) {
	t.Helper()

	hash, err := auth.HashPassword(password, testBcryptCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := creds.Create(context.Background(), &domain.Credential{
		AccountID:    id,
		Username:     username,
		PasswordHash: hash,
	}); err != nil {
		t.Fatalf("seed credential: %v", err)
	}
	if err := accounts.Create(context.Background(), &domain.Account{
		ID:     id,
		Role:   role,
		Active: active,
		Name:   username,
	}); err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	creds := newFakeCredentialRepo()
	accounts := newFakeAccountRepo()
	seedAccount(t, creds, accounts, "acc-1", "jdoe", "secret123", domain.RoleEmployee, true)
	seedAccount(t, creds, accounts, "acc-2", "dormant", "secret123", domain.RoleEmployee, false)

	svc := NewAuthService(creds, accounts)

	tests := []struct {
		name     string
		username string
		password string
		wantID   string
		wantKind string
	}{
		{name: "valid credentials", username: "jdoe", password: "secret123", wantID: "acc-1"},
		{name: "missing username", username: "", password: "secret123", wantKind: apperrors.KindMissingCredentials},
		{name: "missing password", username: "jdoe", password: "", wantKind: apperrors.KindMissingCredentials},
		{name: "unknown username", username: "nobody", password: "secret123", wantKind: apperrors.KindInvalidCredentials},
		{name: "wrong password", username: "jdoe", password: "wrong", wantKind: apperrors.KindInvalidCredentials},
		{name: "inactive account", username: "dormant", password: "secret123", wantKind: apperrors.KindInactiveUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := svc.Authenticate(context.Background(), tt.username, tt.password)
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

// Unknown usernames and wrong passwords must be indistinguishable from
// the response alone.
func TestAuthenticateUniformFailureMessage(t *testing.T) {
	creds := newFakeCredentialRepo()
	accounts := newFakeAccountRepo()
	seedAccount(t, creds, accounts, "acc-1", "jdoe", "secret123", domain.RoleEmployee, true)

	svc := NewAuthService(creds, accounts)

	_, unknownErr := svc.Authenticate(context.Background(), "nobody", "secret123")
	_, wrongErr := svc.Authenticate(context.Background(), "jdoe", "oops")

	unknown := apperrors.ToDomainError(unknownErr)
	wrong := apperrors.ToDomainError(wrongErr)
	if unknown.Message != wrong.Message {
		t.Fatalf("messages differ: %q vs %q", unknown.Message, wrong.Message)
	}
	if unknown.HTTPStatus != wrong.HTTPStatus {
		t.Fatalf("statuses differ: %d vs %d", unknown.HTTPStatus, wrong.HTTPStatus)
	}
}

func TestAuthenticateAdmin(t *testing.T) {
	creds := newFakeCredentialRepo()
	accounts := newFakeAccountRepo()
	seedAccount(t, creds, accounts, "adm-1", "boss", "secret123", domain.RoleAdmin, true)
	seedAccount(t, creds, accounts, "acc-1", "jdoe", "secret123", domain.RoleEmployee, true)
	if err := accounts.CreateAdminGrant(context.Background(), &domain.AdminGrant{AccountID: "adm-1", PermissionLevel: 2}); err != nil {
		t.Fatalf("seed grant: %v", err)
	}

	svc := NewAuthService(creds, accounts)

	t.Run("admin logs in", func(t *testing.T) {
		id, err := svc.AuthenticateAdmin(context.Background(), "boss", "secret123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "adm-1" {
			t.Fatalf("got account id %q, want adm-1", id)
		}
	})

	t.Run("employee is rejected with opaque message", func(t *testing.T) {
		_, err := svc.AuthenticateAdmin(context.Background(), "jdoe", "secret123")
		if !apperrors.IsKind(err, apperrors.KindNotAnAdmin) {
			t.Fatalf("got err %v, want kind %s", err, apperrors.KindNotAnAdmin)
		}
		if msg := apperrors.ToDomainError(err).Message; msg != "Invalid credentials" {
			t.Fatalf("got message %q, want the generic credentials message", msg)
		}
	})

	t.Run("bad password short-circuits the admin check", func(t *testing.T) {
		_, err := svc.AuthenticateAdmin(context.Background(), "boss", "wrong")
		if !apperrors.IsKind(err, apperrors.KindInvalidCredentials) {
			t.Fatalf("got err %v, want kind %s", err, apperrors.KindInvalidCredentials)
		}
	})
}
