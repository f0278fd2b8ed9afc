package service

import (
	"context"
	"errors"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// AuthService verifies credentials against the credential store.
type AuthService struct {
	creds    repository.CredentialRepository
	accounts repository.AccountRepository
}

// NewAuthService builds the service.
func NewAuthService(creds repository.CredentialRepository, accounts repository.AccountRepository) *AuthService {
	return &AuthService{creds: creds, accounts: accounts}
}

// Authenticate verifies username and password and returns the account
// id. Unknown usernames and wrong passwords fail with the same error;
// a bcrypt comparison is burned on the unknown-username path so the two
// are not separable by timing either. The active check runs only after
// the password is proven correct.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperrors.NewMissingCredentials()
	}

	cred, found, err := s.creds.FindByUsername(ctx, username)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if !found {
		auth.BurnComparison(password)
		return "", apperrors.NewInvalidCredentials()
	}

	if err := auth.ComparePassword(cred.PasswordHash, password); err != nil {
		return "", apperrors.NewInvalidCredentials()
	}

	account, found, err := s.accounts.FindByID(ctx, cred.AccountID)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if !found {
		return "", apperrors.NewInternalError(errors.New("credential without account row"))
	}
	if !account.Active {
		return "", apperrors.NewInactiveUser()
	}

	return account.ID, nil
}

// AuthenticateAdmin verifies credentials, then requires an active admin
// grant. The admin check happens after generic authentication so its
// failure reveals nothing about whether the account exists.
func (s *AuthService) AuthenticateAdmin(ctx context.Context, username, password string) (string, error) {
	accountID, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	isAdmin, err := s.accounts.IsActiveAdmin(ctx, accountID)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if !isAdmin {
		return "", apperrors.NewNotAnAdmin()
	}

	return accountID, nil
}
