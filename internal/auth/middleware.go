package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

const accountIDKey = "auth_account_id"

// TokenVerifier resolves a bearer header to the owning account id.
// Implemented by service.TokenService.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, bearerHeader string) (string, error)
}

// Middleware validates bearer tokens on protected routes.
type Middleware struct {
	verifier TokenVerifier
	accounts repository.AccountRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(verifier TokenVerifier, accounts repository.AccountRepository) *Middleware {
	return &Middleware{verifier: verifier, accounts: accounts}
}

// Handle enforces a valid access token and stores the account id on the
// request context.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	accountID, err := m.verifier.VerifyAccessToken(c.UserContext(), c.Get("Authorization"))
	if err != nil {
		return err
	}
	c.Locals(accountIDKey, accountID)
	return c.Next()
}

// RequireAdmin allows only active admin accounts past this point. It
// runs after Handle.
func (m *Middleware) RequireAdmin(c *fiber.Ctx) error {
	accountID, ok := AccountIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	isAdmin, err := m.accounts.IsActiveAdmin(c.UserContext(), accountID)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !isAdmin {
		return apperrors.NewForbidden("admin privileges required")
	}
	return c.Next()
}

// AccountIDFromContext retrieves the authenticated account id.
func AccountIDFromContext(c *fiber.Ctx) (string, bool) {
	accountID, ok := c.Locals(accountIDKey).(string)
	return accountID, ok && accountID != ""
}
