package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/service"
)

const refreshCookieName = "refresh_token"

// AuthHandler exposes login, refresh and logout endpoints.
type AuthHandler struct {
	auth   *service.AuthService
	tokens *service.TokenService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, tokenService *service.TokenService) *AuthHandler {
	return &AuthHandler{auth: authService, tokens: tokenService}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return h.login(c, h.auth.Authenticate)
}

// AdminLogin handles POST /api/admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	return h.login(c, h.auth.AuthenticateAdmin)
}

func (h *AuthHandler) login(c *fiber.Ctx, authenticate func(ctx context.Context, username, password string) (string, error)) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	accountID, err := authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	accessToken, _, err := h.tokens.IssueAccessToken(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	refreshToken, _, err := h.tokens.IssueRefreshToken(c.UserContext(), accountID)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, refreshToken)
	return c.JSON(dto.TokenResponse{
		Message:     "Login successful",
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.tokens.AccessTokenTTL().Seconds()),
	})
}

// Refresh handles POST /api/refresh. The refresh token arrives in the
// httponly cookie set at login.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	accountID, err := h.tokens.VerifyRefreshToken(c.UserContext(), c.Cookies(refreshCookieName))
	if err != nil {
		return err
	}

	accessToken, _, err := h.tokens.IssueAccessToken(c.UserContext(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.tokens.AccessTokenTTL().Seconds()),
	})
}

// Logout handles POST /api/logout. Revocation is best-effort; logging
// out with a stale cookie still succeeds.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.tokens.RevokeRefreshToken(c.UserContext(), c.Cookies(refreshCookieName)); err != nil {
		return err
	}
	h.clearRefreshCookie(c)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(h.tokens.RefreshTokenTTL().Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
