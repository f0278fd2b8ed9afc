package domain

import "time"

// TokenType separates short-lived access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Token is the stored metadata for an issued opaque token. Only the
// hash of the raw value is kept; the raw value goes to the caller once
// and is never persisted or logged. Rows are append-only except for
// the Revoked flag.
type Token struct {
	ID        int64
	AccountID string
	TokenHash string
	Type      TokenType
	Revoked   bool
	ExpiresAt time.Time
	CreatedAt time.Time
}
