package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const (
	accessTokenBytes  = 32
	refreshTokenBytes = 48
)

// OpaqueTokens generates raw opaque token values and computes their
// storage hashes. Access tokens use a plain SHA-256: they are short
// lived, and the hash only has to make a leaked table useless for
// replay. Refresh tokens live for days, so their hash is keyed with a
// server-held pepper; without the pepper a leaked hash table cannot be
// brute-forced offline.
type OpaqueTokens struct {
	pepper []byte
}

// NewOpaqueTokens builds the codec with the refresh-token pepper.
func NewOpaqueTokens(pepper string) *OpaqueTokens {
	return &OpaqueTokens{pepper: []byte(pepper)}
}

// NewAccessToken returns a fresh raw access token value.
func (o *OpaqueTokens) NewAccessToken() (string, error) {
	return randomHex(accessTokenBytes)
}

// HashAccessToken computes the storage hash of a raw access token.
func (o *OpaqueTokens) HashAccessToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// NewRefreshToken returns a fresh raw refresh token value, URL-safe so
// it survives a cookie round trip unescaped.
func (o *OpaqueTokens) NewRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashRefreshToken computes the keyed storage hash of a raw refresh
// token.
func (o *OpaqueTokens) HashRefreshToken(raw string) string {
	mac := hmac.New(sha256.New, o.pepper)
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
