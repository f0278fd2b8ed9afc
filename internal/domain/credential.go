package domain

import "time"

// Credential maps a login username to a bcrypt hash, one per account.
// The plaintext password is never stored.
type Credential struct {
	AccountID    string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
