package models

import (
	"time"
)

// AccessToken representa la tabla personal_access_tokens. TokenID es el
// claim jti del JWT entregado al cliente.
type AccessToken struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"user_id" db:"user_id"`
	Name       string     `json:"name" db:"name"`
	TokenID    string     `json:"-" db:"token_id"`
	LastUsedAt *time.Time `json:"last_used_at" db:"last_used_at"`
	ExpiresAt  *time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// Identity es el usuario autenticado que resolvió el middleware
type Identity struct {
	UserID  int64
	TokenID string
}
