package models

import "time"

// AdAccount is a connected Facebook ad account with its stored OAuth credential.
type AdAccount struct {
	ID             string     `json:"id" db:"id"`
	UserID         string     `json:"user_id" db:"user_id"`
	RemoteID       string     `json:"remote_id" db:"remote_id"` // platform account id, e.g. "act_123..."
	Name           string     `json:"name" db:"name"`
	AccessToken    string     `json:"-" db:"access_token"`
	TokenExpiresAt *time.Time `json:"token_expires_at" db:"token_expires_at"`
	Permissions    []string   `json:"permissions" db:"permissions"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
