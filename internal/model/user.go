package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a Gmail account connected to the service. The stored OAuth tokens
// back the label capability set handed to the agent for this user's messages.
type User struct {
	ID           string    `json:"id"`
	GoogleID     string    `json:"google_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenExpiry  time.Time `json:"token_expiry"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewUser(googleID, email, name, accessToken, refreshToken string, tokenExpiry time.Time) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New().String(),
		GoogleID:     googleID,
		Email:        email,
		Name:         name,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenExpiry:  tokenExpiry,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// TokenExpired reports whether the stored access token has passed its expiry.
func (u *User) TokenExpired() bool {
	return !u.TokenExpiry.IsZero() && time.Now().After(u.TokenExpiry)
}

// ConnectionState maps the token state onto a connection status.
func (u *User) ConnectionState() ConnectionStatus {
	if u.AccessToken == "" {
		return ConnectionInitiated
	}
	if u.TokenExpired() {
		return ConnectionExpired
	}
	return ConnectionActive
}
