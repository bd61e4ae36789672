package model

import "time"

// ConnectionStatus tracks the lifecycle of a user's Gmail connection.
type ConnectionStatus string

const (
	ConnectionActive    ConnectionStatus = "active"
	ConnectionInitiated ConnectionStatus = "initiated"
	ConnectionFailed    ConnectionStatus = "failed"
	ConnectionExpired   ConnectionStatus = "expired"
	ConnectionDeleted   ConnectionStatus = "deleted"
)

// ConnectionRequest starts a new Gmail connection for a user.
type ConnectionRequest struct {
	UserID      string `json:"user_id"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// ConnectionResponse is returned after a connection has been initiated. The
// caller must send the user to RedirectURL to complete OAuth consent.
type ConnectionResponse struct {
	ConnectionID string           `json:"connection_id"`
	RedirectURL  string           `json:"redirect_url"`
	Status       ConnectionStatus `json:"status"`
}

// ConnectionStatusResponse describes the current state of a user's connection.
type ConnectionStatusResponse struct {
	UserID       string           `json:"user_id"`
	Status       ConnectionStatus `json:"status"`
	Connected    bool             `json:"connected"`
	ConnectionID string           `json:"connection_id,omitempty"`
	Email        string           `json:"email,omitempty"`
	CreatedAt    *time.Time       `json:"created_at,omitempty"`
}
