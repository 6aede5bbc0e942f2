package models

import "time"

// User is the authenticated store user as returned by the WordPress side.
type User struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	Roles       []string `json:"roles"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
}

// Session is the persisted auth state for one user: the local gateway token
// plus the upstream WordPress token used for authenticated store calls.
type Session struct {
	User       User      `json:"user"`
	StoreToken string    `json:"store_token"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginRequest is the payload for user authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued gateway token and the user profile.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
