package dto

import (
	"time"

	"github.com/noah-isme/careplan-api/internal/models"
)

// LoginResponse is returned after a successful password sign-in.
type LoginResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresIn    int64            `json:"expires_in"`
	User         *models.AuthUser `json:"user"`
	Profile      *models.Profile  `json:"profile,omitempty"`
}

// SessionInfo describes the caller's verified session.
type SessionInfo struct {
	UserID    string             `json:"user_id"`
	Email     string             `json:"email"`
	Role      models.ProfileRole `json:"role"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`
}
