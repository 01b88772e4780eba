package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignUpRequest registers a new professional on the hosted auth platform.
type SignUpRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Username  string `json:"username" validate:"required"`
	Unit      string `json:"unit"`
	Team      string `json:"team"`
	MicroArea string `json:"micro_area"`
}

// SignInRequest holds credentials for the password grant.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthUser is the identity returned by the auth platform.
type AuthUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
	CreatedAt    *time.Time             `json:"created_at,omitempty"`
}

// MetadataString reads a string entry from the user metadata.
func (u *AuthUser) MetadataString(key string) string {
	if u == nil || u.UserMetadata == nil {
		return ""
	}
	if value, ok := u.UserMetadata[key].(string); ok {
		return value
	}
	return ""
}

// Session is an authenticated platform session.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	User         *AuthUser `json:"user"`
}

// AuthEventType names an auth-state transition.
type AuthEventType string

const (
	AuthEventSignedIn  AuthEventType = "SIGNED_IN"
	AuthEventSignedOut AuthEventType = "SIGNED_OUT"
)

// AuthEvent notifies subscribers that a user's session state changed.
type AuthEvent struct {
	ID         string        `json:"id"`
	Type       AuthEventType `json:"type"`
	UserID     string        `json:"user_id"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// JWTClaims represents the payload of a platform access token.
// Privilege is resolved from the caller's profile after verification.
type JWTClaims struct {
	Email        string                 `json:"email"`
	Role         string                 `json:"role"`
	SessionID    string                 `json:"session_id,omitempty"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
	jwt.RegisteredClaims

	UserID    string      `json:"-"`
	Privilege ProfileRole `json:"-"`
}

// IsAdmin reports whether the caller holds administrative privileges.
func (c *JWTClaims) IsAdmin() bool {
	return c != nil && c.Privilege == RoleAdmin
}

// CanManage reports whether the caller may edit or delete the plan.
func (c *JWTClaims) CanManage(plan Plan) bool {
	if c == nil {
		return false
	}
	return c.IsAdmin() || plan.OwnerID == c.UserID
}
